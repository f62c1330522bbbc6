package payment

import "net/url"

// Status of a parsed payment callback.
type Status string

const (
	StatusNone    Status = "none"    // no payment parameters present
	StatusSuccess Status = "success" // payment id present or payment_status=success
	StatusFailure Status = "failure" // payment_status=failure
)

// Query parameters carried on the redirect back from checkout.
const (
	paramRazorpayPaymentID = "razorpay_payment_id"
	paramRazorpayOrderID   = "razorpay_order_id"
	paramRazorpaySignature = "razorpay_signature"
	paramPaymentID         = "payment_id"
	paramPaymentStatus     = "payment_status"
)

// Result is the single, explicit representation of a payment outcome. It is
// produced here once per callback; no other component re-parses URL state.
type Result struct {
	Status    Status `json:"status"`
	PaymentID string `json:"paymentId,omitempty"`
	OrderID   string `json:"orderId,omitempty"`
	Signature string `json:"signature,omitempty"`
}

// ParseCallback interprets the redirect query parameters. Success is
// signaled by a payment identifier or payment_status=success; failure by
// payment_status=failure. Anything else is StatusNone.
func ParseCallback(values url.Values) Result {
	paymentID := values.Get(paramRazorpayPaymentID)
	if paymentID == "" {
		paymentID = values.Get(paramPaymentID)
	}

	switch {
	case values.Get(paramPaymentStatus) == string(StatusFailure):
		return Result{Status: StatusFailure}
	case paymentID != "":
		return Result{
			Status:    StatusSuccess,
			PaymentID: paymentID,
			OrderID:   values.Get(paramRazorpayOrderID),
			Signature: values.Get(paramRazorpaySignature),
		}
	case values.Get(paramPaymentStatus) == string(StatusSuccess):
		return Result{Status: StatusSuccess}
	}
	return Result{Status: StatusNone}
}

// StripCallbackParams returns a copy of values with all payment parameters
// removed. Handlers redirect clients to the stripped query so a page reload
// cannot replay a handled payment.
func StripCallbackParams(values url.Values) url.Values {
	cleaned := url.Values{}
	for key, vals := range values {
		switch key {
		case paramRazorpayPaymentID, paramRazorpayOrderID, paramRazorpaySignature,
			paramPaymentID, paramPaymentStatus:
			continue
		}
		cleaned[key] = vals
	}
	return cleaned
}
