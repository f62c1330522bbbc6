package payment

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCallback(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Result
	}{
		{
			name:  "razorpay payment id signals success",
			query: "razorpay_payment_id=pay_123&razorpay_order_id=order_9&razorpay_signature=sig",
			want:  Result{Status: StatusSuccess, PaymentID: "pay_123", OrderID: "order_9", Signature: "sig"},
		},
		{
			name:  "generic payment id signals success",
			query: "payment_id=pay_456",
			want:  Result{Status: StatusSuccess, PaymentID: "pay_456"},
		},
		{
			name:  "payment_status success without id",
			query: "payment_status=success",
			want:  Result{Status: StatusSuccess},
		},
		{
			name:  "payment_status failure wins over id",
			query: "payment_status=failure&razorpay_payment_id=pay_789",
			want:  Result{Status: StatusFailure},
		},
		{
			name:  "no payment parameters",
			query: "tab=bookings",
			want:  Result{Status: StatusNone},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, ParseCallback(values))
		})
	}
}

func TestStripCallbackParams(t *testing.T) {
	values, err := url.ParseQuery("razorpay_payment_id=pay_1&razorpay_order_id=o_1&razorpay_signature=s&payment_id=p&payment_status=success&tab=bookings")
	assert.NoError(t, err)

	cleaned := StripCallbackParams(values)
	assert.Equal(t, "bookings", cleaned.Get("tab"))
	assert.Empty(t, cleaned.Get("razorpay_payment_id"))
	assert.Empty(t, cleaned.Get("razorpay_order_id"))
	assert.Empty(t, cleaned.Get("razorpay_signature"))
	assert.Empty(t, cleaned.Get("payment_id"))
	assert.Empty(t, cleaned.Get("payment_status"))
	assert.Len(t, cleaned, 1)
}
