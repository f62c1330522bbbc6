// Package payment owns everything Razorpay-shaped: order creation, checkout
// signature verification, and parsing of the redirect callback into an
// explicit Result consumed by the booking flow.
package payment

import (
	"errors"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"

	"github.com/google/uuid"
)

// Errors surfaced to the booking flow and handlers.
var (
	ErrOrderCreation    = errors.New("failed to create payment order")
	ErrInvalidSignature = errors.New("payment signature verification failed")
)

// Service wraps the Razorpay client.
type Service struct {
	client    *razorpay.Client
	keyID     string
	keySecret string
}

// NewService creates a payment Service with the given Razorpay credentials.
func NewService(keyID, keySecret string) *Service {
	return &Service{
		client:    razorpay.NewClient(keyID, keySecret),
		keyID:     keyID,
		keySecret: keySecret,
	}
}

// Order is the subset of a Razorpay order the client needs to open checkout.
type Order struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"` // paise
	Currency string `json:"currency"`
	KeyID    string `json:"keyId"`
	Receipt  string `json:"receipt"`
}

// CreateOrder creates a Razorpay order for the given amount in paise.
// Notes travel to Razorpay and come back on the payment entity, which keeps
// the purpose of a payment (session vs plan upgrade) auditable there.
func (s *Service) CreateOrder(amountPaise int64, notes map[string]interface{}) (*Order, error) {
	receipt := uuid.NewString()
	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": "INR",
		"receipt":  receipt,
	}
	if len(notes) > 0 {
		data["notes"] = notes
	}

	created, err := s.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderCreation, err)
	}

	orderID, _ := created["id"].(string)
	if orderID == "" {
		return nil, fmt.Errorf("%w: order response missing id", ErrOrderCreation)
	}
	return &Order{
		OrderID:  orderID,
		Amount:   amountPaise,
		Currency: "INR",
		KeyID:    s.keyID,
		Receipt:  receipt,
	}, nil
}

// VerifySignature checks the HMAC-SHA256 checkout signature Razorpay sends
// after a successful payment.
func (s *Service) VerifySignature(orderID, paymentID, signature string) error {
	params := map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
	}
	if !utils.VerifyPaymentSignature(params, signature, s.keySecret) {
		return ErrInvalidSignature
	}
	return nil
}
