// Package queue publishes booking lifecycle events for the real-time
// assistant service, which pairs a redeemed passkey with a live session.
// Publishing is best-effort: a failed publish is logged and never blocks
// issuance.
package queue

import (
	"encoding/json"
	"time"
)

// BookingIssuedQueue is the queue carrying booking-issued events.
const BookingIssuedQueue = "booking.issued"

// Publisher defines the interface for event publishing.
type Publisher interface {
	Publish(queueName string, body []byte) error
	Close() error
}

// BookingIssuedEvent is the payload published after a booking reaches the
// Issued state. The passkey lets the consumer pre-stage the session record
// the redemption side will look up.
type BookingIssuedEvent struct {
	Passkey  string    `json:"passkey"`
	UserID   string    `json:"userId"`
	JobRole  string    `json:"jobRole"`
	Company  string    `json:"company"`
	Date     string    `json:"date"`
	Time     string    `json:"time"`
	IssuedAt time.Time `json:"issuedAt"`
}

// Encode serializes the event for the wire.
func (e BookingIssuedEvent) Encode() ([]byte, error) {
	return json.Marshal(e)
}
