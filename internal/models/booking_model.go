package models

import "time"

// InterviewBooking represents one booked real-time assistance session.
// The 6-digit passkey doubles as the Firestore document ID so the redemption
// side (outside this service) can look a booking up by code directly.
type InterviewBooking struct {
	Passkey        string     `json:"passkey" firestore:"-"` // Document ID
	UserID         string     `json:"userId" firestore:"userId"`
	JobRole        string     `json:"jobRole" firestore:"jobRole"`
	Company        string     `json:"company" firestore:"company"`
	Date           string     `json:"date" firestore:"date"`
	Time           string     `json:"time" firestore:"time"`
	ResumeURL      string     `json:"resumeUrl,omitempty" firestore:"resumeUrl,omitempty"`
	JobDescription string     `json:"jobDescription,omitempty" firestore:"jobDescription,omitempty"`
	PaymentID      string     `json:"paymentId,omitempty" firestore:"paymentId,omitempty"`
	IsUsed         bool       `json:"isUsed" firestore:"isUsed"`
	UsedAt         *time.Time `json:"usedAt,omitempty" firestore:"usedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}

// CreateBookingRequest represents the request body for booking a session.
// ResumeURL carries a reference to the uploaded resume, not the file itself.
type CreateBookingRequest struct {
	JobRole        string `json:"jobRole"`
	Company        string `json:"company"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	ResumeURL      string `json:"resumeUrl"`
	JobDescription string `json:"jobDescription,omitempty"`
}
