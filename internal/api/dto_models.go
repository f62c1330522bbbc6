package api

import "prepmate-backend-go/internal/models"

// ErrorResponse is a generic structure for returning errors via API.
type ErrorResponse struct {
	Error       string            `json:"error"`                 // A high-level error message
	Details     string            `json:"details,omitempty"`     // More specific details, if available
	FieldErrors map[string]string `json:"fieldErrors,omitempty"` // Per-field validation messages
}

// SuccessResponse is a generic structure for simple success messages.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// BookingListResponse splits the caller's bookings into active (unused) and
// used passkeys, newest first in each bucket.
type BookingListResponse struct {
	Active []*models.InterviewBooking `json:"active"`
	Used   []*models.InterviewBooking `json:"used"`
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message       string               `json:"message" binding:"required"`
	SystemMessage string               `json:"systemMessage,omitempty"`
	History       []models.ChatMessage `json:"history,omitempty"`
}

// ChatResponse carries the assistant's reply. Fallback is true when the reply
// is the local canned response substituted after a gateway failure.
type ChatResponse struct {
	Reply    string `json:"reply"`
	Fallback bool   `json:"fallback,omitempty"`
}

// EvaluateAnswerRequest is the body of POST /practice/evaluate. The answer
// text is accepted for interface symmetry; feedback is synthesized from the
// category alone.
type EvaluateAnswerRequest struct {
	Category string `json:"category"`
	Answer   string `json:"answer"`
}

// SetProfileLinkRequest is the body of PUT /profiles/links/:provider.
type SetProfileLinkRequest struct {
	Username string `json:"username"`
	URL      string `json:"url" binding:"required"`
}

// ATSScoreRequest is the body of POST /ats/score.
type ATSScoreRequest struct {
	ResumeText     string `json:"resumeText" binding:"required"`
	JobDescription string `json:"jobDescription"`
}
