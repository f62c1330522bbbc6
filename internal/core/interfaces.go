package core

import (
	"context"
	"time"

	"prepmate-backend-go/internal/groq"
	"prepmate-backend-go/internal/models"
	"prepmate-backend-go/internal/payment"
	"prepmate-backend-go/internal/question"
)

// UserService defines the interface for user-related operations.
type UserService interface {
	// GetOrCreate retrieves a user by ID. If the user doesn't exist, it creates a new one with default values.
	GetOrCreate(ctx context.Context, userID, email, displayName, photoURL string) (*models.User, bool, error)
	GetByID(ctx context.Context, userID string) (*models.User, error)
}

// PlanService is the session/plan gate. Entitlement re-reads the
// subscription document on every call; nothing is cached across requests.
type PlanService interface {
	// Entitlement evaluates the caller's current tier and remaining monthly
	// quota. A missing subscription document is not an error: it means
	// pay-per-session.
	Entitlement(ctx context.Context, userID string) (Entitlement, *models.Subscription, error)
	// UpgradeToGenz activates the genz plan for one month after a verified
	// payment.
	UpgradeToGenz(ctx context.Context, userID string, payRes payment.Result) (*models.Subscription, error)
}

// BookingService drives the passkey issuance flow and the read-only booking
// surfaces.
type BookingService interface {
	// Issue runs one issuance attempt. payRes is nil on the first call; the
	// flow answers PaymentRequired with an order when the caller's plan does
	// not cover the booking, and the client calls Issue again with the
	// payment outcome.
	Issue(ctx context.Context, userID string, req models.CreateBookingRequest, payRes *payment.Result) (*IssueResult, error)
	ListBookings(ctx context.Context, userID string) ([]*models.InterviewBooking, error)
}

// ChatService is the LLM gateway: one question in, one assistant reply out,
// with verified-profile enrichment of the system message.
type ChatService interface {
	Ask(ctx context.Context, userID, userInput, systemMessage string, history []models.ChatMessage) (string, error)
}

// PracticeService generates practice rounds and synthesizes feedback.
type PracticeService interface {
	GenerateQuestion(category, difficulty string) question.PracticeQuestion
	EvaluateAnswer(category string) AnswerFeedback
}

// ProfileService manages linked external profiles and their verification.
type ProfileService interface {
	Get(ctx context.Context, userID string) (*models.ProfileInfo, error)
	SetLink(ctx context.Context, userID, provider, username, url string) (*models.ProfileInfo, error)
	VerifyLink(ctx context.Context, userID, provider string) (*models.ProfileInfo, error)
}

// AuditService defines the interface for audit logging operations.
type AuditService interface {
	CreateAuditLog(ctx context.Context, logEntry models.AuditLog) error
}

// LLMClient is the outbound chat-completion dependency of ChatService.
// *groq.Client satisfies it; tests substitute a fake.
type LLMClient interface {
	Chat(ctx context.Context, messages []groq.Message) (string, error)
}

// PaymentProvider is the payment dependency of the booking and plan
// services. *payment.Service satisfies it.
type PaymentProvider interface {
	CreateOrder(amountPaise int64, notes map[string]interface{}) (*payment.Order, error)
	VerifySignature(orderID, paymentID, signature string) error
}

// Entitlement is the outcome of a plan-gate evaluation.
type Entitlement struct {
	Tier      string `json:"tier"`      // "genz" or "pay-per-session"
	Remaining int    `json:"remaining"` // meaningful only for genz
}

// AnswerFeedback is the synthesized result of one practice answer.
type AnswerFeedback struct {
	Rating          int    `json:"rating"`
	Stars           string `json:"stars"`
	ImprovedExample string `json:"improvedExample"`
}

// Clock abstracts time.Now for the plan gate and issuance flow so tests can
// pin "now".
type Clock func() time.Time
