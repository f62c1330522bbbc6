package db

import (
	"context"

	"prepmate-backend-go/internal/models"
)

// UserRepository defines the interface for user data storage operations.
type UserRepository interface {
	GetByID(ctx context.Context, userID string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
}

// BookingRepository defines the interface for interview-booking storage.
// Redemption (flipping isUsed) lives in the real-time assistant service and
// is intentionally absent here.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.InterviewBooking) error
	GetByPasskey(ctx context.Context, passkey string) (*models.InterviewBooking, error)
	ListByUserID(ctx context.Context, userID string) ([]*models.InterviewBooking, error)
}

// SubscriptionRepository defines the interface for subscription documents,
// one per user, keyed by the Firebase Auth UID.
type SubscriptionRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.Subscription, error)
	Upsert(ctx context.Context, sub *models.Subscription) error
	// IncrementMonthlyUsage atomically adds one to the usage counter for the
	// given month key.
	IncrementMonthlyUsage(ctx context.Context, userID, monthKey string) error
}

// ProfileRepository defines the interface for linked-profile documents.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.ProfileInfo, error)
	Upsert(ctx context.Context, profile *models.ProfileInfo) error
	// CountVerifiedURL returns how many users other than excludeUserID hold
	// the exact URL as a verified link for the given provider.
	CountVerifiedURL(ctx context.Context, provider, url, excludeUserID string) (int, error)
}

// AuditRepository defines the interface for audit log storage.
type AuditRepository interface {
	Create(ctx context.Context, logEntry models.AuditLog) error
}
