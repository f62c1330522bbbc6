package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"prepmate-backend-go/internal/db"
	"prepmate-backend-go/internal/models"
	"prepmate-backend-go/internal/payment"
)

// Tier values returned by the plan gate.
const (
	TierGenz          = "genz"
	TierPayPerSession = "pay-per-session"
)

// Custom errors for the PlanService.
var (
	ErrPaymentNotVerified = errors.New("payment could not be verified for plan upgrade")
)

// planService implements the PlanService interface.
type planService struct {
	subscriptionRepo db.SubscriptionRepository
	payments         PaymentProvider
	auditService     AuditService
	now              Clock
}

// NewPlanService creates a new PlanService instance.
func NewPlanService(sr db.SubscriptionRepository, pp PaymentProvider, as AuditService, now Clock) PlanService {
	if now == nil {
		now = time.Now
	}
	return &planService{
		subscriptionRepo: sr,
		payments:         pp,
		auditService:     as,
		now:              now,
	}
}

// Evaluate is the pure plan-gate decision. Tier is genz only while the
// subscription is active and unexpired; everything else pays per session,
// for which Remaining is 0 by definition.
func Evaluate(sub *models.Subscription, now time.Time) Entitlement {
	if sub == nil ||
		sub.Plan != models.PlanGenz ||
		sub.Status != models.SubscriptionActive ||
		!now.Before(sub.EndDate) {
		return Entitlement{Tier: TierPayPerSession, Remaining: 0}
	}

	remaining := models.GenzMonthlyQuota - sub.UsedInMonth(now)
	if remaining < 0 {
		remaining = 0
	}
	return Entitlement{Tier: TierGenz, Remaining: remaining}
}

// Entitlement re-reads the subscription document and evaluates it. A missing
// document means the user never subscribed and gates to pay-per-session.
func (s *planService) Entitlement(ctx context.Context, userID string) (Entitlement, *models.Subscription, error) {
	if userID == "" {
		return Entitlement{Tier: TierPayPerSession}, nil, nil
	}

	sub, err := s.subscriptionRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return Entitlement{Tier: TierPayPerSession}, nil, nil
		}
		return Entitlement{}, nil, fmt.Errorf("failed to read subscription for user '%s': %w", userID, err)
	}
	return Evaluate(sub, s.now()), sub, nil
}

// UpgradeToGenz flips the user's subscription to an active genz plan with a
// one-month window, after verifying the payment. Usage counters are kept:
// an upgrade mid-month does not reset bookings already consumed.
func (s *planService) UpgradeToGenz(ctx context.Context, userID string, payRes payment.Result) (*models.Subscription, error) {
	if payRes.Status != payment.StatusSuccess || payRes.PaymentID == "" {
		return nil, fmt.Errorf("%w: no successful payment in callback", ErrPaymentNotVerified)
	}
	// The checkout signature is only present when the client went through the
	// Razorpay modal; the bare payment_id redirect form carries none.
	if payRes.OrderID != "" && payRes.Signature != "" {
		if err := s.payments.VerifySignature(payRes.OrderID, payRes.PaymentID, payRes.Signature); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPaymentNotVerified, err)
		}
	}

	existing, err := s.subscriptionRepo.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("failed to read subscription for user '%s': %w", userID, err)
	}

	now := s.now()
	sub := &models.Subscription{
		UserID:                userID,
		Plan:                  models.PlanGenz,
		Status:                models.SubscriptionActive,
		StartDate:             now,
		EndDate:               now.AddDate(0, 1, 0),
		InterviewsUsedByMonth: map[string]int{},
	}
	if existing != nil && existing.InterviewsUsedByMonth != nil {
		sub.InterviewsUsedByMonth = existing.InterviewsUsedByMonth
	}

	if err := s.subscriptionRepo.Upsert(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to activate genz plan for user '%s': %w", userID, err)
	}

	if s.auditService != nil {
		_ = s.auditService.CreateAuditLog(ctx, models.AuditLog{
			UserID:     userID,
			Action:     "PLAN_UPGRADED",
			TargetType: "SUBSCRIPTION",
			TargetID:   userID,
			Details:    map[string]interface{}{"paymentId": payRes.PaymentID},
		})
	}
	return sub, nil
}
