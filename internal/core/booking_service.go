package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"prepmate-backend-go/internal/cache"
	"prepmate-backend-go/internal/db"
	"prepmate-backend-go/internal/mailer"
	"prepmate-backend-go/internal/models"
	"prepmate-backend-go/internal/payment"
	"prepmate-backend-go/internal/queue"
)

// State of one issuance attempt. Every attempt starts Idle and either
// reaches Issued or falls back to Idle (validation, payment pending or
// cancelled) or Failed.
type State string

const (
	StateIdle            State = "idle"
	StateValidating      State = "validating"
	StatePaymentRequired State = "payment_required"
	StateQuotaCovered    State = "quota_covered"
	StateGenerating      State = "generating"
	StatePersisting      State = "persisting"
	StateIssued          State = "issued"
	StateFailed          State = "failed"
)

// PasskeyLength is the number of decimal digits in an issued code.
const PasskeyLength = 6

// postPaymentTimeout bounds the generate-and-persist step after a confirmed
// payment. When it expires the attempt is reported as a payment failure even
// though the charge may have gone through; callers surface a retry
// affordance rather than silently re-charging.
const postPaymentTimeout = 15 * time.Second

// Custom errors for the BookingService.
var (
	ErrValidation       = errors.New("booking request is missing required fields")
	ErrPaymentRequired  = errors.New("payment is required for this booking")
	ErrPaymentFailed    = errors.New("payment failed or was cancelled")
	ErrIssuanceInFlight = errors.New("an issuance attempt is already in progress for this user")
)

// IssueResult reports where an issuance attempt ended up. Transitions
// records every state the attempt passed through, in order.
type IssueResult struct {
	State       State                    `json:"state"`
	Transitions []State                  `json:"transitions"`
	Passkey     string                   `json:"passkey,omitempty"`
	Booking     *models.InterviewBooking `json:"booking,omitempty"`
	Entitlement Entitlement              `json:"entitlement"`
	Order       *payment.Order           `json:"order,omitempty"`       // set when payment is required
	FieldErrors map[string]string        `json:"fieldErrors,omitempty"` // set on validation failure
	Degraded    bool                     `json:"degraded,omitempty"`    // anonymous local-only issuance
}

// BookingServiceDeps carries the collaborators of the issuance flow.
// Publisher and Mailer may be nil; both are best-effort.
type BookingServiceDeps struct {
	BookingRepo      db.BookingRepository
	SubscriptionRepo db.SubscriptionRepository
	UserRepo         db.UserRepository
	PlanService      PlanService
	Payments         PaymentProvider
	AuditService     AuditService
	Cache            cache.Cache
	Publisher        queue.Publisher
	Mailer           *mailer.Mailer
	Rand             interface{ Intn(n int) int }
	Logger           *zap.Logger
	Now              Clock
	SessionPrice     int64 // paise
}

// bookingService implements the BookingService interface.
type bookingService struct {
	deps BookingServiceDeps

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewBookingService creates a new BookingService instance.
func NewBookingService(deps BookingServiceDeps) (BookingService, error) {
	if deps.BookingRepo == nil || deps.PlanService == nil || deps.Payments == nil ||
		deps.Cache == nil || deps.Rand == nil {
		return nil, errors.New("bookingService: required dependency not initialized")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &bookingService{
		deps:     deps,
		inFlight: make(map[string]bool),
	}, nil
}

// Issue runs one issuance attempt end to end. At most one attempt may be in
// flight per user; concurrent calls fail fast with ErrIssuanceInFlight.
func (s *bookingService) Issue(ctx context.Context, userID string, req models.CreateBookingRequest, payRes *payment.Result) (*IssueResult, error) {
	guardKey := userID
	if guardKey == "" {
		guardKey = "anonymous"
	}
	s.mu.Lock()
	if s.inFlight[guardKey] {
		s.mu.Unlock()
		return nil, ErrIssuanceInFlight
	}
	s.inFlight[guardKey] = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.inFlight, guardKey)
		s.mu.Unlock()
	}()

	result := &IssueResult{State: StateIdle, Transitions: []State{StateIdle}}
	advance := func(st State) {
		result.State = st
		result.Transitions = append(result.Transitions, st)
	}

	// Validating: field checks only, no side effects. A failure returns the
	// attempt to Idle with per-field errors.
	advance(StateValidating)
	if fieldErrors := validateBookingRequest(req); len(fieldErrors) > 0 {
		result.FieldErrors = fieldErrors
		advance(StateIdle)
		return result, ErrValidation
	}

	// Gate decision. Anonymous callers have no subscription and always pay.
	entitlement, _, err := s.deps.PlanService.Entitlement(ctx, userID)
	if err != nil {
		advance(StateFailed)
		return result, err
	}
	result.Entitlement = entitlement

	quotaCovered := entitlement.Tier == TierGenz && entitlement.Remaining > 0
	if quotaCovered {
		advance(StateQuotaCovered)
		return s.generateAndPersist(ctx, userID, req, result, "", true)
	}

	advance(StatePaymentRequired)
	switch {
	case payRes == nil || payRes.Status == payment.StatusNone:
		// First call: hand the client an order to open checkout with.
		order, err := s.deps.Payments.CreateOrder(s.deps.SessionPrice, map[string]interface{}{
			"purpose": "interview_session",
			"userId":  userID,
		})
		if err != nil {
			advance(StateFailed)
			return result, err
		}
		result.Order = order
		return result, ErrPaymentRequired

	case payRes.Status == payment.StatusFailure:
		// Cancellation or failure: back to Idle, no code.
		advance(StateIdle)
		return result, ErrPaymentFailed

	default: // payment.StatusSuccess
		if payRes.OrderID != "" && payRes.Signature != "" {
			if err := s.deps.Payments.VerifySignature(payRes.OrderID, payRes.PaymentID, payRes.Signature); err != nil {
				advance(StateFailed)
				return result, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
			}
		}

		// The post-payment window is bounded: past it the attempt force-fails
		// as a payment failure even if the charge succeeded. The payment id
		// is kept on the audit trail so support can reconcile.
		genCtx, cancel := context.WithTimeout(ctx, postPaymentTimeout)
		defer cancel()
		res, err := s.generateAndPersist(genCtx, userID, req, result, payRes.PaymentID, false)
		if err != nil && errors.Is(err, context.DeadlineExceeded) {
			result.State = StateFailed
			result.Transitions = append(result.Transitions, StateFailed)
			return result, fmt.Errorf("%w: timed out finalizing booking after payment %s", ErrPaymentFailed, payRes.PaymentID)
		}
		return res, err
	}
}

// generateAndPersist runs Generating -> Persisting -> Issued. Persistence is
// best-effort: a failed write is logged and mirrored to the emergency cache
// key, but the code is still issued.
func (s *bookingService) generateAndPersist(ctx context.Context, userID string, req models.CreateBookingRequest, result *IssueResult, paymentID string, quotaCovered bool) (*IssueResult, error) {
	advance := func(st State) {
		result.State = st
		result.Transitions = append(result.Transitions, st)
	}

	advance(StateGenerating)
	if err := ctx.Err(); err != nil {
		return result, err
	}
	passkey := s.generatePasskey()

	booking := &models.InterviewBooking{
		Passkey:        passkey,
		UserID:         userID,
		JobRole:        req.JobRole,
		Company:        req.Company,
		Date:           req.Date,
		Time:           req.Time,
		ResumeURL:      req.ResumeURL,
		JobDescription: req.JobDescription,
		PaymentID:      paymentID,
		IsUsed:         false,
	}

	advance(StatePersisting)
	persisted := false
	if userID == "" {
		// Anonymous degraded mode: no identity to persist under, the code
		// lives only in the local cache.
		result.Degraded = true
		s.cacheSet(cache.KeyAnonymousPasskey, passkey)
	} else {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := s.deps.BookingRepo.Create(ctx, booking); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return result, err
			}
			s.deps.Logger.Error("booking persistence failed, issuing code from cache only",
				zap.String("userID", userID), zap.Error(err))
			s.cacheSet(cache.UserKey(userID, cache.KeyEmergencyPasskey), passkey)
		} else {
			persisted = true
		}
	}

	// Mirror into the fast local cache regardless of persistence outcome.
	s.cacheSet(cache.UserKey(userID, cache.KeyGeneratedPasskey), passkey)
	if backup, err := json.Marshal(map[string]interface{}{
		"passkey":           passkey,
		"timestamp":         s.deps.Now().UTC().Format(time.RFC3339),
		"interview_details": req,
	}); err == nil {
		s.cacheSet(cache.UserKey(userID, cache.KeyBackupPasskey), string(backup))
	}

	// Quota consumption happens only for covered bookings that actually
	// landed in the store.
	if quotaCovered && persisted {
		monthKey := models.MonthKey(s.deps.Now())
		if err := s.deps.SubscriptionRepo.IncrementMonthlyUsage(ctx, userID, monthKey); err != nil {
			s.deps.Logger.Error("failed to increment monthly quota usage",
				zap.String("userID", userID), zap.String("monthKey", monthKey), zap.Error(err))
		}
	}

	advance(StateIssued)
	result.Passkey = passkey
	result.Booking = booking

	s.afterIssued(ctx, userID, booking)
	return result, nil
}

// afterIssued performs the best-effort post-issuance side effects: audit
// trail, booking-issued event, confirmation mail. None may fail the attempt.
func (s *bookingService) afterIssued(ctx context.Context, userID string, booking *models.InterviewBooking) {
	if s.deps.AuditService != nil && userID != "" {
		_ = s.deps.AuditService.CreateAuditLog(ctx, models.AuditLog{
			UserID:     userID,
			Action:     "PASSKEY_ISSUED",
			TargetType: "BOOKING",
			TargetID:   booking.Passkey,
			Details: map[string]interface{}{
				"jobRole": booking.JobRole,
				"company": booking.Company,
			},
		})
	}

	if s.deps.Publisher != nil {
		event := queue.BookingIssuedEvent{
			Passkey:  booking.Passkey,
			UserID:   userID,
			JobRole:  booking.JobRole,
			Company:  booking.Company,
			Date:     booking.Date,
			Time:     booking.Time,
			IssuedAt: s.deps.Now().UTC(),
		}
		if body, err := event.Encode(); err == nil {
			if err := s.deps.Publisher.Publish(queue.BookingIssuedQueue, body); err != nil {
				s.deps.Logger.Warn("failed to publish booking-issued event", zap.Error(err))
			}
		}
	}

	if s.deps.Mailer != nil && s.deps.UserRepo != nil && userID != "" {
		if user, err := s.deps.UserRepo.GetByID(ctx, userID); err == nil && user.Email != "" {
			if err := s.deps.Mailer.SendBookingConfirmation(
				user.Email, booking.Passkey, booking.JobRole, booking.Company,
				booking.Date, booking.Time); err != nil {
				s.deps.Logger.Warn("failed to send booking confirmation mail", zap.Error(err))
			}
		}
	}
}

// ListBookings returns the user's bookings, newest first.
func (s *bookingService) ListBookings(ctx context.Context, userID string) ([]*models.InterviewBooking, error) {
	if userID == "" {
		return nil, nil
	}
	bookings, err := s.deps.BookingRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for user '%s': %w", userID, err)
	}
	return bookings, nil
}

// generatePasskey draws six independent uniform decimal digits. Codes are
// not checked against existing bookings; the repository's Create rejects the
// one-in-a-million collision instead of overwriting.
func (s *bookingService) generatePasskey() string {
	digits := make([]byte, PasskeyLength)
	for i := range digits {
		digits[i] = byte('0' + s.deps.Rand.Intn(10))
	}
	return string(digits)
}

func (s *bookingService) cacheSet(key, value string) {
	if err := s.deps.Cache.Set(key, value, 24*time.Hour); err != nil {
		s.deps.Logger.Warn("fallback cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// validateBookingRequest returns per-field errors for every missing required
// field. An empty map means the request is valid.
func validateBookingRequest(req models.CreateBookingRequest) map[string]string {
	fieldErrors := map[string]string{}
	if req.ResumeURL == "" {
		fieldErrors["resumeUrl"] = "resume is required"
	}
	if req.JobRole == "" {
		fieldErrors["jobRole"] = "job role is required"
	}
	if req.Company == "" {
		fieldErrors["company"] = "company is required"
	}
	if req.Date == "" {
		fieldErrors["date"] = "date is required"
	}
	if req.Time == "" {
		fieldErrors["time"] = "time is required"
	}
	return fieldErrors
}
