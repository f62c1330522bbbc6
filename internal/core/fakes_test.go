package core

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"prepmate-backend-go/internal/db"
	"prepmate-backend-go/internal/models"
	"prepmate-backend-go/internal/payment"
)

// In-memory fakes for the db interfaces and external collaborators. Tests
// assert against their recorded state.

type fakeBookingRepo struct {
	mu         sync.Mutex
	bookings   map[string]*models.InterviewBooking
	failCreate error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[string]*models.InterviewBooking{}}
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *models.InterviewBooking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate != nil {
		return f.failCreate
	}
	if _, exists := f.bookings[booking.Passkey]; exists {
		return fmt.Errorf("booking with passkey '%s' already exists", booking.Passkey)
	}
	copied := *booking
	f.bookings[booking.Passkey] = &copied
	return nil
}

func (f *fakeBookingRepo) GetByPasskey(_ context.Context, passkey string) (*models.InterviewBooking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[passkey]
	if !ok {
		return nil, db.ErrNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) ListByUserID(_ context.Context, userID string) ([]*models.InterviewBooking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.InterviewBooking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bookings)
}

type fakeSubscriptionRepo struct {
	mu   sync.Mutex
	subs map[string]*models.Subscription
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: map[string]*models.Subscription{}}
}

func (f *fakeSubscriptionRepo) GetByUserID(_ context.Context, userID string) (*models.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sub, ok := f.subs[userID]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := *sub
	return &copied, nil
}

func (f *fakeSubscriptionRepo) Upsert(_ context.Context, sub *models.Subscription) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *sub
	f.subs[sub.UserID] = &copied
	return nil
}

func (f *fakeSubscriptionRepo) IncrementMonthlyUsage(_ context.Context, userID, monthKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	sub, ok := f.subs[userID]
	if !ok {
		return db.ErrNotFound
	}
	if sub.InterviewsUsedByMonth == nil {
		sub.InterviewsUsedByMonth = map[string]int{}
	}
	sub.InterviewsUsedByMonth[monthKey]++
	return nil
}

func (f *fakeSubscriptionRepo) usage(userID, monthKey string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	sub, ok := f.subs[userID]
	if !ok || sub.InterviewsUsedByMonth == nil {
		return 0
	}
	return sub.InterviewsUsedByMonth[monthKey]
}

type fakeProfileRepo struct {
	profiles map[string]*models.ProfileInfo
	err      error
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID string) (*models.ProfileInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.profiles[userID]
	if !ok {
		return nil, db.ErrNotFound
	}
	return p, nil
}

func (f *fakeProfileRepo) Upsert(_ context.Context, profile *models.ProfileInfo) error {
	if f.profiles == nil {
		f.profiles = map[string]*models.ProfileInfo{}
	}
	f.profiles[profile.UserID] = profile
	return nil
}

func (f *fakeProfileRepo) CountVerifiedURL(_ context.Context, provider, url, excludeUserID string) (int, error) {
	count := 0
	for id, p := range f.profiles {
		if id == excludeUserID {
			continue
		}
		link := p.Link(provider)
		if link != nil && link.Verified && link.URL == url {
			count++
		}
	}
	return count, nil
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, userID string) (*models.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, db.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	if f.users == nil {
		f.users = map[string]*models.User{}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	f.users[user.ID] = user
	return nil
}

type fakeAuditService struct {
	entries []models.AuditLog
}

func (f *fakeAuditService) CreateAuditLog(_ context.Context, logEntry models.AuditLog) error {
	f.entries = append(f.entries, logEntry)
	return nil
}

type fakePayments struct {
	orders        int
	verifyErr     error
	lastSignature string
}

func (f *fakePayments) CreateOrder(amountPaise int64, notes map[string]interface{}) (*payment.Order, error) {
	f.orders++
	return &payment.Order{
		OrderID:  fmt.Sprintf("order_test_%d", f.orders),
		Amount:   amountPaise,
		Currency: "INR",
		KeyID:    "rzp_test_key",
		Receipt:  "receipt_test",
	}, nil
}

func (f *fakePayments) VerifySignature(orderID, paymentID, signature string) error {
	f.lastSignature = signature
	return f.verifyErr
}

type fakePublisher struct {
	published [][]byte
}

func (f *fakePublisher) Publish(_ string, body []byte) error {
	f.published = append(f.published, body)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

var errBackendDown = errors.New("backend unavailable")
