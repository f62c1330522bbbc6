package core

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prepmate-backend-go/internal/cache"
	"prepmate-backend-go/internal/models"
	"prepmate-backend-go/internal/payment"
	"prepmate-backend-go/internal/random"
)

var bookingNow = time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)

func validRequest() models.CreateBookingRequest {
	return models.CreateBookingRequest{
		JobRole:   "Backend Engineer",
		Company:   "Acme",
		Date:      "2025-01-10",
		Time:      "10:00 AM",
		ResumeURL: "r.pdf",
	}
}

type bookingFixture struct {
	svc      BookingService
	bookings *fakeBookingRepo
	subs     *fakeSubscriptionRepo
	payments *fakePayments
	cache    cache.Cache
	audit    *fakeAuditService
	pub      *fakePublisher
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	f := &bookingFixture{
		bookings: newFakeBookingRepo(),
		subs:     newFakeSubscriptionRepo(),
		payments: &fakePayments{},
		cache:    cache.NewMemoryCache(),
		audit:    &fakeAuditService{},
		pub:      &fakePublisher{},
	}
	clock := func() time.Time { return bookingNow }
	planSvc := NewPlanService(f.subs, f.payments, f.audit, clock)
	svc, err := NewBookingService(BookingServiceDeps{
		BookingRepo:      f.bookings,
		SubscriptionRepo: f.subs,
		UserRepo:         &fakeUserRepo{},
		PlanService:      planSvc,
		Payments:         f.payments,
		AuditService:     f.audit,
		Cache:            f.cache,
		Publisher:        f.pub,
		Rand:             random.New(1),
		Now:              clock,
		SessionPrice:     29900,
	})
	require.NoError(t, err)
	f.svc = svc
	return f
}

func assertValidPasskey(t *testing.T, passkey string) {
	t.Helper()
	require.Len(t, passkey, 6)
	for _, r := range passkey {
		assert.True(t, r >= '0' && r <= '9', "passkey %q contains non-digit %q", passkey, r)
	}
}

func TestIssue_ValidationFailureHasNoSideEffects(t *testing.T) {
	f := newBookingFixture(t)

	req := validRequest()
	req.ResumeURL = ""
	req.Company = ""

	res, err := f.svc.Issue(context.Background(), "u1", req, nil)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, StateIdle, res.State)
	assert.Contains(t, res.FieldErrors, "resumeUrl")
	assert.Contains(t, res.FieldErrors, "company")
	assert.Equal(t, 0, f.bookings.count())
	assert.Equal(t, 0, f.payments.orders)
}

func TestIssue_QuotaCoveredPersistsOneBookingAndIncrementsOnce(t *testing.T) {
	f := newBookingFixture(t)
	require.NoError(t, f.subs.Upsert(context.Background(), activeGenzSub("u1", 1)))

	res, err := f.svc.Issue(context.Background(), "u1", validRequest(), nil)
	require.NoError(t, err)

	assert.Equal(t, StateIssued, res.State)
	assert.Equal(t,
		[]State{StateIdle, StateValidating, StateQuotaCovered, StateGenerating, StatePersisting, StateIssued},
		res.Transitions)
	assertValidPasskey(t, res.Passkey)
	assert.Equal(t, 1, f.bookings.count())
	assert.Equal(t, 2, f.subs.usage("u1", models.MonthKey(bookingNow)),
		"usage goes from 1 to exactly 2")
	assert.Equal(t, 0, f.payments.orders, "no payment order for covered bookings")
}

func TestIssue_ExhaustedQuotaRoutesToPaymentRequired(t *testing.T) {
	f := newBookingFixture(t)
	require.NoError(t, f.subs.Upsert(context.Background(), activeGenzSub("u1", 5)))

	res, err := f.svc.Issue(context.Background(), "u1", validRequest(), nil)
	assert.ErrorIs(t, err, ErrPaymentRequired)
	assert.Equal(t, StatePaymentRequired, res.State)
	assert.NotContains(t, res.Transitions, StateQuotaCovered)
	require.NotNil(t, res.Order)
	assert.Equal(t, int64(29900), res.Order.Amount)
	assert.Equal(t, 0, f.bookings.count())
}

func TestIssue_PaymentFailureReturnsToIdleWithoutCode(t *testing.T) {
	f := newBookingFixture(t)

	res, err := f.svc.Issue(context.Background(), "u1", validRequest(),
		&payment.Result{Status: payment.StatusFailure})
	assert.ErrorIs(t, err, ErrPaymentFailed)
	assert.Equal(t, StateIdle, res.State)
	assert.Empty(t, res.Passkey)
	assert.Equal(t, 0, f.bookings.count())
}

func TestIssue_EndToEndPayPerSession(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	// First call: no subscription document, so the flow demands payment.
	res, err := f.svc.Issue(ctx, "u1", validRequest(), nil)
	assert.ErrorIs(t, err, ErrPaymentRequired)
	assert.Equal(t,
		[]State{StateIdle, StateValidating, StatePaymentRequired},
		res.Transitions)
	require.NotNil(t, res.Order)

	// Second call: simulated payment success signal.
	res, err = f.svc.Issue(ctx, "u1", validRequest(),
		&payment.Result{Status: payment.StatusSuccess, PaymentID: "pay_123"})
	require.NoError(t, err)
	assert.Equal(t,
		[]State{StateIdle, StateValidating, StatePaymentRequired, StateGenerating, StatePersisting, StateIssued},
		res.Transitions)
	assertValidPasskey(t, res.Passkey)
	assert.NotEqual(t, "", res.Passkey)
	require.NotNil(t, res.Booking)
	assert.Equal(t, "pay_123", res.Booking.PaymentID)
	assert.False(t, res.Booking.IsUsed)
	assert.Equal(t, 1, f.bookings.count())
}

func TestIssue_MirrorsPasskeyIntoLocalCache(t *testing.T) {
	f := newBookingFixture(t)
	require.NoError(t, f.subs.Upsert(context.Background(), activeGenzSub("u1", 0)))

	res, err := f.svc.Issue(context.Background(), "u1", validRequest(), nil)
	require.NoError(t, err)

	cached, err := f.cache.Get(cache.UserKey("u1", cache.KeyGeneratedPasskey))
	require.NoError(t, err)
	assert.Equal(t, res.Passkey, cached)

	backupRaw, err := f.cache.Get(cache.UserKey("u1", cache.KeyBackupPasskey))
	require.NoError(t, err)
	var backup map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(backupRaw), &backup))
	assert.Equal(t, res.Passkey, backup["passkey"])
	assert.NotEmpty(t, backup["timestamp"])
}

func TestIssue_PersistenceFailureStillIssuesCode(t *testing.T) {
	f := newBookingFixture(t)
	require.NoError(t, f.subs.Upsert(context.Background(), activeGenzSub("u1", 0)))
	f.bookings.failCreate = errBackendDown

	res, err := f.svc.Issue(context.Background(), "u1", validRequest(), nil)
	require.NoError(t, err, "persistence failure is best-effort, not blocking")
	assert.Equal(t, StateIssued, res.State)
	assertValidPasskey(t, res.Passkey)

	emergency, err := f.cache.Get(cache.UserKey("u1", cache.KeyEmergencyPasskey))
	require.NoError(t, err)
	assert.Equal(t, res.Passkey, emergency)

	// The booking never landed, so the quota was not consumed.
	assert.Equal(t, 0, f.subs.usage("u1", models.MonthKey(bookingNow)))
}

func TestIssue_AnonymousDegradedMode(t *testing.T) {
	f := newBookingFixture(t)

	res, err := f.svc.Issue(context.Background(), "", validRequest(),
		&payment.Result{Status: payment.StatusSuccess, PaymentID: "pay_anon"})
	require.NoError(t, err)
	assert.True(t, res.Degraded)
	assertValidPasskey(t, res.Passkey)
	assert.Equal(t, 0, f.bookings.count(), "nothing is persisted without an identity")

	cached, err := f.cache.Get(cache.KeyAnonymousPasskey)
	require.NoError(t, err)
	assert.Equal(t, res.Passkey, cached)
}

func TestIssue_PublishesBookingIssuedEvent(t *testing.T) {
	f := newBookingFixture(t)
	require.NoError(t, f.subs.Upsert(context.Background(), activeGenzSub("u1", 0)))

	res, err := f.svc.Issue(context.Background(), "u1", validRequest(), nil)
	require.NoError(t, err)

	require.Len(t, f.pub.published, 1)
	var event map[string]interface{}
	require.NoError(t, json.Unmarshal(f.pub.published[0], &event))
	assert.Equal(t, res.Passkey, event["passkey"])
	assert.Equal(t, "u1", event["userId"])
}

// blockingBookingRepo parks Create until released so tests can observe an
// attempt mid-flight.
type blockingBookingRepo struct {
	*fakeBookingRepo
	entered   chan struct{}
	release   chan struct{}
	enterOnce sync.Once
}

func (b *blockingBookingRepo) Create(ctx context.Context, booking *models.InterviewBooking) error {
	b.enterOnce.Do(func() { close(b.entered) })
	<-b.release
	return b.fakeBookingRepo.Create(ctx, booking)
}

func TestIssue_SecondAttemptWhileInFlightIsRejected(t *testing.T) {
	subs := newFakeSubscriptionRepo()
	require.NoError(t, subs.Upsert(context.Background(), activeGenzSub("u1", 0)))
	payments := &fakePayments{}
	audit := &fakeAuditService{}
	blocking := &blockingBookingRepo{
		fakeBookingRepo: newFakeBookingRepo(),
		entered:         make(chan struct{}),
		release:         make(chan struct{}),
	}
	clock := func() time.Time { return bookingNow }
	svc, err := NewBookingService(BookingServiceDeps{
		BookingRepo:      blocking,
		SubscriptionRepo: subs,
		UserRepo:         &fakeUserRepo{},
		PlanService:      NewPlanService(subs, payments, audit, clock),
		Payments:         payments,
		AuditService:     audit,
		Cache:            cache.NewMemoryCache(),
		Rand:             random.New(1),
		Now:              clock,
		SessionPrice:     29900,
	})
	require.NoError(t, err)

	type outcome struct {
		res *IssueResult
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := svc.Issue(context.Background(), "u1", validRequest(), nil)
		done <- outcome{res, err}
	}()

	// Wait until the first attempt is parked inside persistence, then try
	// to start another one for the same user.
	<-blocking.entered
	res, err := svc.Issue(context.Background(), "u1", validRequest(), nil)
	assert.ErrorIs(t, err, ErrIssuanceInFlight)
	assert.Nil(t, res)

	close(blocking.release)
	first := <-done
	require.NoError(t, first.err)
	assert.Equal(t, StateIssued, first.res.State)

	// The guard is per user, so a later attempt succeeds once the first
	// finishes.
	res, err = svc.Issue(context.Background(), "u1", validRequest(), nil)
	require.NoError(t, err)
	assert.Equal(t, StateIssued, res.State)
}

func TestIssue_PostPaymentDeadlineForceFailsAsPaymentFailure(t *testing.T) {
	f := newBookingFixture(t)
	f.bookings.failCreate = context.DeadlineExceeded

	res, err := f.svc.Issue(context.Background(), "u1", validRequest(),
		&payment.Result{Status: payment.StatusSuccess, PaymentID: "pay_456"})

	assert.ErrorIs(t, err, ErrPaymentFailed)
	assert.Equal(t, StateFailed, res.State)
	assert.Equal(t, StateFailed, res.Transitions[len(res.Transitions)-1])
	assert.Empty(t, res.Passkey)
	// The payment id stays on the error so support can reconcile the charge.
	assert.Contains(t, err.Error(), "pay_456")
	assert.Equal(t, 0, f.bookings.count())
}

func TestIssue_PasskeysAreSixDigitsAcrossManyDraws(t *testing.T) {
	f := newBookingFixture(t)
	require.NoError(t, f.subs.Upsert(context.Background(), &models.Subscription{
		UserID:                "u1",
		Plan:                  models.PlanGenz,
		Status:                models.SubscriptionActive,
		EndDate:               bookingNow.AddDate(1, 0, 0),
		InterviewsUsedByMonth: map[string]int{},
	}))

	// Genz quota covers 5 bookings; draw them all.
	for i := 0; i < 5; i++ {
		res, err := f.svc.Issue(context.Background(), "u1", validRequest(), nil)
		require.NoError(t, err)
		assertValidPasskey(t, res.Passkey)
	}
	// The sixth routes to payment.
	_, err := f.svc.Issue(context.Background(), "u1", validRequest(), nil)
	assert.ErrorIs(t, err, ErrPaymentRequired)
}
