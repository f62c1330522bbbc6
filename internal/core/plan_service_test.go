package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prepmate-backend-go/internal/models"
	"prepmate-backend-go/internal/payment"
)

var planNow = time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

func activeGenzSub(userID string, used int) *models.Subscription {
	return &models.Subscription{
		UserID:    userID,
		Plan:      models.PlanGenz,
		Status:    models.SubscriptionActive,
		StartDate: planNow.AddDate(0, 0, -10),
		EndDate:   planNow.AddDate(0, 0, 20),
		InterviewsUsedByMonth: map[string]int{
			models.MonthKey(planNow): used,
		},
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		sub  *models.Subscription
		want Entitlement
	}{
		{
			name: "nil subscription is pay-per-session",
			sub:  nil,
			want: Entitlement{Tier: TierPayPerSession, Remaining: 0},
		},
		{
			name: "active genz with unused quota",
			sub:  activeGenzSub("u1", 2),
			want: Entitlement{Tier: TierGenz, Remaining: 3},
		},
		{
			name: "active genz with exhausted quota",
			sub:  activeGenzSub("u1", 5),
			want: Entitlement{Tier: TierGenz, Remaining: 0},
		},
		{
			name: "usage over quota clamps to zero",
			sub:  activeGenzSub("u1", 7),
			want: Entitlement{Tier: TierGenz, Remaining: 0},
		},
		{
			name: "expired end date overrides usage counters",
			sub: &models.Subscription{
				Plan:                  models.PlanGenz,
				Status:                models.SubscriptionActive,
				EndDate:               planNow.AddDate(0, 0, -1),
				InterviewsUsedByMonth: map[string]int{},
			},
			want: Entitlement{Tier: TierPayPerSession, Remaining: 0},
		},
		{
			name: "inactive status is pay-per-session",
			sub: &models.Subscription{
				Plan:    models.PlanGenz,
				Status:  "canceled",
				EndDate: planNow.AddDate(0, 1, 0),
			},
			want: Entitlement{Tier: TierPayPerSession, Remaining: 0},
		},
		{
			name: "free plan is pay-per-session",
			sub: &models.Subscription{
				Plan:    models.PlanFree,
				Status:  models.SubscriptionActive,
				EndDate: planNow.AddDate(0, 1, 0),
			},
			want: Entitlement{Tier: TierPayPerSession, Remaining: 0},
		},
		{
			name: "usage from another month does not count",
			sub: &models.Subscription{
				Plan:    models.PlanGenz,
				Status:  models.SubscriptionActive,
				EndDate: planNow.AddDate(0, 1, 0),
				InterviewsUsedByMonth: map[string]int{
					"2024-12": 5,
				},
			},
			want: Entitlement{Tier: TierGenz, Remaining: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.sub, planNow))
		})
	}
}

func TestEntitlement_MissingSubscriptionMeansPayPerSession(t *testing.T) {
	subs := newFakeSubscriptionRepo()
	svc := NewPlanService(subs, &fakePayments{}, nil, func() time.Time { return planNow })

	ent, sub, err := svc.Entitlement(context.Background(), "no-such-user")
	require.NoError(t, err)
	assert.Nil(t, sub)
	assert.Equal(t, Entitlement{Tier: TierPayPerSession, Remaining: 0}, ent)
}

func TestUpgradeToGenz(t *testing.T) {
	subs := newFakeSubscriptionRepo()
	audit := &fakeAuditService{}
	svc := NewPlanService(subs, &fakePayments{}, audit, func() time.Time { return planNow })

	sub, err := svc.UpgradeToGenz(context.Background(), "u1", payment.Result{
		Status:    payment.StatusSuccess,
		PaymentID: "pay_upgrade",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PlanGenz, sub.Plan)
	assert.Equal(t, models.SubscriptionActive, sub.Status)
	assert.Equal(t, planNow.AddDate(0, 1, 0), sub.EndDate)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, "PLAN_UPGRADED", audit.entries[0].Action)

	// The fresh subscription now gates to genz with a full quota.
	ent, _, err := svc.Entitlement(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, Entitlement{Tier: TierGenz, Remaining: 5}, ent)
}

func TestUpgradeToGenz_RejectsUnverifiedPayment(t *testing.T) {
	svc := NewPlanService(newFakeSubscriptionRepo(), &fakePayments{}, nil, func() time.Time { return planNow })

	_, err := svc.UpgradeToGenz(context.Background(), "u1", payment.Result{Status: payment.StatusFailure})
	assert.ErrorIs(t, err, ErrPaymentNotVerified)

	_, err = svc.UpgradeToGenz(context.Background(), "u1", payment.Result{Status: payment.StatusSuccess})
	assert.ErrorIs(t, err, ErrPaymentNotVerified, "success without a payment id is not verifiable")
}
