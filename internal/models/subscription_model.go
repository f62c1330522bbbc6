package models

import (
	"fmt"
	"time"
)

// Plan and status values stored on a Subscription document.
const (
	PlanFree = "free"
	PlanGenz = "genz"

	SubscriptionActive = "active"
)

// GenzMonthlyQuota is the number of bookings a genz subscriber gets per
// calendar month without per-booking payment.
const GenzMonthlyQuota = 5

// Subscription represents a user's subscription document.
// The document ID is the user's Firebase Auth UID (one subscription per user).
type Subscription struct {
	UserID                string         `json:"userId" firestore:"-"` // Document ID
	Plan                  string         `json:"plan" firestore:"plan"`
	Status                string         `json:"status" firestore:"status"`
	StartDate             time.Time      `json:"startDate" firestore:"startDate"`
	EndDate               time.Time      `json:"endDate" firestore:"endDate"`
	InterviewsUsedByMonth map[string]int `json:"interviewsUsedByMonth" firestore:"interviewsUsedByMonth"`
	UpdatedAt             time.Time      `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}

// MonthKey returns the usage-map key for the month containing t, e.g. "2025-1".
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%d-%d", t.Year(), int(t.Month()))
}

// UsedInMonth returns the recorded usage count for the month containing t.
// A nil map or absent key counts as zero.
func (s *Subscription) UsedInMonth(t time.Time) int {
	if s == nil || s.InterviewsUsedByMonth == nil {
		return 0
	}
	return s.InterviewsUsedByMonth[MonthKey(t)]
}
