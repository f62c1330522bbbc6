package models

import "time"

// AuditLog represents a diagnostics event recorded alongside state changes.
type AuditLog struct {
	ID         string                 `json:"id" firestore:"-"`
	Timestamp  time.Time              `json:"timestamp" firestore:"timestamp,serverTimestamp"`
	UserID     string                 `json:"userId" firestore:"userId"` // Who performed the action
	Action     string                 `json:"action" firestore:"action"` // e.g., "PASSKEY_ISSUED", "PROFILE_VERIFIED", "PLAN_UPGRADED"
	TargetType string                 `json:"targetType,omitempty" firestore:"targetType,omitempty"` // e.g., "BOOKING", "PROFILE", "SUBSCRIPTION"
	TargetID   string                 `json:"targetId,omitempty" firestore:"targetId,omitempty"`     // ID of the affected entity
	Details    map[string]interface{} `json:"details,omitempty" firestore:"details,omitempty"`
}
