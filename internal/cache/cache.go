// Package cache provides the best-effort local fallback store for issued
// passkeys. Entries here are never authoritative: Firestore is the system of
// record, the cache only keeps the last issued code reachable when the
// backend write failed or the caller was anonymous.
package cache

import "time"

// Well-known cache keys mirrored from the issuance flow. Per-user keys are
// built with UserKey so two users never collide.
const (
	KeyGeneratedPasskey = "generatedPasskey"
	KeyBackupPasskey    = "backup_passkey"
	KeyAnonymousPasskey = "anonymous_passkey"
	KeyEmergencyPasskey = "emergency_passkey"
)

// Cache defines the interface for the local fallback store.
type Cache interface {
	Get(key string) (string, error)
	Set(key string, value interface{}, expiration time.Duration) error
	Delete(key string) error
}

// UserKey namespaces a cache key by user ID.
func UserKey(userID, key string) string {
	if userID == "" {
		return key
	}
	return userID + ":" + key
}
