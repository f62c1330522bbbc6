package models

import "time"

// Profile providers supported for verified-link enrichment.
const (
	ProviderGitHub   = "github"
	ProviderLinkedIn = "linkedin"
)

// ProfileLink is one external profile attached to a user.
// Verified may only be set if no other user's profile holds the same URL
// as verified; the uniqueness check lives in the profile service.
type ProfileLink struct {
	Username string `json:"username" firestore:"username"`
	URL      string `json:"url" firestore:"url"`
	Verified bool   `json:"verified" firestore:"verified"`
}

// ProfileInfo holds a user's linked external profiles.
// The document ID is the user's Firebase Auth UID.
type ProfileInfo struct {
	UserID    string       `json:"userId" firestore:"-"` // Document ID
	GitHub    *ProfileLink `json:"github,omitempty" firestore:"github,omitempty"`
	LinkedIn  *ProfileLink `json:"linkedin,omitempty" firestore:"linkedin,omitempty"`
	UpdatedAt time.Time    `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}

// Link returns the profile link for the given provider, or nil.
func (p *ProfileInfo) Link(provider string) *ProfileLink {
	if p == nil {
		return nil
	}
	switch provider {
	case ProviderGitHub:
		return p.GitHub
	case ProviderLinkedIn:
		return p.LinkedIn
	}
	return nil
}
