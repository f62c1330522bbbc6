package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"prepmate-backend-go/internal/db"
	"prepmate-backend-go/internal/models"
)

// Custom errors for the ProfileService.
var (
	ErrProfileNotFound     = errors.New("profile not found")
	ErrUnsupportedProvider = errors.New("unsupported profile provider")
	ErrLinkMissing         = errors.New("no link set for this provider")
	ErrURLAlreadyVerified  = errors.New("this URL is already verified by another account")
)

// profileService implements the ProfileService interface.
type profileService struct {
	profileRepo  db.ProfileRepository
	auditService AuditService
}

// NewProfileService creates a new ProfileService instance.
func NewProfileService(pr db.ProfileRepository, as AuditService) ProfileService {
	return &profileService{profileRepo: pr, auditService: as}
}

// Get retrieves the user's linked profiles.
func (s *profileService) Get(ctx context.Context, userID string) (*models.ProfileInfo, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: user '%s'", ErrProfileNotFound, userID)
		}
		return nil, fmt.Errorf("failed to get profile for user '%s': %w", userID, err)
	}
	return profile, nil
}

// SetLink attaches or replaces a provider link. Setting a link always resets
// its verified flag: verification is a separate, explicit step.
func (s *profileService) SetLink(ctx context.Context, userID, provider, username, url string) (*models.ProfileInfo, error) {
	provider = strings.ToLower(provider)
	if provider != models.ProviderGitHub && provider != models.ProviderLinkedIn {
		return nil, fmt.Errorf("%w: '%s'", ErrUnsupportedProvider, provider)
	}
	if url == "" {
		return nil, fmt.Errorf("%w: url is required", ErrLinkMissing)
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("failed to get profile for user '%s': %w", userID, err)
		}
		profile = &models.ProfileInfo{UserID: userID}
	}

	link := &models.ProfileLink{Username: username, URL: url, Verified: false}
	switch provider {
	case models.ProviderGitHub:
		profile.GitHub = link
	case models.ProviderLinkedIn:
		profile.LinkedIn = link
	}

	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile for user '%s': %w", userID, err)
	}
	return profile, nil
}

// VerifyLink marks the provider link verified, but only if no other account
// already holds the exact URL as verified. The uniqueness check runs against
// all profiles before the flag is written.
func (s *profileService) VerifyLink(ctx context.Context, userID, provider string) (*models.ProfileInfo, error) {
	provider = strings.ToLower(provider)
	if provider != models.ProviderGitHub && provider != models.ProviderLinkedIn {
		return nil, fmt.Errorf("%w: '%s'", ErrUnsupportedProvider, provider)
	}

	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	link := profile.Link(provider)
	if link == nil || link.URL == "" {
		return nil, fmt.Errorf("%w: provider '%s'", ErrLinkMissing, provider)
	}
	if link.Verified {
		return profile, nil // already verified, nothing to do
	}

	count, err := s.profileRepo.CountVerifiedURL(ctx, provider, link.URL, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check URL uniqueness for user '%s': %w", userID, err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: %s", ErrURLAlreadyVerified, link.URL)
	}

	link.Verified = true
	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save verified profile for user '%s': %w", userID, err)
	}

	if s.auditService != nil {
		_ = s.auditService.CreateAuditLog(ctx, models.AuditLog{
			UserID:     userID,
			Action:     "PROFILE_VERIFIED",
			TargetType: "PROFILE",
			TargetID:   userID,
			Details:    map[string]interface{}{"provider": provider, "url": link.URL},
		})
	}
	return profile, nil
}
