package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"prepmate-backend-go/internal/models"
)

const profilesCollection = "profiles"

// firestoreProfileRepository implements ProfileRepository using Firestore.
type firestoreProfileRepository struct {
	client *firestore.Client
}

// NewFirestoreProfileRepository creates a new instance of firestoreProfileRepository.
func NewFirestoreProfileRepository(client *firestore.Client) ProfileRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for ProfileRepository.")
	}
	return &firestoreProfileRepository{client: client}
}

// GetByUserID retrieves a user's linked-profile document.
func (r *firestoreProfileRepository) GetByUserID(ctx context.Context, userID string) (*models.ProfileInfo, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty for GetByUserID operation")
	}
	docSnap, err := r.client.Collection(profilesCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("profile for user '%s' not found: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get profile for user '%s': %w", userID, err)
	}

	var profile models.ProfileInfo
	if err := docSnap.DataTo(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile for user '%s': %w", userID, err)
	}
	profile.UserID = docSnap.Ref.ID

	return &profile, nil
}

// Upsert writes the full profile document for a user.
func (r *firestoreProfileRepository) Upsert(ctx context.Context, profile *models.ProfileInfo) error {
	if profile.UserID == "" {
		return errors.New("profile userID cannot be empty for Upsert operation")
	}
	_, err := r.client.Collection(profilesCollection).Doc(profile.UserID).Set(ctx, profile, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to upsert profile for user '%s': %w", profile.UserID, err)
	}
	return nil
}

// CountVerifiedURL counts users other than excludeUserID holding the exact
// URL as a verified link for the provider. The profile service uses this to
// enforce verified-URL uniqueness before marking a link verified.
func (r *firestoreProfileRepository) CountVerifiedURL(ctx context.Context, provider, url, excludeUserID string) (int, error) {
	if provider != models.ProviderGitHub && provider != models.ProviderLinkedIn {
		return 0, fmt.Errorf("unsupported profile provider '%s'", provider)
	}

	iter := r.client.Collection(profilesCollection).
		Where(provider+".url", "==", url).
		Where(provider+".verified", "==", true).
		Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to query verified %s URLs: %w", provider, err)
		}
		if docSnap.Ref.ID == excludeUserID {
			continue
		}
		count++
	}
	return count, nil
}
