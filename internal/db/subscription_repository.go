package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"prepmate-backend-go/internal/models"
)

const subscriptionsCollection = "subscriptions"

// firestoreSubscriptionRepository implements SubscriptionRepository using Firestore.
type firestoreSubscriptionRepository struct {
	client *firestore.Client
}

// NewFirestoreSubscriptionRepository creates a new instance of firestoreSubscriptionRepository.
func NewFirestoreSubscriptionRepository(client *firestore.Client) SubscriptionRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for SubscriptionRepository.")
	}
	return &firestoreSubscriptionRepository{client: client}
}

// GetByUserID retrieves a user's subscription document.
func (r *firestoreSubscriptionRepository) GetByUserID(ctx context.Context, userID string) (*models.Subscription, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty for GetByUserID operation")
	}
	docSnap, err := r.client.Collection(subscriptionsCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("subscription for user '%s' not found: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get subscription for user '%s': %w", userID, err)
	}

	var sub models.Subscription
	if err := docSnap.DataTo(&sub); err != nil {
		return nil, fmt.Errorf("failed to decode subscription for user '%s': %w", userID, err)
	}
	sub.UserID = docSnap.Ref.ID

	return &sub, nil
}

// Upsert writes the full subscription state for a user.
func (r *firestoreSubscriptionRepository) Upsert(ctx context.Context, sub *models.Subscription) error {
	if sub.UserID == "" {
		return errors.New("subscription userID cannot be empty for Upsert operation")
	}
	_, err := r.client.Collection(subscriptionsCollection).Doc(sub.UserID).Set(ctx, sub, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to upsert subscription for user '%s': %w", sub.UserID, err)
	}
	return nil
}

// IncrementMonthlyUsage adds one to interviewsUsedByMonth[monthKey] inside a
// transaction, so two sessions issuing at once cannot undercount the quota.
func (r *firestoreSubscriptionRepository) IncrementMonthlyUsage(ctx context.Context, userID, monthKey string) error {
	if userID == "" {
		return errors.New("userID cannot be empty for IncrementMonthlyUsage operation")
	}
	ref := r.client.Collection(subscriptionsCollection).Doc(userID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docSnap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return fmt.Errorf("subscription for user '%s' not found: %w", userID, ErrNotFound)
			}
			return err
		}

		var sub models.Subscription
		if err := docSnap.DataTo(&sub); err != nil {
			return fmt.Errorf("failed to decode subscription: %w", err)
		}
		if sub.InterviewsUsedByMonth == nil {
			sub.InterviewsUsedByMonth = make(map[string]int)
		}
		sub.InterviewsUsedByMonth[monthKey]++

		return tx.Update(ref, []firestore.Update{
			{Path: "interviewsUsedByMonth", Value: sub.InterviewsUsedByMonth},
		})
	})
	if err != nil {
		return fmt.Errorf("failed to increment monthly usage for user '%s': %w", userID, err)
	}
	return nil
}
