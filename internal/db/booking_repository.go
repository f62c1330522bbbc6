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

const bookingsCollection = "interview_bookings"

// ErrNotFound is a common error for when a document is not found in Firestore.
var ErrNotFound = errors.New("document not found")

// firestoreBookingRepository implements the BookingRepository interface using Firestore.
type firestoreBookingRepository struct {
	client *firestore.Client
}

// NewFirestoreBookingRepository creates a new instance of firestoreBookingRepository.
func NewFirestoreBookingRepository(client *firestore.Client) BookingRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for BookingRepository.")
	}
	return &firestoreBookingRepository{client: client}
}

// Create adds a new booking document. The passkey is the document ID so the
// redemption side can look bookings up by code directly. Create (not Set) is
// used so an unlikely passkey collision surfaces as AlreadyExists instead of
// silently overwriting another user's booking.
func (r *firestoreBookingRepository) Create(ctx context.Context, booking *models.InterviewBooking) error {
	if booking.Passkey == "" {
		return errors.New("booking passkey cannot be empty for Create operation")
	}
	_, err := r.client.Collection(bookingsCollection).Doc(booking.Passkey).Create(ctx, booking)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("booking with passkey '%s' already exists: %w", booking.Passkey, err)
		}
		return fmt.Errorf("failed to create booking with passkey '%s': %w", booking.Passkey, err)
	}
	return nil
}

// GetByPasskey retrieves a booking document by its passkey.
func (r *firestoreBookingRepository) GetByPasskey(ctx context.Context, passkey string) (*models.InterviewBooking, error) {
	if passkey == "" {
		return nil, errors.New("passkey cannot be empty for GetByPasskey operation")
	}
	docSnap, err := r.client.Collection(bookingsCollection).Doc(passkey).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("booking with passkey '%s' not found: %w", passkey, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get booking with passkey '%s': %w", passkey, err)
	}

	var booking models.InterviewBooking
	if err := docSnap.DataTo(&booking); err != nil {
		return nil, fmt.Errorf("failed to decode booking data for passkey '%s': %w", passkey, err)
	}
	booking.Passkey = docSnap.Ref.ID

	return &booking, nil
}

// ListByUserID retrieves all bookings belonging to a user, newest first.
func (r *firestoreBookingRepository) ListByUserID(ctx context.Context, userID string) ([]*models.InterviewBooking, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty for ListByUserID operation")
	}

	iter := r.client.Collection(bookingsCollection).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var bookings []*models.InterviewBooking
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate bookings for user '%s': %w", userID, err)
		}
		var booking models.InterviewBooking
		if err := docSnap.DataTo(&booking); err != nil {
			return nil, fmt.Errorf("failed to decode booking '%s': %w", docSnap.Ref.ID, err)
		}
		booking.Passkey = docSnap.Ref.ID
		bookings = append(bookings, &booking)
	}
	return bookings, nil
}
