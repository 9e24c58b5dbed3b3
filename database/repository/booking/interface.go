package bookingRepo

import (
	"context"
	"errors"

	"gardenly/database"
	"gardenly/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrSlotConflict is returned when a claim loses the race for its hours:
// another booking flipped at least one targeted hour first.
var ErrSlotConflict = errors.New("slot conflict: requested hours are no longer available")

// ErrStatusConflict is returned when a conditional status update matches no
// document, i.e. the booking is not in an allowed source status.
var ErrStatusConflict = errors.New("booking is not in an allowed status for this transition")

// ErrNotFound is returned when a booking does not exist.
var ErrNotFound = errors.New("booking not found")

// BookingRepository persists bookings and performs the coupled
// availability/booking transaction for slot claims and releases.
type BookingRepository interface {
	Insert(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// GetActiveForProviderDay returns the provider's bookings on the date in
	// a status that occupies hours (pending, confirmed, in_progress).
	GetActiveForProviderDay(ctx context.Context, providerID, date string) ([]models.Booking, error)
	GetByOfferID(ctx context.Context, offerID string) ([]models.Booking, error)
	// UpdateStatus moves the booking to the target status only if its
	// current status is one of from; otherwise ErrStatusConflict.
	UpdateStatus(ctx context.Context, id string, from []models.BookingStatus, to models.BookingStatus) error
	// ClaimSlot atomically flips the booking's hours to unavailable and
	// inserts the booking. Fails with ErrSlotConflict, applying nothing,
	// when any targeted hour is already taken.
	ClaimSlot(ctx context.Context, booking *models.Booking) error
	// ClaimExisting atomically assigns a slot to an already-persisted
	// candidate booking (broadcast winner): flips the hours, sets the slot
	// fields, and confirms the booking. ErrSlotConflict on a lost race,
	// ErrStatusConflict when the candidate is no longer pending.
	ClaimExisting(ctx context.Context, booking *models.Booking) error
	// ReleaseSlot atomically moves the booking to the target terminal status
	// and flips its hours back to available.
	ReleaseSlot(ctx context.Context, booking *models.Booking, to models.BookingStatus) error
	EnsureIndexes() error
}

type mongoBookingRepo struct {
	bookingColl      *mongo.Collection
	availabilityColl *mongo.Collection
}

// NewMongoBookingRepo constructs a MongoDB-backed BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	db := database.DB()
	return &mongoBookingRepo{
		bookingColl:      db.Collection("bookings"),
		availabilityColl: db.Collection("availability"),
	}
}
