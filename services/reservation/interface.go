package reservation

import (
	"context"

	bookingRepo "gardenly/database/repository/booking"
	offerRepo "gardenly/database/repository/offer"
	"gardenly/models"
	"gardenly/services/notification"
	"gardenly/services/pricing"
	"gardenly/services/scheduling"
)

// CreateBookingRequest carries everything needed to claim a slot and
// persist a booking in one step.
type CreateBookingRequest struct {
	ProviderID    string        `json:"providerId"`
	ClientID      string        `json:"clientId"`
	ServiceType   string        `json:"serviceType"`
	Date          string        `json:"date"`
	StartHour     int           `json:"startHour"`
	DurationHours int           `json:"durationHours"`
	Tasks         []models.Task `json:"tasks"`
	// Quote overrides on-the-fly pricing when the caller already holds a
	// finalized quote (e.g. from the drafts flow).
	Quote *models.Quote `json:"quote,omitempty"`
	// OfferID links the booking to the broadcast it answers, if any.
	OfferID string `json:"offerId,omitempty"`
}

// OfferRequest broadcasts one job to a set of eligible providers.
type OfferRequest struct {
	ClientID      string        `json:"clientId"`
	ServiceType   string        `json:"serviceType"`
	Date          string        `json:"date"`
	DurationHours int           `json:"durationHours"`
	Tasks         []models.Task `json:"tasks"`
	ProviderIDs   []string      `json:"providerIds"`
}

// ExpiryScheduler schedules the sweep that expires losing candidates after
// a broadcast offer is claimed.
type ExpiryScheduler interface {
	ScheduleSiblingExpiry(ctx context.Context, offerID, winningBookingID string) error
}

// ReservationEngine owns the booking state machine: slot claims, offers,
// cancellation and completion.
type ReservationEngine interface {
	Create(ctx context.Context, req CreateBookingRequest) (*models.Booking, error)
	Cancel(ctx context.Context, bookingID string) (*models.Booking, error)
	Start(ctx context.Context, bookingID string) (*models.Booking, error)
	Complete(ctx context.Context, bookingID string) (*models.Booking, error)
	Offer(ctx context.Context, req OfferRequest) (*models.Offer, []models.Booking, error)
	Claim(ctx context.Context, offerID, providerID, date string, startHour int) (*models.Booking, error)
}

// DefaultReservationEngine is the production implementation.
type DefaultReservationEngine struct {
	Bookings  bookingRepo.BookingRepository
	Offers    offerRepo.OfferRepository
	Allocator *scheduling.SlotAllocator
	Pricing   *pricing.Engine
	Notifier  notification.NotificationService
	Expiry    ExpiryScheduler
	// MaxClaimRetries bounds the automatic retry loop on SlotConflict
	// before the conflict is surfaced to the caller.
	MaxClaimRetries int
}
