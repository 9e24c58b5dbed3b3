package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "gardenly/database/repository/booking"
	"gardenly/models"
	"gardenly/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

func validateCreateRequest(req CreateBookingRequest) error {
	if req.ProviderID == "" || req.ClientID == "" {
		return NewRequestError("providerId and clientId are required")
	}
	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return NewRequestError("invalid date %q", req.Date)
	}
	if !models.ValidHour(req.StartHour) {
		return NewRequestError("invalid startHour %d", req.StartHour)
	}
	if req.DurationHours <= 0 || req.StartHour+req.DurationHours > 24 {
		return NewRequestError("invalid duration %d from hour %d", req.DurationHours, req.StartHour)
	}
	for _, t := range req.Tasks {
		if err := t.Validate(); err != nil {
			return NewRequestError("%v", err)
		}
	}
	return nil
}

// Create claims the requested hours and persists the booking as one atomic
// unit. On a lost race it recomputes valid start hours and retries the
// same slot a bounded number of times (the hours may have been freed again
// by a cancellation); if the slot is genuinely gone it returns a
// ConflictError carrying the fresh alternatives.
func (e *DefaultReservationEngine) Create(ctx context.Context, req CreateBookingRequest) (*models.Booking, error) {
	logger := utils.GetLogger()

	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	quote := req.Quote
	if quote == nil && len(req.Tasks) > 0 {
		q, err := e.Pricing.QuoteJobForProvider(ctx, req.ProviderID, req.ServiceType, req.Tasks)
		if err != nil {
			return nil, err
		}
		quote = &q
	}
	if quote == nil {
		return nil, NewRequestError("either tasks or a quote is required")
	}

	now := time.Now()
	booking := &models.Booking{
		ID:            uuid.New().String(),
		OfferID:       req.OfferID,
		ProviderID:    req.ProviderID,
		ClientID:      req.ClientID,
		Date:          req.Date,
		StartHour:     req.StartHour,
		DurationHours: req.DurationHours,
		Status:        models.BookingConfirmed,
		TotalPrice:    quote.Total,
		LineItems:     quote.LineItems,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	retries := e.MaxClaimRetries
	if retries < 1 {
		retries = 1
	}
	for attempt := 1; ; attempt++ {
		valid, err := e.Allocator.ValidStartHours(ctx, req.ProviderID, req.Date, req.DurationHours)
		if err != nil {
			return nil, fmt.Errorf("failed to verify slot: %w", err)
		}
		if !containsHour(valid, req.StartHour) {
			return nil, &ConflictError{ProviderID: req.ProviderID, Date: req.Date, ValidHours: valid}
		}

		err = e.Bookings.ClaimSlot(ctx, booking)
		if err == nil {
			break
		}
		if !errors.Is(err, bookingRepo.ErrSlotConflict) {
			return nil, fmt.Errorf("failed to claim slot: %w", err)
		}

		// Lost the race: drop the stale scan and re-derive before retrying.
		e.Allocator.Invalidate(ctx, req.ProviderID, req.Date)
		if attempt >= retries {
			valid, verr := e.Allocator.ValidStartHours(ctx, req.ProviderID, req.Date, req.DurationHours)
			if verr != nil {
				valid = nil
			}
			return nil, &ConflictError{ProviderID: req.ProviderID, Date: req.Date, ValidHours: valid}
		}
		logger.Debug("slot claim lost race, retrying",
			zap.String("providerID", req.ProviderID), zap.String("date", req.Date),
			zap.Int("attempt", attempt))
	}

	e.Allocator.Invalidate(ctx, req.ProviderID, req.Date)
	e.Notifier.NotifyBookingEvent(ctx, *booking, "confirmed")
	return booking, nil
}

// Cancel releases the booking's hours and marks it cancelled. Legal from
// pending or confirmed only.
func (e *DefaultReservationEngine) Cancel(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := e.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, NewRequestError("booking %s not found", bookingID)
		}
		return nil, err
	}
	if !models.ValidTransition(booking.Status, models.BookingCancelled) {
		return nil, NewRequestError("booking %s cannot be cancelled from status %s", bookingID, booking.Status)
	}

	// Unscheduled broadcast candidates hold no hours; a plain status update
	// suffices for them.
	if booking.Date == "" {
		if err := e.Bookings.UpdateStatus(ctx, bookingID,
			[]models.BookingStatus{models.BookingPending}, models.BookingCancelled); err != nil {
			return nil, fmt.Errorf("failed to cancel candidate: %w", err)
		}
	} else {
		if err := e.Bookings.ReleaseSlot(ctx, booking, models.BookingCancelled); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusConflict) {
				return nil, NewRequestError("booking %s changed status concurrently", bookingID)
			}
			return nil, fmt.Errorf("failed to release slot: %w", err)
		}
		e.Allocator.Invalidate(ctx, booking.ProviderID, booking.Date)
	}

	booking.Status = models.BookingCancelled
	e.Notifier.NotifyBookingEvent(ctx, *booking, "cancelled")
	return booking, nil
}

// Start moves a confirmed booking to in_progress. No availability effect.
func (e *DefaultReservationEngine) Start(ctx context.Context, bookingID string) (*models.Booking, error) {
	return e.transition(ctx, bookingID,
		[]models.BookingStatus{models.BookingConfirmed}, models.BookingInProgress, "")
}

// Complete finishes a booking from confirmed or in_progress. The hours
// remain consumed for that date.
func (e *DefaultReservationEngine) Complete(ctx context.Context, bookingID string) (*models.Booking, error) {
	return e.transition(ctx, bookingID,
		[]models.BookingStatus{models.BookingConfirmed, models.BookingInProgress},
		models.BookingCompleted, "completed")
}

func (e *DefaultReservationEngine) transition(ctx context.Context, bookingID string, from []models.BookingStatus, to models.BookingStatus, event string) (*models.Booking, error) {
	booking, err := e.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, NewRequestError("booking %s not found", bookingID)
		}
		return nil, err
	}
	if err := e.Bookings.UpdateStatus(ctx, bookingID, from, to); err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			return nil, NewRequestError("booking %s cannot move from %s to %s", bookingID, booking.Status, to)
		}
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	booking.Status = to
	if event != "" {
		e.Notifier.NotifyBookingEvent(ctx, *booking, event)
	}
	return booking, nil
}

func containsHour(hours []int, h int) bool {
	for _, v := range hours {
		if v == h {
			return true
		}
	}
	return false
}
