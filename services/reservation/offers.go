package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "gardenly/database/repository/booking"
	offerRepo "gardenly/database/repository/offer"
	"gardenly/models"
	"gardenly/services/pricing"
	"gardenly/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Offer broadcasts a job to a set of eligible providers. Each provider
// gets an independent candidate booking priced against its own tariff; the
// candidates hold no calendar hours (different providers never contend for
// the same availability rows, and no hours are claimed until Claim).
// Providers whose tariff cannot price the job are skipped.
func (e *DefaultReservationEngine) Offer(ctx context.Context, req OfferRequest) (*models.Offer, []models.Booking, error) {
	logger := utils.GetLogger()

	if req.ClientID == "" || req.ServiceType == "" {
		return nil, nil, NewRequestError("clientId and serviceType are required")
	}
	if len(req.ProviderIDs) == 0 {
		return nil, nil, NewRequestError("at least one provider is required")
	}
	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return nil, nil, NewRequestError("invalid date %q", req.Date)
	}
	if req.DurationHours <= 0 {
		return nil, nil, NewRequestError("durationHours must be positive")
	}
	for _, t := range req.Tasks {
		if err := t.Validate(); err != nil {
			return nil, nil, NewRequestError("%v", err)
		}
	}

	now := time.Now()
	offer := &models.Offer{
		ID:            uuid.New().String(),
		ClientID:      req.ClientID,
		ServiceType:   req.ServiceType,
		Tasks:         req.Tasks,
		Date:          req.Date,
		DurationHours: req.DurationHours,
		ProviderIDs:   req.ProviderIDs,
		Status:        models.OfferOpen,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var candidates []models.Booking
	for _, providerID := range req.ProviderIDs {
		quote, err := e.Pricing.QuoteJobForProvider(ctx, providerID, req.ServiceType, req.Tasks)
		if err != nil {
			var uc *pricing.UnconfiguredTariffError
			if errors.As(err, &uc) {
				logger.Info("skipping provider with unconfigured tariff",
					zap.String("providerID", providerID), zap.String("offerID", offer.ID))
				continue
			}
			return nil, nil, fmt.Errorf("failed to quote provider %s: %w", providerID, err)
		}

		// Candidates carry no date: they stay out of day conflict queries
		// until the claim fixes a slot.
		candidates = append(candidates, models.Booking{
			ID:            uuid.New().String(),
			OfferID:       offer.ID,
			ProviderID:    providerID,
			ClientID:      req.ClientID,
			DurationHours: req.DurationHours,
			Status:        models.BookingPending,
			TotalPrice:    quote.Total,
			LineItems:     quote.LineItems,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}
	if len(candidates) == 0 {
		return nil, nil, NewRequestError("no provider can price this job")
	}

	if err := e.Offers.Insert(ctx, offer); err != nil {
		return nil, nil, fmt.Errorf("failed to persist offer: %w", err)
	}
	for i := range candidates {
		if err := e.Bookings.Insert(ctx, &candidates[i]); err != nil {
			return nil, nil, fmt.Errorf("failed to persist candidate for %s: %w", candidates[i].ProviderID, err)
		}
	}
	return offer, candidates, nil
}

// Claim fixes the chosen provider and slot for an open offer. Exactly one
// concurrent claimer wins the offer; the winner's candidate booking then
// claims its hours atomically. Losing siblings are expired asynchronously.
func (e *DefaultReservationEngine) Claim(ctx context.Context, offerID, providerID, date string, startHour int) (*models.Booking, error) {
	logger := utils.GetLogger()

	offer, err := e.Offers.GetByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, offerRepo.ErrNotFound) {
			return nil, NewRequestError("offer %s not found", offerID)
		}
		return nil, err
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, NewRequestError("invalid date %q", date)
	}
	if !models.ValidHour(startHour) || startHour+offer.DurationHours > 24 {
		return nil, NewRequestError("invalid startHour %d for duration %d", startHour, offer.DurationHours)
	}

	candidate, err := e.candidateFor(ctx, offerID, providerID)
	if err != nil {
		return nil, err
	}

	// The slot must pass the buffer policy before the offer is consumed.
	valid, err := e.Allocator.ValidStartHours(ctx, providerID, date, offer.DurationHours)
	if err != nil {
		return nil, fmt.Errorf("failed to verify slot: %w", err)
	}
	if !containsHour(valid, startHour) {
		return nil, &ConflictError{ProviderID: providerID, Date: date, ValidHours: valid}
	}

	if err := e.Offers.Claim(ctx, offerID, providerID); err != nil {
		if errors.Is(err, offerRepo.ErrOfferClaimed) {
			return nil, &OfferClaimedError{OfferID: offerID}
		}
		return nil, fmt.Errorf("failed to claim offer: %w", err)
	}

	candidate.Date = date
	candidate.StartHour = startHour
	if err := e.Bookings.ClaimExisting(ctx, candidate); err != nil {
		// The offer reopens so the client can pick another slot or provider.
		if uerr := e.Offers.UpdateStatus(ctx, offerID, models.OfferOpen); uerr != nil {
			logger.Error("failed to reopen offer after lost claim",
				zap.String("offerID", offerID), zap.Error(uerr))
		}
		if errors.Is(err, bookingRepo.ErrSlotConflict) {
			e.Allocator.Invalidate(ctx, providerID, date)
			fresh, verr := e.Allocator.ValidStartHours(ctx, providerID, date, offer.DurationHours)
			if verr != nil {
				fresh = nil
			}
			return nil, &ConflictError{ProviderID: providerID, Date: date, ValidHours: fresh}
		}
		return nil, fmt.Errorf("failed to claim candidate slot: %w", err)
	}
	candidate.Status = models.BookingConfirmed
	e.Allocator.Invalidate(ctx, providerID, date)

	// Losing siblings expire in the background; the claim does not wait.
	if err := e.Expiry.ScheduleSiblingExpiry(ctx, offerID, candidate.ID); err != nil {
		logger.Error("failed to schedule sibling expiry",
			zap.String("offerID", offerID), zap.Error(err))
	}
	e.Notifier.NotifyBookingEvent(ctx, *candidate, "confirmed")
	return candidate, nil
}

func (e *DefaultReservationEngine) candidateFor(ctx context.Context, offerID, providerID string) (*models.Booking, error) {
	siblings, err := e.Bookings.GetByOfferID(ctx, offerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load offer candidates: %w", err)
	}
	for i := range siblings {
		if siblings[i].ProviderID == providerID && siblings[i].Status == models.BookingPending {
			return &siblings[i], nil
		}
	}
	return nil, NewRequestError("provider %s has no open candidate for offer %s", providerID, offerID)
}

// ExpireSiblings marks every pending candidate except the winner expired.
// Invoked by the background worker after a claim.
func (e *DefaultReservationEngine) ExpireSiblings(ctx context.Context, offerID, winningBookingID string) error {
	siblings, err := e.Bookings.GetByOfferID(ctx, offerID)
	if err != nil {
		return fmt.Errorf("failed to load offer candidates: %w", err)
	}
	for _, sib := range siblings {
		if sib.ID == winningBookingID || sib.Status != models.BookingPending {
			continue
		}
		err := e.Bookings.UpdateStatus(ctx, sib.ID,
			[]models.BookingStatus{models.BookingPending}, models.BookingExpired)
		if err != nil && !errors.Is(err, bookingRepo.ErrStatusConflict) {
			return fmt.Errorf("failed to expire candidate %s: %w", sib.ID, err)
		}
	}
	return nil
}
