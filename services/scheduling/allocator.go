package scheduling

import (
	"context"
	"fmt"
	"time"

	availabilityRepo "gardenly/database/repository/availability"
	bookingRepo "gardenly/database/repository/booking"
	"gardenly/models"
	"gardenly/utils"

	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// GapResolver supplies the buffer requirement for a provider. The default
// implementation reads a single configured value; a provider-level setting
// can replace it without touching the allocator.
type GapResolver interface {
	MinGapHours(ctx context.Context, providerID string) int
}

// FixedGapResolver returns the same gap for every provider.
type FixedGapResolver int

func (g FixedGapResolver) MinGapHours(context.Context, string) int { return int(g) }

// SlotAllocator answers which start hours allow a conflict-free booking of
// N contiguous hours, and scans forward across days when a date has none.
type SlotAllocator struct {
	Availability availabilityRepo.AvailabilityRepository
	Bookings     bookingRepo.BookingRepository
	Gaps         GapResolver
	Cache        *SlotCache // optional; nil disables memoization
}

// ValidStartHours returns, ascending, every hour on the date at which a
// booking of the given duration passes the buffer policy. Results are
// memoized per availability snapshot; claims and cancellations invalidate
// the cache key.
func (a *SlotAllocator) ValidStartHours(ctx context.Context, providerID, date string, duration int) ([]int, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("duration must be positive")
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	if a.Cache != nil {
		if hours, ok := a.Cache.Get(ctx, providerID, date, duration); ok {
			return hours, nil
		}
	}

	hours, err := a.computeStartHours(ctx, providerID, date, duration)
	if err != nil {
		return nil, err
	}

	if a.Cache != nil {
		if err := a.Cache.Set(ctx, providerID, date, duration, hours); err != nil {
			utils.GetLogger().Warn("failed to cache slot scan",
				zap.String("providerID", providerID), zap.String("date", date), zap.Error(err))
		}
	}
	return hours, nil
}

func (a *SlotAllocator) computeStartHours(ctx context.Context, providerID, date string, duration int) ([]int, error) {
	available, err := a.Availability.GetDay(ctx, providerID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to read availability: %w", err)
	}
	if len(available) == 0 {
		return []int{}, nil
	}

	bookings, err := a.Bookings.GetActiveForProviderDay(ctx, providerID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to read bookings: %w", err)
	}
	existing := make([]models.Interval, 0, len(bookings))
	for _, b := range bookings {
		existing = append(existing, b.Interval())
	}

	policy := BufferPolicy{MinGap: a.Gaps.MinGapHours(ctx, providerID)}
	valid := make([]int, 0, len(available))
	for _, h := range available {
		if policy.IsSequenceAvailable(available, existing, h, duration) {
			valid = append(valid, h)
		}
	}
	return valid, nil
}

// FirstAvailableSlot scans fromDate..fromDate+horizonDays-1 and returns the
// earliest passing hour, or nil when the horizon is exhausted. The scan is
// read-only and stops as soon as the context is cancelled.
func (a *SlotAllocator) FirstAvailableSlot(ctx context.Context, providerID, fromDate string, duration, horizonDays int) (*models.SlotSuggestion, error) {
	start, err := time.Parse(dateLayout, fromDate)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", fromDate, err)
	}
	if horizonDays <= 0 {
		return nil, fmt.Errorf("horizonDays must be positive")
	}

	for day := 0; day < horizonDays; day++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		date := start.AddDate(0, 0, day).Format(dateLayout)
		hours, err := a.ValidStartHours(ctx, providerID, date, duration)
		if err != nil {
			return nil, err
		}
		if len(hours) > 0 {
			return &models.SlotSuggestion{ProviderID: providerID, Date: date, Hour: hours[0]}, nil
		}
	}
	return nil, nil
}

// Invalidate drops memoized scans for a provider/date after a booking in
// that range changes status.
func (a *SlotAllocator) Invalidate(ctx context.Context, providerID, date string) {
	if a.Cache == nil {
		return
	}
	if err := a.Cache.Invalidate(ctx, providerID, date); err != nil {
		utils.GetLogger().Warn("failed to invalidate slot cache",
			zap.String("providerID", providerID), zap.String("date", date), zap.Error(err))
	}
}
