package scheduling

import (
	"context"
	"testing"

	"gardenly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAvailability struct {
	// provider -> date -> available hours
	days map[string]map[string][]int
}

func (f *fakeAvailability) GetDay(_ context.Context, providerID, date string) ([]int, error) {
	return f.days[providerID][date], nil
}

func (f *fakeAvailability) GetRange(_ context.Context, providerID, from, to string) (map[string][]int, error) {
	out := map[string][]int{}
	for date, hours := range f.days[providerID] {
		if date >= from && date <= to {
			out[date] = hours
		}
	}
	return out, nil
}

func (f *fakeAvailability) SetAvailable(_ context.Context, providerID, date string, hours []int) error {
	if f.days[providerID] == nil {
		f.days[providerID] = map[string][]int{}
	}
	merged := append(f.days[providerID][date], hours...)
	f.days[providerID][date] = models.SortedHours(merged)
	return nil
}

func (f *fakeAvailability) SetUnavailable(_ context.Context, providerID, date string, hours []int) error {
	drop := map[int]struct{}{}
	for _, h := range hours {
		drop[h] = struct{}{}
	}
	var kept []int
	for _, h := range f.days[providerID][date] {
		if _, ok := drop[h]; !ok {
			kept = append(kept, h)
		}
	}
	f.days[providerID][date] = kept
	return nil
}

func (f *fakeAvailability) ApplyDefaultSchedule(ctx context.Context, providerID, date string) error {
	if len(f.days[providerID][date]) == 0 {
		return f.SetAvailable(ctx, providerID, date, models.DefaultScheduleHours())
	}
	return nil
}

func (f *fakeAvailability) ClearDay(_ context.Context, providerID, date string) error {
	delete(f.days[providerID], date)
	return nil
}

func (f *fakeAvailability) EnsureIndexes() error { return nil }

type fakeDayBookings struct {
	// provider -> date -> bookings
	active map[string]map[string][]models.Booking
}

func (f *fakeDayBookings) GetActiveForProviderDay(_ context.Context, providerID, date string) ([]models.Booking, error) {
	return f.active[providerID][date], nil
}

func (f *fakeDayBookings) Insert(context.Context, *models.Booking) error       { return nil }
func (f *fakeDayBookings) GetByID(context.Context, string) (*models.Booking, error) {
	return nil, nil
}
func (f *fakeDayBookings) GetByOfferID(context.Context, string) ([]models.Booking, error) {
	return nil, nil
}
func (f *fakeDayBookings) UpdateStatus(context.Context, string, []models.BookingStatus, models.BookingStatus) error {
	return nil
}
func (f *fakeDayBookings) ClaimSlot(context.Context, *models.Booking) error     { return nil }
func (f *fakeDayBookings) ClaimExisting(context.Context, *models.Booking) error { return nil }
func (f *fakeDayBookings) ReleaseSlot(context.Context, *models.Booking, models.BookingStatus) error {
	return nil
}
func (f *fakeDayBookings) EnsureIndexes() error { return nil }

func newTestAllocator(avail *fakeAvailability, bookings *fakeDayBookings, gap int) *SlotAllocator {
	return &SlotAllocator{
		Availability: avail,
		Bookings:     bookings,
		Gaps:         FixedGapResolver(gap),
	}
}

func TestSetAvailableIdempotent(t *testing.T) {
	avail := &fakeAvailability{days: map[string]map[string][]int{}}
	ctx := context.Background()

	require.NoError(t, avail.SetAvailable(ctx, "p1", "2026-09-01", []int{8, 9, 10}))
	once, err := avail.GetDay(ctx, "p1", "2026-09-01")
	require.NoError(t, err)

	// Applying the same hour set again changes nothing.
	require.NoError(t, avail.SetAvailable(ctx, "p1", "2026-09-01", []int{8, 9, 10}))
	twice, err := avail.GetDay(ctx, "p1", "2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, once, twice)
	assert.Equal(t, []int{8, 9, 10}, twice)

	// Same for unset: repeating the removal leaves the day as is.
	require.NoError(t, avail.SetUnavailable(ctx, "p1", "2026-09-01", []int{9}))
	require.NoError(t, avail.SetUnavailable(ctx, "p1", "2026-09-01", []int{9}))
	hours, err := avail.GetDay(ctx, "p1", "2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, []int{8, 10}, hours)

	// A scan over the repeated-write day sees the same start hours.
	alloc := newTestAllocator(avail, &fakeDayBookings{}, 0)
	starts, err := alloc.ValidStartHours(ctx, "p1", "2026-09-01", 1)
	require.NoError(t, err)
	assert.Equal(t, []int{8, 10}, starts)
}

func TestValidStartHours(t *testing.T) {
	avail := &fakeAvailability{days: map[string]map[string][]int{
		"p1": {"2026-09-01": hoursRange(8, 17)},
	}}
	bookings := &fakeDayBookings{active: map[string]map[string][]models.Booking{
		"p1": {"2026-09-01": {
			{ID: "b1", StartHour: 10, DurationHours: 2, Status: models.BookingConfirmed},
		}},
	}}
	alloc := newTestAllocator(avail, bookings, 0)

	hours, err := alloc.ValidStartHours(context.Background(), "p1", "2026-09-01", 2)
	require.NoError(t, err)
	assert.Equal(t, []int{8, 12, 13, 14, 15, 16}, hours)
}

func TestValidStartHoursSatisfyPolicy(t *testing.T) {
	avail := &fakeAvailability{days: map[string]map[string][]int{
		"p1": {"2026-09-01": {8, 9, 10, 11, 13, 14, 15}},
	}}
	bookings := &fakeDayBookings{active: map[string]map[string][]models.Booking{
		"p1": {"2026-09-01": {
			{ID: "b1", StartHour: 14, DurationHours: 1, Status: models.BookingConfirmed},
		}},
	}}
	alloc := newTestAllocator(avail, bookings, 1)

	for duration := 1; duration <= 4; duration++ {
		hours, err := alloc.ValidStartHours(context.Background(), "p1", "2026-09-01", duration)
		require.NoError(t, err)

		// Every returned hour must pass the policy the allocator applied.
		policy := BufferPolicy{MinGap: 1}
		available := avail.days["p1"]["2026-09-01"]
		existing := []models.Interval{{Start: 14, Duration: 1}}
		for _, h := range hours {
			assert.True(t, policy.IsSequenceAvailable(available, existing, h, duration),
				"hour %d duration %d", h, duration)
		}
	}
}

func TestValidStartHoursRejectsBadInput(t *testing.T) {
	alloc := newTestAllocator(&fakeAvailability{}, &fakeDayBookings{}, 0)

	_, err := alloc.ValidStartHours(context.Background(), "p1", "2026-09-01", 0)
	assert.Error(t, err)

	_, err = alloc.ValidStartHours(context.Background(), "p1", "not-a-date", 1)
	assert.Error(t, err)
}

func TestValidStartHoursEmptyDay(t *testing.T) {
	alloc := newTestAllocator(&fakeAvailability{days: map[string]map[string][]int{}}, &fakeDayBookings{}, 0)

	hours, err := alloc.ValidStartHours(context.Background(), "p1", "2026-09-01", 1)
	require.NoError(t, err)
	assert.Empty(t, hours)
}

func TestFirstAvailableSlot(t *testing.T) {
	avail := &fakeAvailability{days: map[string]map[string][]int{
		"p1": {
			"2026-09-03": hoursRange(8, 17),
		},
	}}
	alloc := newTestAllocator(avail, &fakeDayBookings{}, 0)

	slot, err := alloc.FirstAvailableSlot(context.Background(), "p1", "2026-09-01", 2, 7)
	require.NoError(t, err)
	require.NotNil(t, slot)
	assert.Equal(t, "2026-09-03", slot.Date)
	assert.Equal(t, 8, slot.Hour)
}

func TestFirstAvailableSlotHorizonExhausted(t *testing.T) {
	alloc := newTestAllocator(&fakeAvailability{days: map[string]map[string][]int{}}, &fakeDayBookings{}, 0)

	slot, err := alloc.FirstAvailableSlot(context.Background(), "p1", "2026-09-01", 1, 5)
	require.NoError(t, err)
	assert.Nil(t, slot)
}

func TestFirstAvailableSlotCancelledContext(t *testing.T) {
	alloc := newTestAllocator(&fakeAvailability{days: map[string]map[string][]int{}}, &fakeDayBookings{}, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := alloc.FirstAvailableSlot(ctx, "p1", "2026-09-01", 1, 30)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRankProvidersByAvailability(t *testing.T) {
	avail := &fakeAvailability{days: map[string]map[string][]int{
		"early": {"2026-09-01": hoursRange(8, 17)},
		"late":  {"2026-09-04": hoursRange(8, 17)},
	}}
	alloc := newTestAllocator(avail, &fakeDayBookings{}, 0)

	ranked := alloc.RankProvidersByAvailability(context.Background(),
		[]string{"late", "none", "early"}, "2026-09-01", 1, 7, 2)

	require.Len(t, ranked, 3)
	assert.Equal(t, "early", ranked[0].ProviderID)
	assert.Equal(t, "late", ranked[1].ProviderID)
	assert.Equal(t, "none", ranked[2].ProviderID)
	assert.Nil(t, ranked[2].Slot)
}
