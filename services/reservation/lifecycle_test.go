package reservation

import (
	"context"
	"sync"
	"testing"

	"gardenly/models"
	"gardenly/services/notification"
	"gardenly/services/pricing"
	"gardenly/services/scheduling"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(store *memStore) (*DefaultReservationEngine, *recordingExpiry) {
	expiry := &recordingExpiry{}
	engine := &DefaultReservationEngine{
		Bookings: &fakeBookingRepo{store: store},
		Offers:   &fakeOfferRepo{store: store},
		Allocator: &scheduling.SlotAllocator{
			Availability: &fakeAvailRepo{store: store},
			Bookings:     &fakeBookingRepo{store: store},
			Gaps:         scheduling.FixedGapResolver(0),
		},
		Pricing:         &pricing.Engine{Tariffs: &fakeTariffRepo{store: store}},
		Notifier:        notification.NoopNotificationService{},
		Expiry:          expiry,
		MaxClaimRetries: 3,
	}
	return engine, expiry
}

func seedProvider(store *memStore, providerID, date string) {
	store.seedHours(providerID, date, models.DefaultScheduleHours())
	store.tariffs[providerID+"|lawn_mowing"] = &models.TariffConfig{
		SchemaVersion: models.TariffSchemaVersion,
		ProviderID:    providerID,
		ServiceType:   "lawn_mowing",
		UnitPrice:     2,
	}
}

func mowRequest(providerID, date string, start, duration int) CreateBookingRequest {
	return CreateBookingRequest{
		ProviderID:    providerID,
		ClientID:      "client-1",
		ServiceType:   "lawn_mowing",
		Date:          date,
		StartHour:     start,
		DurationHours: duration,
		Tasks: []models.Task{
			{ServiceType: "lawn_mowing", Quantity: 100, Unit: models.UnitArea},
		},
	}
}

func TestCreateBooking(t *testing.T) {
	store := newMemStore()
	seedProvider(store, "p1", "2026-09-01")
	engine, _ := newTestEngine(store)

	booking, err := engine.Create(context.Background(), mowRequest("p1", "2026-09-01", 9, 2))
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, booking.Status)
	assert.Equal(t, 200.0, booking.TotalPrice)

	// The claimed hours are gone from the calendar.
	hours := store.availableHours("p1", "2026-09-01")
	assert.NotContains(t, hours, 9)
	assert.NotContains(t, hours, 10)
	assert.Contains(t, hours, 8)
	assert.Contains(t, hours, 11)
}

func TestCreateBookingValidation(t *testing.T) {
	store := newMemStore()
	seedProvider(store, "p1", "2026-09-01")
	engine, _ := newTestEngine(store)
	ctx := context.Background()

	cases := []struct {
		name string
		req  CreateBookingRequest
	}{
		{"missing client", CreateBookingRequest{ProviderID: "p1", Date: "2026-09-01", StartHour: 9, DurationHours: 1}},
		{"bad date", mowRequest("p1", "01-09-2026", 9, 1)},
		{"bad hour", mowRequest("p1", "2026-09-01", 24, 1)},
		{"zero duration", mowRequest("p1", "2026-09-01", 9, 0)},
		{"past midnight", mowRequest("p1", "2026-09-01", 23, 2)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := engine.Create(ctx, tc.req)
			var rerr *RequestError
			assert.ErrorAs(t, err, &rerr)
		})
	}

	t.Run("no tasks and no quote", func(t *testing.T) {
		req := mowRequest("p1", "2026-09-01", 9, 1)
		req.Tasks = nil
		_, err := engine.Create(ctx, req)
		var rerr *RequestError
		assert.ErrorAs(t, err, &rerr)
	})
}

func TestCreateBookingSlotTaken(t *testing.T) {
	store := newMemStore()
	seedProvider(store, "p1", "2026-09-01")
	engine, _ := newTestEngine(store)
	ctx := context.Background()

	_, err := engine.Create(ctx, mowRequest("p1", "2026-09-01", 9, 2))
	require.NoError(t, err)

	_, err = engine.Create(ctx, mowRequest("p1", "2026-09-01", 10, 2))
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "p1", conflict.ProviderID)
	assert.NotContains(t, conflict.ValidHours, 9)
	assert.NotContains(t, conflict.ValidHours, 10)
	assert.Contains(t, conflict.ValidHours, 11)
}

func TestCreateBookingConcurrentClaim(t *testing.T) {
	store := newMemStore()
	seedProvider(store, "p1", "2026-09-01")
	engine, _ := newTestEngine(store)

	const claimers = 8
	var wg sync.WaitGroup
	results := make([]error, claimers)
	for i := 0; i < claimers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = engine.Create(context.Background(), mowRequest("p1", "2026-09-01", 9, 2))
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range results {
		if err == nil {
			wins++
			continue
		}
		var conflict *ConflictError
		assert.ErrorAs(t, err, &conflict)
	}
	assert.Equal(t, 1, wins)
}

func TestCancelRestoresAvailability(t *testing.T) {
	store := newMemStore()
	seedProvider(store, "p1", "2026-09-01")
	engine, _ := newTestEngine(store)
	ctx := context.Background()

	booking, err := engine.Create(ctx, mowRequest("p1", "2026-09-01", 9, 2))
	require.NoError(t, err)

	cancelled, err := engine.Cancel(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, cancelled.Status)

	// The slot can be booked again.
	again, err := engine.Create(ctx, mowRequest("p1", "2026-09-01", 9, 2))
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, again.Status)
}

func TestCancelRejectsTerminal(t *testing.T) {
	store := newMemStore()
	seedProvider(store, "p1", "2026-09-01")
	engine, _ := newTestEngine(store)
	ctx := context.Background()

	booking, err := engine.Create(ctx, mowRequest("p1", "2026-09-01", 9, 1))
	require.NoError(t, err)
	_, err = engine.Cancel(ctx, booking.ID)
	require.NoError(t, err)

	_, err = engine.Cancel(ctx, booking.ID)
	var rerr *RequestError
	assert.ErrorAs(t, err, &rerr)
}

func TestCancelUnknownBooking(t *testing.T) {
	engine, _ := newTestEngine(newMemStore())
	_, err := engine.Cancel(context.Background(), "missing")
	var rerr *RequestError
	assert.ErrorAs(t, err, &rerr)
}

func TestStartAndComplete(t *testing.T) {
	store := newMemStore()
	seedProvider(store, "p1", "2026-09-01")
	engine, _ := newTestEngine(store)
	ctx := context.Background()

	booking, err := engine.Create(ctx, mowRequest("p1", "2026-09-01", 9, 1))
	require.NoError(t, err)

	started, err := engine.Start(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingInProgress, started.Status)

	// Starting twice is rejected.
	_, err = engine.Start(ctx, booking.ID)
	var rerr *RequestError
	assert.ErrorAs(t, err, &rerr)

	completed, err := engine.Complete(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCompleted, completed.Status)

	// Completed bookings keep their hours consumed.
	hours := store.availableHours("p1", "2026-09-01")
	assert.NotContains(t, hours, 9)

	// And admit no further transitions.
	_, err = engine.Cancel(ctx, booking.ID)
	assert.ErrorAs(t, err, &rerr)
}

func TestCompleteDirectlyFromConfirmed(t *testing.T) {
	store := newMemStore()
	seedProvider(store, "p1", "2026-09-01")
	engine, _ := newTestEngine(store)
	ctx := context.Background()

	booking, err := engine.Create(ctx, mowRequest("p1", "2026-09-01", 9, 1))
	require.NoError(t, err)

	completed, err := engine.Complete(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCompleted, completed.Status)
}

func TestCreateUsesPresetQuote(t *testing.T) {
	store := newMemStore()
	seedProvider(store, "p1", "2026-09-01")
	engine, _ := newTestEngine(store)

	req := mowRequest("p1", "2026-09-01", 9, 1)
	req.Tasks = nil
	req.Quote = &models.Quote{Total: 123, LineItems: []models.LineItem{
		{ServiceType: "lawn_mowing", UnitPrice: 2, Amount: 123},
	}}

	booking, err := engine.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 123.0, booking.TotalPrice)
}
