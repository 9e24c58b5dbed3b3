package scheduling

import (
	"context"
	"sort"
	"sync"

	"gardenly/models"
	"gardenly/utils"

	"go.uber.org/zap"
)

// RankedSlot pairs a provider with its earliest bookable slot.
type RankedSlot struct {
	ProviderID string                 `json:"providerId"`
	Slot       *models.SlotSuggestion `json:"slot"` // nil when the horizon is exhausted
}

// RankProvidersByAvailability scans each candidate provider's calendar in
// parallel and orders them by earliest bookable slot. Providers without a
// slot inside the horizon sort last. Scans are independent reads; workers
// bounds the fan-out so a large candidate set cannot overwhelm the store.
func (a *SlotAllocator) RankProvidersByAvailability(ctx context.Context, providerIDs []string, fromDate string, duration, horizonDays, workers int) []RankedSlot {
	logger := utils.GetLogger()
	if workers <= 0 {
		workers = 1
	}

	results := make([]RankedSlot, len(providerIDs))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, id := range providerIDs {
		wg.Add(1)
		go func(i int, providerID string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			slot, err := a.FirstAvailableSlot(ctx, providerID, fromDate, duration, horizonDays)
			if err != nil {
				logger.Warn("availability scan failed",
					zap.String("providerID", providerID), zap.Error(err))
				slot = nil
			}
			results[i] = RankedSlot{ProviderID: providerID, Slot: slot}
		}(i, id)
	}
	wg.Wait()

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i].Slot, results[j].Slot
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		return a.Hour < b.Hour
	})
	return results
}
