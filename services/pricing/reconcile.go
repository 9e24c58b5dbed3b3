package pricing

import (
	"fmt"
	"math"

	"gardenly/models"
)

// ReconcileToTotal redistributes line item amounts so they sum exactly to
// targetTotal, for invoices that must match an externally produced
// estimate. The difference between the target and the raw per-task sum is
// allocated across items proportionally to each item's reference unit
// price; the last item absorbs the rounding remainder so the sum is exact
// to the cent. All arithmetic runs in integer cents.
func ReconcileToTotal(items []models.LineItem, targetTotal float64) ([]models.LineItem, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("cannot reconcile an empty item list")
	}
	if targetTotal < 0 {
		return nil, fmt.Errorf("target total must not be negative")
	}

	targetCents := toCents(targetTotal)

	var weightSum float64
	for _, it := range items {
		if it.UnitPrice <= 0 {
			return nil, fmt.Errorf("line item %q has no reference unit price", it.ServiceType)
		}
		weightSum += it.UnitPrice
	}

	out := make([]models.LineItem, len(items))
	copy(out, items)

	var allocated int64
	for i := range out {
		share := out[i].UnitPrice / weightSum
		cents := int64(math.Round(float64(targetCents) * share))
		out[i].Amount = fromCents(cents)
		allocated += cents
	}

	// The last item absorbs whatever rounding left over.
	remainder := targetCents - allocated
	last := len(out) - 1
	out[last].Amount = fromCents(toCents(out[last].Amount) + remainder)

	return out, nil
}

func toCents(v float64) int64 {
	return int64(math.Round(v * 100))
}

func fromCents(c int64) float64 {
	return float64(c) / 100
}
