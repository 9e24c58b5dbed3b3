package pricing

import (
	"fmt"
	"strings"

	"gardenly/models"
)

// UnconfiguredTariffError blocks quote finalization when an active
// attribute combination resolves to price 0. It lists every missing
// combination so the provider can fix the tariff in one pass.
type UnconfiguredTariffError struct {
	ServiceType string
	Missing     []models.SpeciesSelection
}

func (e *UnconfiguredTariffError) Error() string {
	if len(e.Missing) == 0 {
		return fmt.Sprintf("tariff for %q has no configured price", e.ServiceType)
	}
	parts := make([]string, len(e.Missing))
	for i, m := range e.Missing {
		parts[i] = m.String()
	}
	return fmt.Sprintf("tariff for %q has no price for: %s", e.ServiceType, strings.Join(parts, ", "))
}
