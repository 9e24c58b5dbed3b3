package pricing

import (
	"context"
	"errors"
	"fmt"
	"math"

	tariffRepo "gardenly/database/repository/tariff"
	"gardenly/models"
)

// Engine turns quantified tasks into prices using a provider's tariff.
// Identical (tasks, tariff) input always yields identical output.
type Engine struct {
	Tariffs tariffRepo.TariffRepository
}

// QuoteTask prices a single task against a tariff. The base unit price is
// the flat unit price, or the species/height table entry when the task
// names a species. The condition factor is the fixed multiplier unless the
// tariff defines its own surcharge table; a waste-removal factor composes
// on top when requested. The result is rounded up to the nearest whole
// currency unit per task.
func (e *Engine) QuoteTask(task models.Task, tariff *models.TariffConfig) (models.LineItem, error) {
	if err := task.Validate(); err != nil {
		return models.LineItem{}, fmt.Errorf("invalid task: %w", err)
	}

	base := tariff.UnitPrice
	if task.Species != "" {
		base = tariff.BasePriceFor(task.Species, task.HeightRange)
	}
	if base <= 0 {
		missing := []models.SpeciesSelection(nil)
		if task.Species != "" {
			missing = append(missing, models.SpeciesSelection{Species: task.Species, HeightRange: task.HeightRange})
		}
		return models.LineItem{}, &UnconfiguredTariffError{ServiceType: task.ServiceType, Missing: missing}
	}

	factor := 1.0
	if tariff.HasSurchargeTable() {
		if pct, ok := tariff.ConditionSurcharges[string(task.Condition)]; ok {
			factor = 1 + pct/100
		}
	} else {
		factor = task.Condition.Multiplier()
	}
	if task.WasteRemoval && tariff.WasteRemovalSurcharge > 0 {
		factor *= 1 + tariff.WasteRemovalSurcharge/100
	}

	amount := math.Ceil(base * factor * task.Quantity)

	return models.LineItem{
		ServiceType: task.ServiceType,
		Species:     task.Species,
		HeightRange: task.HeightRange,
		Condition:   task.Condition,
		Quantity:    task.Quantity,
		Unit:        task.Unit,
		UnitPrice:   base,
		Amount:      amount,
	}, nil
}

// QuoteJob prices a set of tasks. Unconfigured combinations across all
// tasks are collected into one blocking error rather than billed at 0.
// Line items keep the input task order.
func (e *Engine) QuoteJob(tasks []models.Task, tariff *models.TariffConfig) (models.Quote, error) {
	var quote models.Quote
	var missing []models.SpeciesSelection
	serviceType := ""

	for _, task := range tasks {
		item, err := e.QuoteTask(task, tariff)
		if err != nil {
			if uc, ok := err.(*UnconfiguredTariffError); ok {
				serviceType = uc.ServiceType
				missing = append(missing, uc.Missing...)
				continue
			}
			return models.Quote{}, err
		}
		quote.LineItems = append(quote.LineItems, item)
		quote.Total += item.Amount
	}

	if len(missing) > 0 || serviceType != "" {
		return models.Quote{}, &UnconfiguredTariffError{ServiceType: serviceType, Missing: dedupeSelections(missing)}
	}
	return quote, nil
}

// QuoteJobForProvider loads the provider's tariff and quotes the tasks.
// A provider without any tariff document cannot price anything, which is
// the same blocking condition as an unconfigured combination.
func (e *Engine) QuoteJobForProvider(ctx context.Context, providerID, serviceType string, tasks []models.Task) (models.Quote, error) {
	tariff, err := e.Tariffs.Get(ctx, providerID, serviceType)
	if err != nil {
		if errors.Is(err, tariffRepo.ErrNotFound) {
			return models.Quote{}, &UnconfiguredTariffError{ServiceType: serviceType}
		}
		return models.Quote{}, fmt.Errorf("failed to load tariff: %w", err)
	}
	return e.QuoteJob(tasks, tariff)
}

func dedupeSelections(sels []models.SpeciesSelection) []models.SpeciesSelection {
	seen := make(map[models.SpeciesSelection]struct{}, len(sels))
	out := make([]models.SpeciesSelection, 0, len(sels))
	for _, s := range sels {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
