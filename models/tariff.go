package models

import "fmt"

// TariffSchemaVersion is the current on-disk schema for tariff configs.
// Version 1 configs carried a single flat price and no surcharge tables;
// Migrate upgrades them on read.
const TariffSchemaVersion = 2

// SpeciesSelection marks one (species, heightRange) combination a provider
// has declared as offered. Every selected combination must resolve to a
// price > 0 before the tariff is complete.
type SpeciesSelection struct {
	Species     string `bson:"species" json:"species"`
	HeightRange string `bson:"heightRange" json:"heightRange"`
}

func (s SpeciesSelection) String() string {
	return fmt.Sprintf("%s/%s", s.Species, s.HeightRange)
}

// TariffConfig holds a provider's pricing rules for one service type.
// Simple services use UnitPrice; complex item types (e.g. palm trimming)
// use the nested species table plus percent surcharges.
type TariffConfig struct {
	SchemaVersion int    `bson:"schemaVersion" json:"schemaVersion"`
	ProviderID    string `bson:"providerId" json:"providerId"`
	ServiceType   string `bson:"serviceType" json:"serviceType"`

	// UnitPrice is the flat price per quantity unit. Ignored when
	// SpeciesPrices is populated and the task names a species.
	UnitPrice float64 `bson:"unitPrice,omitempty" json:"unitPrice,omitempty"`

	// SpeciesPrices maps species -> heightRange -> base price per item.
	// A missing entry resolves to 0 and is treated as unconfigured.
	SpeciesPrices map[string]map[string]float64 `bson:"speciesPrices,omitempty" json:"speciesPrices,omitempty"`

	// Selected lists the species/height combinations the provider offers.
	Selected []SpeciesSelection `bson:"selected,omitempty" json:"selected,omitempty"`

	// ConditionSurcharges maps condition -> surcharge percent (e.g. 20 for
	// +20%). When present it replaces the fixed condition multipliers.
	ConditionSurcharges map[string]float64 `bson:"conditionSurcharges,omitempty" json:"conditionSurcharges,omitempty"`

	// WasteRemovalSurcharge is the percent added when waste removal is
	// requested. Zero means waste removal is included in the base price.
	WasteRemovalSurcharge float64 `bson:"wasteRemovalSurcharge,omitempty" json:"wasteRemovalSurcharge,omitempty"`

	// BasePrice is the legacy v1 field, kept only so old documents decode.
	BasePrice float64 `bson:"basePrice,omitempty" json:"-"`
}

// BasePriceFor resolves the base price for a species/height combination.
// Returns 0 when the combination is not configured.
func (t TariffConfig) BasePriceFor(species, heightRange string) float64 {
	if heights, ok := t.SpeciesPrices[species]; ok {
		return heights[heightRange]
	}
	return 0
}

// HasSurchargeTable reports whether the tariff prices conditions through
// percent surcharges rather than fixed multipliers.
func (t TariffConfig) HasSurchargeTable() bool {
	return len(t.ConditionSurcharges) > 0
}

// MissingCombinations returns the selected combinations whose base price
// resolves to 0. An empty result means the tariff is complete.
func (t TariffConfig) MissingCombinations() []SpeciesSelection {
	var missing []SpeciesSelection
	for _, sel := range t.Selected {
		if t.BasePriceFor(sel.Species, sel.HeightRange) <= 0 {
			missing = append(missing, sel)
		}
	}
	return missing
}

// Validate checks the tariff is complete enough to quote against: every
// selected combination priced, or a positive flat unit price when no
// species table is declared.
func (t TariffConfig) Validate() error {
	if t.ProviderID == "" || t.ServiceType == "" {
		return fmt.Errorf("providerId and serviceType are required")
	}
	if len(t.Selected) > 0 {
		if missing := t.MissingCombinations(); len(missing) > 0 {
			return fmt.Errorf("tariff incomplete: %d selected combinations have no price", len(missing))
		}
		return nil
	}
	if len(t.SpeciesPrices) == 0 && t.UnitPrice <= 0 {
		return fmt.Errorf("tariff requires a positive unitPrice or a species price table")
	}
	return nil
}

// Migrate upgrades a config read from storage to the current schema
// version. It is explicit rather than field-guessing: each version bump
// gets its own step.
func (t *TariffConfig) Migrate() {
	if t.SchemaVersion >= TariffSchemaVersion {
		return
	}
	// v1 -> v2: the single basePrice field became unitPrice; surcharge
	// tables did not exist and default to empty (fixed multipliers apply).
	if t.SchemaVersion <= 1 {
		if t.UnitPrice == 0 && t.BasePrice > 0 {
			t.UnitPrice = t.BasePrice
		}
		t.BasePrice = 0
	}
	t.SchemaVersion = TariffSchemaVersion
}
