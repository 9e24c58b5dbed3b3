package models

import "fmt"

// Condition describes the upkeep state of the item a task works on. It
// scales the base price either through a fixed multiplier or, when the
// tariff carries a surcharge table, through a percent surcharge.
type Condition string

const (
	ConditionNormal        Condition = "normal"
	ConditionNeglected     Condition = "neglected"
	ConditionVeryNeglected Condition = "very_neglected"
)

// Multiplier returns the fixed pricing factor for the condition, used by
// tariffs that do not define their own surcharge table.
func (c Condition) Multiplier() float64 {
	switch c {
	case ConditionNeglected:
		return 1.3
	case ConditionVeryNeglected:
		return 1.6
	default:
		return 1.0
	}
}

// Valid reports whether c is a known condition value.
func (c Condition) Valid() bool {
	switch c {
	case ConditionNormal, ConditionNeglected, ConditionVeryNeglected:
		return true
	}
	return false
}

// Unit values a task quantity may be expressed in.
const (
	UnitArea  = "area"
	UnitCount = "count"
)

// Task is one quantified unit of work produced by the quoting flow
// (estimator output or manual entry). Tasks are immutable once submitted.
type Task struct {
	ServiceType  string    `json:"serviceType"`
	Condition    Condition `json:"condition"`
	Quantity     float64   `json:"quantity"`
	Unit         string    `json:"unit"` // "area" or "count"
	Species      string    `json:"species,omitempty"`
	HeightRange  string    `json:"heightRange,omitempty"`
	WasteRemoval bool      `json:"wasteRemoval,omitempty"`
}

// Validate performs the basic numeric and enum checks applied to estimator
// output before it reaches the pricing engine.
func (t Task) Validate() error {
	if t.ServiceType == "" {
		return fmt.Errorf("serviceType is required")
	}
	if t.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative")
	}
	if t.Unit != UnitArea && t.Unit != UnitCount {
		return fmt.Errorf("unit must be %q or %q", UnitArea, UnitCount)
	}
	if t.Condition != "" && !t.Condition.Valid() {
		return fmt.Errorf("unknown condition %q", t.Condition)
	}
	return nil
}
