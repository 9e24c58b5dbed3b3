package models

// LineItem is one priced entry of a quote or booking invoice.
type LineItem struct {
	ServiceType string    `bson:"serviceType" json:"serviceType"`
	Species     string    `bson:"species,omitempty" json:"species,omitempty"`
	HeightRange string    `bson:"heightRange,omitempty" json:"heightRange,omitempty"`
	Condition   Condition `bson:"condition,omitempty" json:"condition,omitempty"`
	Quantity    float64   `bson:"quantity" json:"quantity"`
	Unit        string    `bson:"unit" json:"unit"`
	UnitPrice   float64   `bson:"unitPrice" json:"unitPrice"` // resolved base price per unit
	Amount      float64   `bson:"amount" json:"amount"`       // final charge for the item
}

// Quote is the deterministic pricing result for a set of tasks.
type Quote struct {
	Total     float64    `json:"total"`
	LineItems []LineItem `json:"lineItems"`
}
