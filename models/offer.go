package models

import "time"

// OfferStatus tracks a broadcast job offer.
type OfferStatus string

const (
	OfferOpen      OfferStatus = "open"
	OfferClaimed   OfferStatus = "claimed"
	OfferCancelled OfferStatus = "cancelled"
	OfferExpired   OfferStatus = "expired"
)

// Offer is a job broadcast to several eligible providers at once. Each
// provider receives an independent candidate booking; only the claimed
// candidate ever touches the availability calendar.
type Offer struct {
	ID            string      `bson:"id" json:"id"`
	ClientID      string      `bson:"clientId" json:"clientId"`
	ServiceType   string      `bson:"serviceType" json:"serviceType"`
	Tasks         []Task      `bson:"tasks" json:"tasks"`
	Date          string      `bson:"date" json:"date"`
	DurationHours int         `bson:"durationHours" json:"durationHours"`
	ProviderIDs   []string    `bson:"providerIds" json:"providerIds"`
	Status        OfferStatus `bson:"status" json:"status"`
	ClaimedBy     string      `bson:"claimedBy,omitempty" json:"claimedBy,omitempty"`
	CreatedAt     time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time   `bson:"updatedAt" json:"updatedAt"`
}
