package models

import "time"

// BookingDraft is the caller-owned in-progress booking state: the tasks
// picked so far, the quote computed for them, and the provider/slot the
// client is converging on. It lives in the cache with a TTL and is never
// consulted by the engine itself.
type BookingDraft struct {
	DraftID       string    `json:"draftId"`
	ClientID      string    `json:"clientId"`
	ServiceType   string    `json:"serviceType"`
	Tasks         []Task    `json:"tasks"`
	ProviderID    string    `json:"providerId,omitempty"`
	Date          string    `json:"date,omitempty"`
	StartHour     int       `json:"startHour,omitempty"`
	DurationHours int       `json:"durationHours,omitempty"`
	Quote         *Quote    `json:"quote,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// SlotSuggestion is the earliest bookable slot found by a horizon scan.
type SlotSuggestion struct {
	ProviderID string `json:"providerId"`
	Date       string `json:"date"`
	Hour       int    `json:"hour"`
}
