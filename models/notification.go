package models

// BookingEventPayload is the queued payload for a booking status push.
type BookingEventPayload struct {
	BookingID  string `json:"bookingId"`
	ProviderID string `json:"providerId"`
	ClientID   string `json:"clientId"`
	Event      string `json:"event"` // "confirmed", "cancelled", "completed"
	Date       string `json:"date"`
	StartHour  int    `json:"startHour"`
}

// OfferExpiryPayload is the queued payload for expiring the losing
// candidates of a claimed broadcast offer.
type OfferExpiryPayload struct {
	OfferID          string `json:"offerId"`
	WinningBookingID string `json:"winningBookingId"`
}
