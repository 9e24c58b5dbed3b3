package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingInProgress BookingStatus = "in_progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
	// BookingExpired marks a broadcast candidate that lost to a sibling claim.
	BookingExpired BookingStatus = "expired"
)

// ActiveStatuses are the statuses whose bookings occupy calendar hours for
// conflict purposes.
var ActiveStatuses = []BookingStatus{BookingPending, BookingConfirmed, BookingInProgress}

// IsActive reports whether a booking in status s counts against availability.
func (s BookingStatus) IsActive() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingInProgress:
		return true
	}
	return false
}

// IsTerminal reports whether s admits no further transitions.
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case BookingCompleted, BookingCancelled, BookingExpired:
		return true
	}
	return false
}

// ValidTransition reports whether a booking may move from -> to.
func ValidTransition(from, to BookingStatus) bool {
	switch from {
	case BookingPending:
		return to == BookingConfirmed || to == BookingCancelled || to == BookingExpired
	case BookingConfirmed:
		return to == BookingInProgress || to == BookingCompleted || to == BookingCancelled
	case BookingInProgress:
		return to == BookingCompleted
	}
	return false
}

// Booking represents a reservation of contiguous hour blocks on a provider's
// calendar, priced at creation time.
type Booking struct {
	ID            string        `bson:"id" json:"id"`
	OfferID       string        `bson:"offerId,omitempty" json:"offerId,omitempty"`
	ProviderID    string        `bson:"providerId" json:"providerId"`
	ClientID      string        `bson:"clientId" json:"clientId"`
	Date          string        `bson:"date" json:"date"` // "YYYY-MM-DD"
	StartHour     int           `bson:"startHour" json:"startHour"`
	DurationHours int           `bson:"durationHours" json:"durationHours"`
	Status        BookingStatus `bson:"status" json:"status"`
	TotalPrice    float64       `bson:"totalPrice" json:"totalPrice"`
	LineItems     []LineItem    `bson:"lineItems,omitempty" json:"lineItems,omitempty"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// Hours returns the hour blocks the booking occupies.
func (b Booking) Hours() []int {
	hours := make([]int, 0, b.DurationHours)
	for h := b.StartHour; h < b.StartHour+b.DurationHours; h++ {
		hours = append(hours, h)
	}
	return hours
}

// Interval is a half-open occupied span [Start, Start+Duration) in hours,
// used for overlap and gap checks.
type Interval struct {
	Start    int
	Duration int
}

// Interval returns the booking's occupied span.
func (b Booking) Interval() Interval {
	return Interval{Start: b.StartHour, Duration: b.DurationHours}
}

// End returns the first hour after the interval.
func (iv Interval) End() int {
	return iv.Start + iv.Duration
}

// Overlaps reports whether two intervals share at least one hour.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End() && other.Start < iv.End()
}

// GapTo returns the idle hours between two non-overlapping intervals.
// For overlapping intervals the result is negative.
func (iv Interval) GapTo(other Interval) int {
	if iv.End() <= other.Start {
		return other.Start - iv.End()
	}
	return iv.Start - other.End()
}
