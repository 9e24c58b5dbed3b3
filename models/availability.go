package models

import "sort"

// AvailabilityBlock represents a single bookable hour of a provider's calendar.
// Exactly one block exists per (provider, date, hour).
type AvailabilityBlock struct {
	ProviderID string `bson:"providerId" json:"providerId"`
	Date       string `bson:"date" json:"date"` // "YYYY-MM-DD"
	Hour       int    `bson:"hour" json:"hour"` // 0..23
	Available  bool   `bson:"available" json:"available"`
}

// DefaultScheduleStart and DefaultScheduleEnd bound the seeded working day:
// hours 8..17 inclusive.
const (
	DefaultScheduleStart = 8
	DefaultScheduleEnd   = 17
)

// DefaultScheduleHours returns the hours seeded when a provider has no
// explicit schedule for a date.
func DefaultScheduleHours() []int {
	hours := make([]int, 0, DefaultScheduleEnd-DefaultScheduleStart+1)
	for h := DefaultScheduleStart; h <= DefaultScheduleEnd; h++ {
		hours = append(hours, h)
	}
	return hours
}

// ValidHour reports whether h is a legal hour-of-day value.
func ValidHour(h int) bool {
	return h >= 0 && h <= 23
}

// SortedHours returns a deduplicated ascending copy of hours.
func SortedHours(hours []int) []int {
	seen := make(map[int]struct{}, len(hours))
	out := make([]int, 0, len(hours))
	for _, h := range hours {
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	sort.Ints(out)
	return out
}
