package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidTransition(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		want     bool
	}{
		{BookingPending, BookingConfirmed, true},
		{BookingPending, BookingCancelled, true},
		{BookingPending, BookingExpired, true},
		{BookingPending, BookingInProgress, false},
		{BookingPending, BookingCompleted, false},
		{BookingConfirmed, BookingInProgress, true},
		{BookingConfirmed, BookingCompleted, true},
		{BookingConfirmed, BookingCancelled, true},
		{BookingConfirmed, BookingExpired, false},
		{BookingInProgress, BookingCompleted, true},
		{BookingInProgress, BookingCancelled, false},
		{BookingCompleted, BookingConfirmed, false},
		{BookingCancelled, BookingConfirmed, false},
		{BookingExpired, BookingPending, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ValidTransition(tc.from, tc.to),
			"transition %s -> %s", tc.from, tc.to)
	}
}

func TestStatusClassification(t *testing.T) {
	assert.True(t, BookingPending.IsActive())
	assert.True(t, BookingConfirmed.IsActive())
	assert.True(t, BookingInProgress.IsActive())
	assert.False(t, BookingCompleted.IsActive())
	assert.False(t, BookingCancelled.IsActive())
	assert.False(t, BookingExpired.IsActive())

	assert.True(t, BookingCompleted.IsTerminal())
	assert.True(t, BookingCancelled.IsTerminal())
	assert.True(t, BookingExpired.IsTerminal())
	assert.False(t, BookingConfirmed.IsTerminal())
}

func TestBookingHours(t *testing.T) {
	b := Booking{StartHour: 9, DurationHours: 3}
	assert.Equal(t, []int{9, 10, 11}, b.Hours())
}

func TestIntervalOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"disjoint before", Interval{9, 2}, Interval{12, 2}, false},
		{"adjacent", Interval{9, 2}, Interval{11, 2}, false},
		{"one hour shared", Interval{9, 3}, Interval{11, 2}, true},
		{"contained", Interval{9, 4}, Interval{10, 1}, true},
		{"identical", Interval{9, 2}, Interval{9, 2}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.want, tc.b.Overlaps(tc.a))
		})
	}
}

func TestIntervalGapTo(t *testing.T) {
	assert.Equal(t, 1, Interval{9, 2}.GapTo(Interval{12, 2}))
	assert.Equal(t, 0, Interval{9, 2}.GapTo(Interval{11, 2}))
	assert.Equal(t, 1, Interval{12, 2}.GapTo(Interval{9, 2}))
}

func TestSortedHours(t *testing.T) {
	assert.Equal(t, []int{8, 9, 10}, SortedHours([]int{10, 8, 9, 8}))
	assert.Equal(t, []int{}, SortedHours(nil))
}

func TestDefaultScheduleHours(t *testing.T) {
	hours := DefaultScheduleHours()
	assert.Len(t, hours, 10)
	assert.Equal(t, 8, hours[0])
	assert.Equal(t, 17, hours[len(hours)-1])
}
