package scheduling

import "gardenly/models"

// BufferPolicy encodes the overlap and minimum-gap rules between a
// candidate interval and a provider's existing bookings. Non-overlap is a
// hard constraint; MinGap adds required idle hours on either side.
type BufferPolicy struct {
	// MinGap is the minimum number of idle hours between two bookings.
	// Zero means plain non-overlap.
	MinGap int
}

// IsSequenceAvailable reports whether a booking of the given duration can
// start at candidateStart without conflicting with the provider's calendar
// or existing bookings. Pure: it only reads its arguments.
func (p BufferPolicy) IsSequenceAvailable(available []int, existing []models.Interval, candidateStart, duration int) bool {
	if duration <= 0 {
		return false
	}
	candidate := models.Interval{Start: candidateStart, Duration: duration}
	if candidate.End() > 24 {
		return false
	}

	availSet := make(map[int]struct{}, len(available))
	for _, h := range available {
		availSet[h] = struct{}{}
	}
	for h := candidate.Start; h < candidate.End(); h++ {
		if _, ok := availSet[h]; !ok {
			return false
		}
	}

	for _, iv := range existing {
		if candidate.Overlaps(iv) {
			return false
		}
		if candidate.GapTo(iv) < p.MinGap {
			return false
		}
	}
	return true
}
