package schedule

import "errors"

var ErrInvalidProfile = errors.New("invalid zone profile: capacity must be positive and open time before close time")

// GridStepMinutes is the fixed discretization step for bookable start times:
// every candidate lies on a 15-minute boundary, 00:00 through 23:45.
const GridStepMinutes = 15

// Profile carries the scheduling constraints of a zone: how many intervals
// may run at once and between which hours.
type Profile struct {
	Capacity int
	Open     TimeOfDay
	Close    TimeOfDay
}

func NewProfile(capacity int, open, close TimeOfDay) (Profile, error) {
	if capacity < 1 || open >= close {
		return Profile{}, ErrInvalidProfile
	}
	return Profile{Capacity: capacity, Open: open, Close: close}, nil
}

// AvailableStarts returns, in ascending order, every grid start time t for
// which a booking [t, t+duration) fits inside the zone's operating hours and
// keeps the concurrent interval count below capacity throughout the window.
// A zone already at capacity for some instant of the probe window rejects it.
//
// Each grid point is probed independently with MaxConcurrency rather than by
// one global sweep: windows of arbitrary duration do not share a single
// answer, and 96 probes over a day's bookings is cheap.
func (p Profile) AvailableStarts(intervals []Interval, durationMinutes int) []TimeOfDay {
	starts := make([]TimeOfDay, 0)
	if durationMinutes <= 0 {
		return starts
	}

	for t := TimeOfDay(0); t < MinutesPerDay; t += GridStepMinutes {
		if t < p.Open || t.Add(durationMinutes) > p.Close {
			continue
		}
		if MaxConcurrency(intervals, t, t.Add(durationMinutes)) < p.Capacity {
			starts = append(starts, t)
		}
	}

	return starts
}
