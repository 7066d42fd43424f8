package schedule

import "sort"

type sweepEvent struct {
	at    TimeOfDay
	delta int
}

// MaxConcurrency returns the maximum number of intervals simultaneously
// active at any instant inside [qStart, qEnd). Cancelled intervals and
// intervals entirely outside the window are ignored.
//
// Events at the same instant process exits before entries, so an interval
// ending exactly when another starts never counts as concurrent with it.
func MaxConcurrency(intervals []Interval, qStart, qEnd TimeOfDay) int {
	if qEnd <= qStart {
		return 0
	}

	events := make([]sweepEvent, 0, 2*len(intervals))
	for _, iv := range intervals {
		if iv.Cancelled {
			continue
		}
		if iv.Start >= qEnd || iv.End <= qStart {
			continue
		}
		events = append(events, sweepEvent{at: iv.Start, delta: +1}, sweepEvent{at: iv.End, delta: -1})
	}

	sort.Slice(events, func(i, j int) bool {
		if events[i].at != events[j].at {
			return events[i].at < events[j].at
		}
		return events[i].delta < events[j].delta
	})

	running, max := 0, 0
	for _, ev := range events {
		running += ev.delta
		if running > max {
			max = running
		}
	}

	return max
}
