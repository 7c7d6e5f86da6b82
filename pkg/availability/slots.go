package availability

import (
	"github.com/orario/orario/pkg/booking"
	"github.com/orario/orario/pkg/schedule"
)

// Options tunes slot generation. Granularity is the quantum at which
// candidate start times are produced. Buffer inflates every booked interval
// on both sides, enforcing a gap between consecutive appointments. NotBefore
// discards candidates earlier than the given minute of day; callers set it
// when generating for the current date.
type Options struct {
	Granularity int
	Buffer      int
	NotBefore   int
}

// Slots computes the bookable start times for one day. Pure function, no I/O:
// given the day's open window, the requested duration, and the already-booked
// intervals, it returns an ascending list of start times in minutes since
// midnight.
//
// A candidate survives when its whole [candidate, candidate+duration)
// interval fits inside the window and does not overlap any booked interval
// inflated by the buffer. The last candidate before close may therefore be
// skipped when the duration is not a multiple of the granularity.
func Slots(window schedule.DayWindow, duration int, booked []booking.Interval, opts Options) []int {
	if !window.Open || duration <= 0 || opts.Granularity <= 0 {
		return nil
	}
	if window.CloseMinute-window.OpenMinute < duration {
		return nil
	}

	var slots []int
	for candidate := window.OpenMinute; candidate+duration <= window.CloseMinute; candidate += opts.Granularity {
		if candidate < opts.NotBefore {
			continue
		}
		if overlapsAny(candidate, candidate+duration, booked, opts.Buffer) {
			continue
		}
		slots = append(slots, candidate)
	}
	return slots
}

func overlapsAny(start, end int, booked []booking.Interval, buffer int) bool {
	for _, b := range booked {
		// Strict half-open overlap against the buffer-inflated interval.
		if start < b.End+buffer && end > b.Start-buffer {
			return true
		}
	}
	return false
}
