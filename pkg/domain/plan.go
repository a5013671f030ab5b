package domain

import (
	"fmt"
	"strconv"
)

// Renumber resequences every day's ID and DayNumber to its 1-based position,
// preserving relative order. All structural day operations funnel through
// this so the two fields can never drift apart.
func Renumber(days []DayPlan) []DayPlan {
	out := make([]DayPlan, len(days))
	for i, d := range days {
		d.ID = strconv.Itoa(i + 1)
		d.DayNumber = i + 1
		out[i] = d
	}
	return out
}

// AddDay appends an empty day and returns the renumbered slice.
func AddDay(days []DayPlan) []DayPlan {
	return Renumber(append(append([]DayPlan(nil), days...), NewDay(len(days)+1)))
}

// AddDayAfter inserts an empty day immediately after the day with the given
// id and returns the renumbered slice.
func AddDayAfter(days []DayPlan, dayID string) ([]DayPlan, error) {
	idx := indexOfDay(days, dayID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrDayNotFound, dayID)
	}
	out := make([]DayPlan, 0, len(days)+1)
	out = append(out, days[:idx+1]...)
	out = append(out, NewDay(idx+2))
	out = append(out, days[idx+1:]...)
	return Renumber(out), nil
}

// RemoveDay deletes the day with the given id. Removing the last remaining
// day is rejected with ErrLastDay and the input is returned unchanged.
func RemoveDay(days []DayPlan, dayID string) ([]DayPlan, error) {
	if len(days) == 1 {
		return days, ErrLastDay
	}
	idx := indexOfDay(days, dayID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrDayNotFound, dayID)
	}
	out := make([]DayPlan, 0, len(days)-1)
	out = append(out, days[:idx]...)
	out = append(out, days[idx+1:]...)
	return Renumber(out), nil
}

// SwapDays exchanges the positions of two days and renumbers. Swapping a
// day with itself is a no-op.
func SwapDays(days []DayPlan, a, b string) ([]DayPlan, error) {
	i, j := indexOfDay(days, a), indexOfDay(days, b)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrDayNotFound, a)
	}
	if j < 0 {
		return nil, fmt.Errorf("%w: %s", ErrDayNotFound, b)
	}
	out := append([]DayPlan(nil), days...)
	out[i], out[j] = out[j], out[i]
	return Renumber(out), nil
}

// DeleteRange removes days start..end (1-based, inclusive) and renumbers
// the survivors. Deleting every day leaves one fresh empty day so the plan
// stays valid.
func DeleteRange(days []DayPlan, start, end int) ([]DayPlan, error) {
	if start < 1 || end > len(days) || start > end {
		return nil, fmt.Errorf("%w: range %d-%d", ErrDayNotFound, start, end)
	}
	out := make([]DayPlan, 0, len(days)-(end-start+1))
	for i, d := range days {
		if i+1 < start || i+1 > end {
			out = append(out, d)
		}
	}
	if len(out) == 0 {
		out = append(out, NewDay(1))
	}
	return Renumber(out), nil
}

// Resize grows or shrinks the day list to n entries, preserving existing
// days by index: growing appends blank days, shrinking truncates from the
// end. n < 1 is clamped to 1.
func Resize(days []DayPlan, n int) []DayPlan {
	if n < 1 {
		n = 1
	}
	out := make([]DayPlan, 0, n)
	for i := 0; i < n; i++ {
		if i < len(days) {
			out = append(out, days[i])
		} else {
			out = append(out, NewDay(i+1))
		}
	}
	return Renumber(out)
}

// FindDay returns the index of the day with the given id, or -1.
func FindDay(days []DayPlan, dayID string) int {
	return indexOfDay(days, dayID)
}

func indexOfDay(days []DayPlan, dayID string) int {
	for i, d := range days {
		if d.ID == dayID {
			return i
		}
	}
	return -1
}

// Check verifies the structural invariants that must hold after every
// mutation: at least one day, contiguous 1-based ids matching day numbers,
// and at least one cost per destination. Handlers call this before
// committing a result.
func Check(p TripPlan) error {
	if len(p.Days) == 0 {
		return ErrLastDay
	}
	for i, d := range p.Days {
		want := strconv.Itoa(i + 1)
		if d.ID != want || d.DayNumber != i+1 {
			return fmt.Errorf("day at position %d has id %q number %d", i+1, d.ID, d.DayNumber)
		}
		for _, dest := range d.Destinations {
			if len(dest.Costs) == 0 {
				return fmt.Errorf("destination %q has no costs", dest.ID)
			}
		}
	}
	return nil
}
