package engine

import (
	"fmt"
	"strconv"

	"github.com/planora/planora/pkg/domain"
)

// Day-structural handlers. Every one renumbers through pkg/domain, repairs
// the selection if the focused day vanished, and re-derives the end date
// from the new day count.

func (e *Engine) addDay() error {
	plan := e.plan.Clone()
	plan.Days = domain.AddDay(plan.Days)
	if err := e.commit(plan); err != nil {
		return err
	}
	e.selectedDay = e.plan.Days[len(e.plan.Days)-1].ID
	e.view = ViewSingle
	e.syncEndDate()
	return nil
}

func (e *Engine) addDayAfter(dayID string) error {
	plan := e.plan.Clone()
	days, err := domain.AddDayAfter(plan.Days, dayID)
	if err != nil {
		return err
	}
	plan.Days = days
	if err := e.commit(plan); err != nil {
		return err
	}
	// The inserted day sits right after its anchor.
	idx := domain.FindDay(e.plan.Days, dayID)
	e.selectedDay = e.plan.Days[idx+1].ID
	e.view = ViewSingle
	e.syncEndDate()
	return nil
}

func (e *Engine) removeDay(dayID string) error {
	plan := e.plan.Clone()
	days, err := domain.RemoveDay(plan.Days, dayID)
	if err != nil {
		// Removing the last day must not mutate anything; the error is
		// user-visible.
		return err
	}
	plan.Days = days
	if err := e.commit(plan); err != nil {
		return err
	}
	e.repairSelection()
	e.syncEndDate()
	return nil
}

func (e *Engine) deleteAllDays() error {
	plan := e.plan.Clone()
	plan.Days = []domain.DayPlan{domain.NewDay(1)}
	if err := e.commit(plan); err != nil {
		return err
	}
	e.selectedDay = "1"
	e.syncEndDate()
	return nil
}

func (e *Engine) swapDays(a, b string) error {
	if a == b {
		return nil
	}
	plan := e.plan.Clone()
	days, err := domain.SwapDays(plan.Days, a, b)
	if err != nil {
		return err
	}
	plan.Days = days
	return e.commit(plan)
}

func (e *Engine) deleteRange(start, end int) error {
	if end > len(e.plan.Days) {
		return fmt.Errorf("%w: day %s", domain.ErrDayNotFound, strconv.Itoa(end))
	}
	plan := e.plan.Clone()
	days, err := domain.DeleteRange(plan.Days, start, end)
	if err != nil {
		return err
	}
	plan.Days = days
	if err := e.commit(plan); err != nil {
		return err
	}
	e.repairSelection()
	e.syncEndDate()
	return nil
}

func (e *Engine) selectDay(dayID string) error {
	if domain.FindDay(e.plan.Days, dayID) < 0 {
		return fmt.Errorf("%w: %s", domain.ErrDayNotFound, dayID)
	}
	e.selectedDay = dayID
	e.view = ViewSingle
	return nil
}
