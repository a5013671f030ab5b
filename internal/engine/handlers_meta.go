package engine

import (
	"time"

	"github.com/planora/planora/pkg/command"
	"github.com/planora/planora/pkg/domain"
)

const dateLayout = "2006-01-02"

// Trip-metadata handlers. Metadata edits mark the document dirty like any
// other mutation.

func (e *Engine) updateTripName(p *command.TripName) error {
	plan := e.plan.Clone()
	plan.Name = p.Name
	return e.commit(plan)
}

func (e *Engine) updateMembers(p *command.Members) error {
	e.members = p.Members
	e.markMetaDirty()
	return nil
}

func (e *Engine) updateStartDate(p *command.StartDate) error {
	t, err := time.Parse(dateLayout, p.Day)
	if err != nil {
		// Unparsable date: drop silently, never partially apply.
		e.logger.Debug("unparsable start date, command dropped", "value", p.Day)
		return nil
	}
	e.startDate = &t
	e.markMetaDirty()
	return e.resizeFromDates()
}

func (e *Engine) updateEndDate(p *command.EndDate) error {
	t, err := time.Parse(dateLayout, p.Day)
	if err != nil {
		e.logger.Debug("unparsable end date, command dropped", "value", p.Day)
		return nil
	}
	e.endDate = &t
	e.markMetaDirty()
	return e.resizeFromDates()
}

// resizeFromDates recomputes the day count as the inclusive difference
// between the two dates and resizes the day grid content-preservingly.
// This fires only from the date command path; structural day changes go
// the other direction and re-derive the end date instead. The asymmetry is
// deliberate: it keeps the two derived fields from updating each other in
// a loop.
func (e *Engine) resizeFromDates() error {
	if e.startDate == nil || e.endDate == nil {
		return nil
	}
	n := int(e.endDate.Sub(*e.startDate).Hours()/24) + 1
	if n < 1 || n == len(e.plan.Days) {
		return nil
	}
	plan := e.plan.Clone()
	plan.Days = domain.Resize(plan.Days, n)
	if err := e.commit(plan); err != nil {
		return err
	}
	e.repairSelection()
	return nil
}
