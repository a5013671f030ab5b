package engine

import (
	"fmt"

	"github.com/planora/planora/pkg/command"
	"github.com/planora/planora/pkg/domain"
)

// Destination handlers. Any path that changes a day's destination list
// other than optimizer reconciliation invalidates that day's cached
// optimized route.

func (e *Engine) addDestination(p *command.AddDestination) error {
	idx := domain.FindDay(e.plan.Days, dayID(p.Day))
	if idx < 0 {
		return fmt.Errorf("%w: %s", domain.ErrDayNotFound, dayID(p.Day))
	}

	dest := domain.MapPlace(p.Destination, e.displayCur, e.lang)

	plan := e.plan.Clone()
	day := &plan.Days[idx]
	for _, existing := range day.Destinations {
		if existing.ID == dest.ID {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateDestination, dest.ID)
		}
	}
	day.Destinations = append(day.Destinations, dest)
	invalidateRoute(day)

	return e.commit(plan)
}

func (e *Engine) replaceDestination(p *command.Replace) error {
	plan := e.plan.Clone()
	for di := range plan.Days {
		day := &plan.Days[di]
		for si, dest := range day.Destinations {
			if dest.ID != p.RemoveID {
				continue
			}
			day.Destinations[si] = domain.MapPlace(p.Destination, e.displayCur, e.lang)
			invalidateRoute(day)
			return e.commit(plan)
		}
	}
	return fmt.Errorf("%w: %s", domain.ErrDestinationNotFound, p.RemoveID)
}

func (e *Engine) removeDestination(p *command.Remove) error {
	plan := e.plan.Clone()
	for di := range plan.Days {
		day := &plan.Days[di]
		for si, dest := range day.Destinations {
			if dest.ID != p.DestinationID {
				continue
			}
			day.Destinations = append(day.Destinations[:si], day.Destinations[si+1:]...)
			invalidateRoute(day)
			return e.commit(plan)
		}
	}
	return fmt.Errorf("%w: %s", domain.ErrDestinationNotFound, p.DestinationID)
}

// invalidateRoute drops the cached optimized ordering. Route metadata stays
// until the next optimization overwrites it; the empty OptimizedRoute is
// what marks the cache stale.
func invalidateRoute(day *domain.DayPlan) {
	day.OptimizedRoute = []domain.Destination{}
}
