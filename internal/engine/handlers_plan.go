package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/planora/planora/pkg/command"
	"github.com/planora/planora/pkg/domain"
)

// nearbyRadiusM bounds the nearby-by-type candidate search.
const nearbyRadiusM = 1000

// deletePlan resets the editor to a fresh single-day plan and drops the
// persistence identity. The fresh document counts as unsaved.
func (e *Engine) deletePlan() error {
	plan := domain.NewPlan()
	if err := e.commit(plan); err != nil {
		return err
	}
	e.members = 0
	e.startDate = nil
	e.endDate = nil
	e.selectedDay = "1"
	e.view = ViewSingle
	e.matches = nil
	e.converted = plan.Clone().Days
	if e.gate != nil {
		e.gate.Reset()
	}
	return nil
}

// createItinerary applies a whole agent-built trip: metadata, a day grid
// sized by the date range, and places distributed across the days with any
// remainder going to the earliest days.
func (e *Engine) createItinerary(p *command.CreateItineraryPayload) error {
	it := p.Itinerary
	plan := e.plan.Clone()

	if it.Info.TripName != "" {
		plan.Name = it.Info.TripName
	}
	if it.Info.NumPeople > 0 {
		e.members = it.Info.NumPeople
	}

	var start, end *time.Time
	if t, err := time.Parse(dateLayout, it.Info.StartDay); err == nil {
		start = &t
	}
	if t, err := time.Parse(dateLayout, it.Info.EndDay); err == nil {
		end = &t
	}
	if start != nil {
		e.startDate = start
	}
	if end != nil {
		e.endDate = end
	}

	daysCount := len(plan.Days)
	if start != nil && end != nil {
		if n := int(end.Sub(*start).Hours()/24) + 1; n >= 1 {
			daysCount = n
			fresh := make([]domain.DayPlan, 0, n)
			for i := 0; i < n; i++ {
				fresh = append(fresh, domain.NewDay(i+1))
			}
			plan.Days = fresh
		}
	}

	if it.Valid != nil && !*it.Valid {
		// Metadata still applies, but no places: the agent could not
		// anchor the itinerary to a supported starting point.
		if err := e.commit(plan); err != nil {
			return err
		}
		e.repairSelection()
		return errors.New("starting point is not supported")
	}

	if len(it.Places) > 0 {
		mapped := make([]domain.Destination, len(it.Places))
		for i, place := range it.Places {
			mapped[i] = domain.MapPlace(place, e.displayCur, e.lang)
		}

		perDay := len(mapped) / daysCount
		remainder := len(mapped) % daysCount
		assigned := 0
		for i := range plan.Days {
			count := perDay
			if i < remainder {
				count++
			}
			plan.Days[i].Destinations = mapped[assigned : assigned+count]
			plan.Days[i].OptimizedRoute = []domain.Destination{}
			assigned += count
		}
	}

	if err := e.commit(plan); err != nil {
		return err
	}
	e.repairSelection()
	e.view = ViewSingle
	return nil
}

// stageNearby looks up nearby places of one category around the user's
// origin and stages them as candidates. The lookup runs outside the engine
// lock; only the buffer write is a state transition.
func (e *Engine) stageNearby(ctx context.Context, placeType string) error {
	if e.places == nil {
		return errors.New("place lookup not configured")
	}
	e.mu.Lock()
	origin := e.origin
	e.mu.Unlock()
	if origin == nil {
		return errors.New("user location unknown")
	}

	found, err := e.places.Nearby(ctx, placeType, origin.Latitude, origin.Longitude, nearbyRadiusM)
	if err != nil {
		return fmt.Errorf("nearby lookup: %w", err)
	}

	e.mu.Lock()
	e.matches = found
	e.mu.Unlock()
	return nil
}
