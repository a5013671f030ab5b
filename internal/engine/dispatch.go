package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/planora/planora/internal/metrics"
	"github.com/planora/planora/pkg/command"
	"github.com/planora/planora/pkg/domain"
)

// Dispatch is the single mutation entry point. Both producers feed it with
// the same shape: direct UI handlers and the agent translation pipeline.
//
// Contract: an unknown command kind is logged and ignored; an invalid
// payload is silently dropped. Neither mutates the document or returns an
// error. Errors from valid commands (last-day removal, missing
// destination) are user-visible and returned.
func (e *Engine) Dispatch(ctx context.Context, kind command.Kind, raw map[string]any) error {
	payload, err := command.Decode(kind, raw)
	if err != nil {
		switch {
		case errors.Is(err, command.ErrUnknownKind):
			e.logger.Warn("unknown command, ignored", "command", kind)
			e.meters.Command(string(kind), metrics.OutcomeUnknown)
		default:
			e.logger.Debug("invalid payload, command dropped", "command", kind, "err", err)
			e.meters.Command(string(kind), metrics.OutcomeDropped)
		}
		return nil
	}

	if err := e.apply(ctx, kind, payload); err != nil {
		e.meters.Command(string(kind), metrics.OutcomeError)
		return err
	}
	e.meters.Command(string(kind), metrics.OutcomeApplied)
	return nil
}

func (e *Engine) apply(ctx context.Context, kind command.Kind, payload command.Payload) error {
	// Staged queries that reach out to the place services run their lookup
	// before the lock is taken; only the buffer write is a transition.
	if p, ok := payload.(*command.PlaceType); ok && kind == command.ExtractTypeFromPrompt {
		return e.stageNearby(ctx, p.Type)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	switch kind {
	case command.UpdateTripName:
		return e.updateTripName(payload.(*command.TripName))
	case command.UpdateMembers:
		return e.updateMembers(payload.(*command.Members))
	case command.UpdateStartDate:
		return e.updateStartDate(payload.(*command.StartDate))
	case command.UpdateEndDate:
		return e.updateEndDate(payload.(*command.EndDate))

	case command.AddNewDay:
		return e.addDay()
	case command.AddNewDayAfterCurrent:
		return e.addDayAfter(e.selectedDay)
	case command.AddNewDayAfterIth:
		return e.addDayAfter(dayID(payload.(*command.DayRef).Day))
	case command.DeleteCurrentDay:
		return e.removeDay(e.selectedDay)
	case command.DeleteAllDays:
		return e.deleteAllDays()
	case command.SwapDay:
		p := payload.(*command.DayPair)
		return e.swapDays(dayID(p.Day1), dayID(p.Day2))
	case command.DeleteRangeOfDays:
		p := payload.(*command.DayRange)
		return e.deleteRange(p.Start, p.End)

	case command.AddNewDestination, command.ConfirmAddNewDestination:
		return e.addDestination(payload.(*command.AddDestination))
	case command.ReplaceDestination:
		return e.replaceDestination(payload.(*command.Replace))
	case command.RemoveDestination:
		return e.removeDestination(payload.(*command.Remove))

	case command.SelectDay:
		return e.selectDay(dayID(payload.(*command.DayRef).Day))
	case command.ViewAllDays:
		e.view = ViewAllDays
		return nil
	case command.ExtendMapView:
		e.mapExpanded = true
		return nil
	case command.CollapseMapView:
		e.mapExpanded = false
		return nil
	case command.FindRouteOfPair:
		e.view = ViewRouteGuidance
		e.routeLeg = payload.(*command.PairIndex).PairIndex
		return nil

	case command.DeleteCurrentPlan:
		return e.deletePlan()

	case command.SearchNewDestination:
		e.matches = payload.(*command.Matches).Matches
		return nil
	case command.FindPlaceInformation:
		p := payload.(*command.PlaceInfo)
		e.matches = []domain.Place{p.Place}
		return nil

	case command.CreateItinerary:
		return e.createItinerary(payload.(*command.CreateItineraryPayload))
	}

	// Decode succeeded for every known kind, so this is unreachable unless
	// a kind was added without a handler.
	return fmt.Errorf("no handler for command %q", kind)
}

func dayID(n int) string {
	return fmt.Sprintf("%d", n)
}
