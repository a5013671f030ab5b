package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/planora/planora/internal/persist"
	"github.com/planora/planora/internal/route"
	"github.com/planora/planora/pkg/command"
	"github.com/planora/planora/pkg/domain"
)

// Async collaborators: route optimization, cost conversion, persistence
// and agent translation. Each network call runs with no engine lock held;
// its completion re-enters the mutation path as one atomic transition and
// is rejected if the document version moved while it was in flight.

// Optimize sends the selected day's stops to the external optimizer and,
// on success, replaces the day's destination order with the reconciled
// result plus route metadata. On failure the document is untouched.
func (e *Engine) Optimize(ctx context.Context) error {
	if e.coordinator == nil {
		return errors.New("optimizer not configured")
	}

	e.mu.Lock()
	idx := domain.FindDay(e.plan.Days, e.selectedDay)
	if idx < 0 {
		e.mu.Unlock()
		return fmt.Errorf("%w: %s", domain.ErrDayNotFound, e.selectedDay)
	}
	day := e.plan.Days[idx].Clone()
	version := e.version
	origin := e.origin
	e.mu.Unlock()

	if len(day.Destinations) == 0 {
		return errors.New("add destinations before optimizing")
	}

	started := time.Now()
	outcome, err := e.coordinator.Optimize(ctx, day.Destinations, origin)
	e.meters.ObserveOptimize(time.Since(started).Seconds())
	if err != nil {
		return err
	}

	return e.applyRoute(version, day.ID, outcome)
}

// applyRoute reconciles an optimizer outcome into the document. A version
// mismatch means a structural edit landed while the call was in flight;
// the stale result is rejected rather than overwriting newer state.
func (e *Engine) applyRoute(version uint64, dayID string, out *route.Outcome) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if version != e.version {
		e.meters.Stale()
		e.logger.Warn("route result superseded by a later edit, discarded",
			"day", dayID, "have", e.version, "want", version)
		return domain.ErrStaleResult
	}

	idx := domain.FindDay(e.plan.Days, dayID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", domain.ErrDayNotFound, dayID)
	}

	plan := e.plan.Clone()
	day := &plan.Days[idx]
	day.Destinations = out.Destinations
	day.OptimizedRoute = make([]domain.Destination, len(out.Destinations))
	for i, d := range out.Destinations {
		day.OptimizedRoute[i] = d.Clone()
	}
	day.RouteDistanceKm = out.Result.DistanceKm
	day.RouteDurationMin = out.Result.DurationMin
	day.RouteGeometry = out.Result.Geometry
	day.RouteInstructions = out.Result.Instructions
	day.RouteSegmentGeometries = out.Result.SegmentGeometries

	return e.commit(plan)
}

// SetCurrency switches the display currency. The canonical document keeps
// its original amounts; callers follow up with RefreshConversion for the
// new display snapshot.
func (e *Engine) SetCurrency(currency string) {
	e.mu.Lock()
	e.displayCur = currency
	e.markMetaDirty()
	e.mu.Unlock()
}

// RefreshConversion recomputes the display-currency snapshot from the
// write-once original amounts. A failed or superseded conversion leaves
// the previous snapshot in place.
func (e *Engine) RefreshConversion(ctx context.Context) ([]domain.DayPlan, error) {
	e.mu.Lock()
	days := e.plan.Clone().Days
	version := e.version
	target := e.displayCur
	e.mu.Unlock()

	if e.pipeline == nil {
		// No converter configured: display the originals verbatim.
		e.mu.Lock()
		e.converted = days
		e.mu.Unlock()
		return days, nil
	}

	converted, err := e.pipeline.ConvertDays(ctx, days, target)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if version != e.version {
		e.meters.Stale()
		e.logger.Warn("conversion superseded by a later edit, discarded",
			"have", e.version, "want", version)
		return nil, domain.ErrStaleResult
	}
	e.converted = converted
	out := make([]domain.DayPlan, len(converted))
	for i, d := range converted {
		out[i] = d.Clone()
	}
	return out, nil
}

// Save persists the plan through the gate. The session token is explicit;
// nothing is read from ambient state.
func (e *Engine) Save(ctx context.Context, token string) error {
	if e.gate == nil {
		return errors.New("persistence not configured")
	}

	e.mu.Lock()
	plan := e.plan.Clone()
	meta := persist.Metadata{
		Members:   e.members,
		StartDate: copyDate(e.startDate),
		EndDate:   copyDate(e.endDate),
		Currency:  e.displayCur,
	}
	e.mu.Unlock()

	return e.gate.Save(ctx, token, plan, meta)
}

// Translate runs a free-text prompt through the agent translation service
// and dispatches the detected command exactly like a direct UI command.
// The envelope is returned for the chat layer even when dispatch errors.
func (e *Engine) Translate(ctx context.Context, prompt string) (*command.Envelope, error) {
	if e.translator == nil {
		return nil, errors.New("agent translator not configured")
	}

	env, err := e.translator.Translate(ctx, e.Plan(), prompt)
	if err != nil {
		return nil, fmt.Errorf("translate prompt: %w", err)
	}

	return env, e.Dispatch(ctx, env.Command, env.Payload)
}
