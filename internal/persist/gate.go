// Package persist gates saves to the external trip persistence service:
// it tracks whether the document has unsaved changes, maps the in-memory
// plan onto the wire schema, and routes the first save through create so
// the service-assigned id sticks for every later update.
package persist

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/planora/planora/internal/logging"
	"github.com/planora/planora/pkg/domain"
	"github.com/planora/planora/pkg/ports"
)

// Gate owns the dirty flag and the plan's persistence identity.
type Gate struct {
	service ports.TripService
	logger  *slog.Logger

	mu     sync.Mutex
	dirty  bool
	planID string
}

// NewGate creates a gate over the given trip service.
func NewGate(service ports.TripService, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Gate{service: service, logger: logger}
}

// MarkDirty records that the document changed since the last successful
// save. Every mutation calls this, metadata-only edits included.
func (g *Gate) MarkDirty() {
	g.mu.Lock()
	g.dirty = true
	g.mu.Unlock()
}

// Dirty reports whether unsaved changes exist.
func (g *Gate) Dirty() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.dirty
}

// PlanID returns the service-assigned plan id, empty before first save.
func (g *Gate) PlanID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.planID
}

// SetPlanID adopts an existing plan identity (e.g. when loading a saved
// plan into the editor).
func (g *Gate) SetPlanID(id string) {
	g.mu.Lock()
	g.planID = id
	g.mu.Unlock()
}

// Reset drops the persistence identity and marks the fresh document dirty.
// Called when the current plan is deleted and the editor resets.
func (g *Gate) Reset() {
	g.mu.Lock()
	g.planID = ""
	g.dirty = true
	g.mu.Unlock()
}

// Save persists the plan. A missing session token or an empty trip name
// aborts before any network call. The dirty flag clears only after the
// service confirms; a failed save leaves it set.
func (g *Gate) Save(ctx context.Context, token string, plan domain.TripPlan, meta Metadata) error {
	if token == "" {
		return domain.ErrNoSession
	}
	if strings.TrimSpace(plan.Name) == "" {
		return domain.ErrEmptyTripName
	}

	rec := ToWire(plan, meta)

	g.mu.Lock()
	planID := g.planID
	g.mu.Unlock()

	var (
		saved ports.TripRecord
		err   error
	)
	if planID == "" {
		saved, err = g.service.Create(ctx, token, rec)
	} else {
		rec.ID = planID
		saved, err = g.service.Update(ctx, token, rec)
	}
	if err != nil {
		return fmt.Errorf("save trip: %w", err)
	}

	g.mu.Lock()
	if g.planID == "" {
		g.planID = saved.ID
	}
	g.dirty = false
	g.mu.Unlock()

	g.logger.Info("plan saved", "plan_id", saved.ID, "days", len(rec.Days))
	return nil
}
