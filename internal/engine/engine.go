// Package engine is the command engine of the itinerary editor: the
// canonical TripPlan document, the single dispatch entry point that mutates
// it, and the application of asynchronously computed results (optimized
// routes, converted costs) back into the document.
//
// All mutations are complete-before-return transitions behind one mutex;
// structural invariants hold whenever the lock is not held. Async
// collaborators capture the document version at dispatch time and their
// results are rejected if a later edit superseded them.
package engine

import (
	"log/slog"
	"sync"
	"time"

	"github.com/planora/planora/internal/currency"
	"github.com/planora/planora/internal/logging"
	"github.com/planora/planora/internal/metrics"
	"github.com/planora/planora/internal/persist"
	"github.com/planora/planora/internal/route"
	"github.com/planora/planora/pkg/domain"
	"github.com/planora/planora/pkg/ports"
)

// ViewMode is the editor's current presentation state.
type ViewMode string

const (
	ViewSingle        ViewMode = "single"
	ViewAllDays       ViewMode = "all"
	ViewRouteGuidance ViewMode = "route-guidance"
)

// Engine owns the canonical document and every piece of editor state the
// dispatcher can touch.
type Engine struct {
	logger *slog.Logger
	meters *metrics.Metrics

	coordinator *route.Coordinator
	pipeline    *currency.Pipeline
	gate        *persist.Gate
	places      ports.PlaceLookup
	translator  ports.Translator

	mu sync.Mutex

	plan        domain.TripPlan
	version     uint64
	members     int
	startDate   *time.Time
	endDate     *time.Time
	displayCur  string
	lang        string
	origin      *route.Origin
	selectedDay string
	view        ViewMode
	mapExpanded bool
	routeLeg    int

	// matches is the transient candidate buffer staged queries write into;
	// only a confirm command moves anything from here into the plan.
	matches []domain.Place

	// converted is the latest display-currency snapshot of the day list.
	converted []domain.DayPlan
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithMetrics wires the Prometheus collectors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.meters = m }
}

// WithOptimizer wires the external route optimizer.
func WithOptimizer(o ports.RouteOptimizer) Option {
	return func(e *Engine) { e.coordinator = route.NewCoordinator(o) }
}

// WithConverter wires the external currency rate service.
func WithConverter(c ports.Converter) Option {
	return func(e *Engine) { e.pipeline = currency.NewPipeline(c) }
}

// WithTripService wires the external trip persistence service.
func WithTripService(s ports.TripService) Option {
	return func(e *Engine) { e.gate = persist.NewGate(s, nil) }
}

// WithPlaces wires the external place lookup services.
func WithPlaces(p ports.PlaceLookup) Option {
	return func(e *Engine) { e.places = p }
}

// WithTranslator wires the agent command-translation service.
func WithTranslator(t ports.Translator) Option {
	return func(e *Engine) { e.translator = t }
}

// WithCurrency sets the initial display currency (default USD).
func WithCurrency(currency string) Option {
	return func(e *Engine) { e.displayCur = currency }
}

// WithLanguage sets the localized-name preference ("en" or "vi").
func WithLanguage(lang string) Option {
	return func(e *Engine) { e.lang = lang }
}

// WithOrigin sets the user's location, prefixed to optimizer requests.
func WithOrigin(lat, lon float64) Option {
	return func(e *Engine) { e.origin = &route.Origin{Latitude: lat, Longitude: lon} }
}

// New creates an engine over a fresh single-day plan.
func New(opts ...Option) *Engine {
	e := &Engine{
		plan:        domain.NewPlan(),
		displayCur:  domain.CurrencyUSD,
		lang:        "en",
		selectedDay: "1",
		view:        ViewSingle,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	e.converted = e.plan.Clone().Days
	return e
}

// Plan returns a deep copy of the canonical document.
func (e *Engine) Plan() domain.TripPlan {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.plan.Clone()
}

// Version returns the document version, bumped by every mutation.
func (e *Engine) Version() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.version
}

// SelectedDay returns the id of the day the editor is focused on.
func (e *Engine) SelectedDay() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selectedDay
}

// View returns the current view mode.
func (e *Engine) View() ViewMode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.view
}

// MapExpanded reports whether the map view is expanded.
func (e *Engine) MapExpanded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mapExpanded
}

// RouteLeg returns the route-guidance segment index.
func (e *Engine) RouteLeg() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.routeLeg
}

// Members returns the trip member count, 0 when unset.
func (e *Engine) Members() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.members
}

// Dates returns the trip's start and end dates; either may be nil.
func (e *Engine) Dates() (start, end *time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return copyDate(e.startDate), copyDate(e.endDate)
}

// Currency returns the display currency.
func (e *Engine) Currency() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.displayCur
}

// Matches returns the transient candidate buffer; nil when nothing is
// staged.
func (e *Engine) Matches() []domain.Place {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.matches == nil {
		return nil
	}
	return append([]domain.Place(nil), e.matches...)
}

// ResetMatches clears the candidate buffer.
func (e *Engine) ResetMatches() {
	e.mu.Lock()
	e.matches = nil
	e.mu.Unlock()
}

// Dirty reports whether the document has unsaved changes.
func (e *Engine) Dirty() bool {
	if e.gate == nil {
		return false
	}
	return e.gate.Dirty()
}

// PlanID returns the persistence id, empty before the first save.
func (e *Engine) PlanID() string {
	if e.gate == nil {
		return ""
	}
	return e.gate.PlanID()
}

// ConvertedDays returns the latest display-currency snapshot of the day
// list.
func (e *Engine) ConvertedDays() []domain.DayPlan {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]domain.DayPlan, len(e.converted))
	for i, d := range e.converted {
		out[i] = d.Clone()
	}
	return out
}

// commit installs a mutated plan after verifying the structural
// invariants, bumps the version and sets the dirty flag. Handlers that
// fail the check keep the previous document; a broken invariant is a
// programming error worth surfacing loudly.
func (e *Engine) commit(plan domain.TripPlan) error {
	if err := domain.Check(plan); err != nil {
		e.logger.Error("invariant check failed, mutation discarded", "err", err)
		return err
	}
	e.plan = plan
	e.version++
	if e.gate != nil {
		e.gate.MarkDirty()
	}
	return nil
}

// markMetaDirty records a metadata-only edit (no document structure
// change). Metadata edits still count as unsaved changes and still bump
// the version so in-flight async results go stale.
func (e *Engine) markMetaDirty() {
	e.version++
	if e.gate != nil {
		e.gate.MarkDirty()
	}
}

// repairSelection moves the selection to the first day when the selected
// day no longer exists. Selection repair is part of the deletion contract.
func (e *Engine) repairSelection() {
	if domain.FindDay(e.plan.Days, e.selectedDay) < 0 {
		e.selectedDay = e.plan.Days[0].ID
	}
}

// syncEndDate re-derives the end date from start date plus day count.
// Fires on structural day-count changes only; the converse direction (dates
// resize the day grid) fires only in the date command handlers, keeping the
// two derived fields from feeding back into each other.
func (e *Engine) syncEndDate() {
	if e.startDate == nil {
		return
	}
	end := e.startDate.AddDate(0, 0, len(e.plan.Days)-1)
	e.endDate = &end
}

func copyDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	out := *t
	return &out
}
