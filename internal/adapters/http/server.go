// Package http exposes the command engine as a JSON API: commands in,
// document snapshots out.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/planora/planora/internal/engine"
	"github.com/planora/planora/internal/logging"
	"github.com/planora/planora/pkg/command"
	"github.com/planora/planora/pkg/domain"
)

// Engine is the surface of the command engine the API needs.
type Engine interface {
	Dispatch(ctx context.Context, kind command.Kind, raw map[string]any) error
	Translate(ctx context.Context, prompt string) (*command.Envelope, error)
	Optimize(ctx context.Context) error
	RefreshConversion(ctx context.Context) ([]domain.DayPlan, error)
	Save(ctx context.Context, token string) error
	SetCurrency(currency string)

	Plan() domain.TripPlan
	Version() uint64
	SelectedDay() string
	View() engine.ViewMode
	Currency() string
	Dirty() bool
	PlanID() string
	ConvertedDays() []domain.DayPlan
	Matches() []domain.Place
	ResetMatches()
}

// Server wires the engine to the router.
type Server struct {
	engine Engine
	logger *slog.Logger
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(eng Engine, logger *slog.Logger, reg *prometheus.Registry) http.Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{engine: eng, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(90 * time.Second))

	r.Get("/healthz", s.health)
	if reg != nil {
		r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/commands", s.dispatch)
		r.Post("/chat", s.chat)

		r.Get("/plan", s.plan)
		r.Get("/plan/converted", s.converted)
		r.Post("/plan/optimize", s.optimize)
		r.Post("/plan/convert", s.convert)
		r.Post("/plan/currency", s.currency)
		r.Post("/plan/save", s.save)

		r.Get("/matches", s.matches)
		r.Delete("/matches", s.clearMatches)
	})

	return r
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// dispatch handles POST /api/commands. The body is the flat envelope
// shape: the command kind plus its payload fields as siblings.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	var env command.Envelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.engine.Dispatch(r.Context(), env.Command, env.Payload); err != nil {
		s.writeError(w, err)
		return
	}
	s.writePlan(w)
}

// chat handles POST /api/chat: free text through the agent translation
// service, then the detected command through the same dispatch path.
func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Prompt == "" {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	env, err := s.engine.Translate(r.Context(), body.Prompt)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"command":     env.Command,
		"response_en": env.ResponseEN,
		"response_vi": env.ResponseVI,
		"plan":        s.engine.Plan(),
		"version":     s.engine.Version(),
	})
}

func (s *Server) plan(w http.ResponseWriter, _ *http.Request) {
	s.writePlan(w)
}

func (s *Server) converted(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"currency": s.engine.Currency(),
		"days":     s.engine.ConvertedDays(),
	})
}

func (s *Server) optimize(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.Optimize(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	s.writePlan(w)
}

func (s *Server) convert(w http.ResponseWriter, r *http.Request) {
	days, err := s.engine.RefreshConversion(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"currency": s.engine.Currency(),
		"days":     days,
	})
}

// currency handles POST /api/plan/currency: switch the display currency
// and rebuild the converted snapshot in one round trip.
func (s *Server) currency(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Currency string `json:"currency"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Currency == "" {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s.engine.SetCurrency(body.Currency)
	days, err := s.engine.RefreshConversion(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"currency": s.engine.Currency(),
		"days":     days,
	})
}

// save handles POST /api/plan/save. The session token arrives as a bearer
// header and is passed through explicitly; the engine holds no session.
func (s *Server) save(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if err := s.engine.Save(r.Context(), token); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":    s.engine.PlanID(),
		"dirty": s.engine.Dirty(),
	})
}

func (s *Server) matches(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"matches": s.engine.Matches()})
}

func (s *Server) clearMatches(w http.ResponseWriter, _ *http.Request) {
	s.engine.ResetMatches()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writePlan(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]any{
		"plan":         s.engine.Plan(),
		"version":      s.engine.Version(),
		"selected_day": s.engine.SelectedDay(),
		"view":         s.engine.View(),
		"currency":     s.engine.Currency(),
		"dirty":        s.engine.Dirty(),
	})
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNoSession), errors.Is(err, domain.ErrSessionExpired):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrDayNotFound),
		errors.Is(err, domain.ErrDestinationNotFound),
		errors.Is(err, domain.ErrTripNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrLastDay),
		errors.Is(err, domain.ErrDuplicateDestination),
		errors.Is(err, domain.ErrEmptyTripName),
		errors.Is(err, domain.ErrNoRouteMatch):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrStaleResult):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	auth := r.Header.Get("Authorization")
	if len(auth) > len(prefix) && auth[:len(prefix)] == prefix {
		return auth[len(prefix):]
	}
	return ""
}
