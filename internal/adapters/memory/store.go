// Package memory implements ports.TripService in process memory, for
// tests and single-user local runs.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/planora/planora/pkg/domain"
	"github.com/planora/planora/pkg/ports"
)

// Store keeps trips in a per-token map. Records are stored by value, so
// callers never share slices with the store.
type Store struct {
	mu    sync.RWMutex
	trips map[string]map[string]ports.TripRecord
}

// New creates an empty in-memory trip store.
func New() *Store {
	return &Store{trips: make(map[string]map[string]ports.TripRecord)}
}

func (s *Store) Create(_ context.Context, token string, trip ports.TripRecord) (ports.TripRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip.ID = uuid.NewString()
	if s.trips[token] == nil {
		s.trips[token] = make(map[string]ports.TripRecord)
	}
	s.trips[token][trip.ID] = clone(trip)
	return trip, nil
}

func (s *Store) Update(_ context.Context, token string, trip ports.TripRecord) (ports.TripRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.trips[token][trip.ID]; !ok {
		return ports.TripRecord{}, domain.ErrTripNotFound
	}
	s.trips[token][trip.ID] = clone(trip)
	return trip, nil
}

func (s *Store) Get(_ context.Context, token, id string) (ports.TripRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trip, ok := s.trips[token][id]
	if !ok {
		return ports.TripRecord{}, domain.ErrTripNotFound
	}
	return clone(trip), nil
}

func (s *Store) Delete(_ context.Context, token, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.trips[token], id)
	return nil
}

func (s *Store) List(_ context.Context, token string) ([]ports.TripRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ports.TripRecord, 0, len(s.trips[token]))
	for _, trip := range s.trips[token] {
		out = append(out, clone(trip))
	}
	return out, nil
}

func clone(t ports.TripRecord) ports.TripRecord {
	out := t
	out.Days = make([]ports.DayRecord, len(t.Days))
	for i, day := range t.Days {
		cd := day
		cd.Destinations = make([]ports.DestinationRecord, len(day.Destinations))
		for j, dest := range day.Destinations {
			cdest := dest
			cdest.Costs = append([]ports.CostRecord(nil), dest.Costs...)
			cd.Destinations[j] = cdest
		}
		out.Days[i] = cd
	}
	return out
}
