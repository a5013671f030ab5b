// Package redis implements ports.TripService on Redis, for deployments
// that keep trips in a shared cache instead of the HTTP trip service.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	backend "github.com/redis/go-redis/v9"

	"github.com/planora/planora/pkg/domain"
	"github.com/planora/planora/pkg/ports"
)

// Store keys trips per user: the token scopes both the trip keys and the
// per-user index set, so List never crosses users.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for stored trips.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// WithPrefix sets the key prefix for trips.
func WithPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

// New creates a Redis trip store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a Redis trip store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "planora:trip:",
		ttl:    0,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(token, id string) string {
	return s.prefix + token + ":" + id
}

func (s *Store) indexKey(token string) string {
	return s.prefix + token + ":index"
}

func (s *Store) Create(ctx context.Context, token string, trip ports.TripRecord) (ports.TripRecord, error) {
	trip.ID = uuid.NewString()
	if err := s.put(ctx, token, trip); err != nil {
		return ports.TripRecord{}, err
	}
	return trip, nil
}

func (s *Store) Update(ctx context.Context, token string, trip ports.TripRecord) (ports.TripRecord, error) {
	exists, err := s.client.Exists(ctx, s.key(token, trip.ID)).Result()
	if err != nil {
		return ports.TripRecord{}, fmt.Errorf("check trip: %w", err)
	}
	if exists == 0 {
		return ports.TripRecord{}, domain.ErrTripNotFound
	}
	if err := s.put(ctx, token, trip); err != nil {
		return ports.TripRecord{}, err
	}
	return trip, nil
}

func (s *Store) put(ctx context.Context, token string, trip ports.TripRecord) error {
	data, err := json.Marshal(trip)
	if err != nil {
		return fmt.Errorf("marshal trip: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(token, trip.ID), data, s.ttl)
	pipe.SAdd(ctx, s.indexKey(token), trip.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save trip to redis: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, token, id string) (ports.TripRecord, error) {
	val, err := s.client.Get(ctx, s.key(token, id)).Result()
	if err != nil {
		if err == backend.Nil {
			return ports.TripRecord{}, domain.ErrTripNotFound
		}
		return ports.TripRecord{}, fmt.Errorf("get trip from redis: %w", err)
	}

	var trip ports.TripRecord
	if err := json.Unmarshal([]byte(val), &trip); err != nil {
		return ports.TripRecord{}, fmt.Errorf("unmarshal trip: %w", err)
	}
	return trip, nil
}

func (s *Store) Delete(ctx context.Context, token, id string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(token, id))
	pipe.SRem(ctx, s.indexKey(token), id)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Store) List(ctx context.Context, token string) ([]ports.TripRecord, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey(token)).Result()
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}

	trips := make([]ports.TripRecord, 0, len(ids))
	for _, id := range ids {
		trip, err := s.Get(ctx, token, id)
		if err != nil {
			// Expired trip still indexed: prune lazily and move on.
			if err == domain.ErrTripNotFound {
				s.client.SRem(ctx, s.indexKey(token), id)
				continue
			}
			return nil, err
		}
		trips = append(trips, trip)
	}
	return trips, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
