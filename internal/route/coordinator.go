// Package route coordinates a day's stops with the external route
// optimizer and reconciles the coordinate-only response back into full
// Destination records.
package route

import (
	"context"
	"errors"
	"fmt"

	"github.com/planora/planora/pkg/domain"
	"github.com/planora/planora/pkg/ports"
)

// Origin is an optional user-location prefix for the optimizer request.
type Origin struct {
	Latitude  float64
	Longitude float64
}

// originName labels the user-location waypoint so reconciliation can drop
// it: no destination ever carries this name with these coordinates.
const originName = "User Location"

// Coordinator sends a day's destinations to the optimizer and turns the
// answer into an ordered destination list plus route metadata.
type Coordinator struct {
	optimizer ports.RouteOptimizer
}

// NewCoordinator creates a coordinator over the given optimizer.
func NewCoordinator(optimizer ports.RouteOptimizer) *Coordinator {
	return &Coordinator{optimizer: optimizer}
}

// Outcome is a successful optimization, ready to apply to a day.
type Outcome struct {
	// Destinations is the original records in optimized visiting order.
	Destinations []domain.Destination
	// Result carries the aggregate metadata from the optimizer.
	Result ports.RouteResult
}

// Optimize runs the external optimizer over the destinations of one day,
// optionally prefixed with the user's origin, and reconciles the response.
// On any failure the caller's document must be left untouched; the
// returned error describes why.
func (c *Coordinator) Optimize(ctx context.Context, destinations []domain.Destination, origin *Origin) (*Outcome, error) {
	if len(destinations) == 0 {
		return nil, errors.New("no destinations to optimize")
	}

	waypoints := make([]ports.Waypoint, 0, len(destinations)+1)
	if origin != nil {
		waypoints = append(waypoints, ports.Waypoint{
			Lat:  origin.Latitude,
			Lon:  origin.Longitude,
			Name: originName,
		})
	}
	for _, d := range destinations {
		waypoints = append(waypoints, ports.Waypoint{Lat: d.Latitude, Lon: d.Longitude, Name: d.Name})
	}

	result, err := c.optimizer.Optimize(ctx, waypoints)
	if err != nil {
		return nil, fmt.Errorf("optimizer call: %w", err)
	}
	if !result.Success {
		if result.Error != "" {
			return nil, fmt.Errorf("optimizer: %s", result.Error)
		}
		return nil, errors.New("optimizer reported failure")
	}

	reconciled := Reconcile(destinations, result.OptimizedRoute)
	if len(reconciled) == 0 {
		return nil, domain.ErrNoRouteMatch
	}

	return &Outcome{Destinations: reconciled, Result: *result}, nil
}

// Reconcile matches the optimizer's coordinate-only waypoints back to the
// original destinations by exact equality on (latitude, longitude, name).
// Waypoints with no match (including the injected origin) are dropped;
// when several destinations are identical, the first match wins.
func Reconcile(originals []domain.Destination, ordered []ports.RouteWaypoint) []domain.Destination {
	out := make([]domain.Destination, 0, len(ordered))
	for _, wp := range ordered {
		for _, d := range originals {
			if d.Latitude == wp.Lat && d.Longitude == wp.Lon && d.Name == wp.Name {
				out = append(out, d.Clone())
				break
			}
		}
	}
	return out
}
