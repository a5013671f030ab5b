package ports

import (
	"context"
	"encoding/json"

	"github.com/planora/planora/pkg/domain"
)

// Waypoint is one stop in an optimizer request: bare coordinates plus the
// display name. The optimizer echoes these back in visiting order, so the
// name participates in reconciliation.
type Waypoint struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Name string  `json:"name"`
}

// RouteWaypoint is a waypoint as the optimizer returns it. Some backends
// answer with lat/lon, others with latitude/longitude; both are accepted
// and the long forms win when present.
type RouteWaypoint struct {
	Lat  float64
	Lon  float64
	Name string
}

func (w *RouteWaypoint) UnmarshalJSON(data []byte) error {
	var raw struct {
		Lat       *float64 `json:"lat"`
		Lon       *float64 `json:"lon"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
		Name      string   `json:"name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	w.Name = raw.Name
	switch {
	case raw.Latitude != nil:
		w.Lat = *raw.Latitude
	case raw.Lat != nil:
		w.Lat = *raw.Lat
	}
	switch {
	case raw.Longitude != nil:
		w.Lon = *raw.Longitude
	case raw.Lon != nil:
		w.Lon = *raw.Lon
	}
	return nil
}

// RouteResult is the optimizer's answer: the input waypoints in optimized
// visiting order plus aggregate route metadata.
type RouteResult struct {
	Success           bool                        `json:"success"`
	Error             string                      `json:"error,omitempty"`
	OptimizedRoute    []RouteWaypoint             `json:"optimized_route"`
	DistanceKm        float64                     `json:"distance_km"`
	DurationMin       float64                     `json:"duration_min"`
	Geometry          string                      `json:"geometry"`
	Instructions      [][]domain.RouteInstruction `json:"instructions"`
	SegmentGeometries []string                    `json:"segment_geometries"`
}

// RouteOptimizer reorders a day's stops for travel efficiency.
type RouteOptimizer interface {
	Optimize(ctx context.Context, waypoints []Waypoint) (*RouteResult, error)
}
