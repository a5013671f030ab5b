package route

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planora/planora/pkg/domain"
	"github.com/planora/planora/pkg/ports"
)

type fakeOptimizer struct {
	got    []ports.Waypoint
	result *ports.RouteResult
	err    error
}

func (f *fakeOptimizer) Optimize(_ context.Context, waypoints []ports.Waypoint) (*ports.RouteResult, error) {
	f.got = waypoints
	return f.result, f.err
}

func dest(id, name string, lat, lon float64) domain.Destination {
	return domain.Destination{
		ID:        id,
		Name:      name,
		Latitude:  lat,
		Longitude: lon,
		Costs:     []domain.CostItem{{ID: "c-" + id, OriginalAmount: "1", OriginalCurrency: domain.CurrencyUSD}},
	}
}

func wp(name string, lat, lon float64) ports.RouteWaypoint {
	return ports.RouteWaypoint{Lat: lat, Lon: lon, Name: name}
}

func TestOptimizeReordersByReconciliation(t *testing.T) {
	a := dest("a", "Market", 10.1, 106.1)
	b := dest("b", "Museum", 10.2, 106.2)

	opt := &fakeOptimizer{result: &ports.RouteResult{
		Success:        true,
		OptimizedRoute: []ports.RouteWaypoint{wp("Museum", 10.2, 106.2), wp("Market", 10.1, 106.1)},
		DistanceKm:     4.2,
		DurationMin:    17,
	}}

	out, err := NewCoordinator(opt).Optimize(context.Background(), []domain.Destination{a, b}, nil)
	require.NoError(t, err)

	require.Len(t, out.Destinations, 2)
	// Full records in optimizer order, costs intact.
	assert.Equal(t, "b", out.Destinations[0].ID)
	assert.Equal(t, "a", out.Destinations[1].ID)
	assert.Len(t, out.Destinations[0].Costs, 1)
	assert.Equal(t, 4.2, out.Result.DistanceKm)
}

func TestOptimizePrefixesOrigin(t *testing.T) {
	a := dest("a", "Market", 10.1, 106.1)
	opt := &fakeOptimizer{result: &ports.RouteResult{
		Success:        true,
		OptimizedRoute: []ports.RouteWaypoint{wp("User Location", 10.0, 106.0), wp("Market", 10.1, 106.1)},
	}}

	out, err := NewCoordinator(opt).Optimize(context.Background(),
		[]domain.Destination{a}, &Origin{Latitude: 10.0, Longitude: 106.0})
	require.NoError(t, err)

	// The origin waypoint goes out first.
	require.Len(t, opt.got, 2)
	assert.Equal(t, "User Location", opt.got[0].Name)

	// And is dropped on the way back in.
	require.Len(t, out.Destinations, 1)
	assert.Equal(t, "a", out.Destinations[0].ID)
}

func TestOptimizeEmptyDay(t *testing.T) {
	_, err := NewCoordinator(&fakeOptimizer{}).Optimize(context.Background(), nil, nil)
	assert.Error(t, err)
}

func TestOptimizeReportedFailure(t *testing.T) {
	opt := &fakeOptimizer{result: &ports.RouteResult{Success: false, Error: "no roads here"}}
	_, err := NewCoordinator(opt).Optimize(context.Background(), []domain.Destination{dest("a", "A", 1, 2)}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no roads here")
}

func TestOptimizeTransportError(t *testing.T) {
	opt := &fakeOptimizer{err: errors.New("connection refused")}
	_, err := NewCoordinator(opt).Optimize(context.Background(), []domain.Destination{dest("a", "A", 1, 2)}, nil)
	assert.Error(t, err)
}

func TestOptimizeNoMatches(t *testing.T) {
	opt := &fakeOptimizer{result: &ports.RouteResult{
		Success:        true,
		OptimizedRoute: []ports.RouteWaypoint{wp("Elsewhere", 99, 99)},
	}}
	_, err := NewCoordinator(opt).Optimize(context.Background(), []domain.Destination{dest("a", "A", 1, 2)}, nil)
	assert.ErrorIs(t, err, domain.ErrNoRouteMatch)
}

func TestReconcile(t *testing.T) {
	a := dest("a", "Market", 10.1, 106.1)
	b := dest("b", "Museum", 10.2, 106.2)
	twin := dest("twin", "Market", 10.1, 106.1)

	t.Run("unmatched waypoints dropped", func(t *testing.T) {
		out := Reconcile([]domain.Destination{a, b},
			[]ports.RouteWaypoint{wp("Museum", 10.2, 106.2), wp("Ghost", 50, 50)})
		require.Len(t, out, 1)
		assert.Equal(t, "b", out[0].ID)
	})

	t.Run("name must match too", func(t *testing.T) {
		out := Reconcile([]domain.Destination{a},
			[]ports.RouteWaypoint{wp("Renamed", 10.1, 106.1)})
		assert.Empty(t, out)
	})

	t.Run("first match wins for identical destinations", func(t *testing.T) {
		out := Reconcile([]domain.Destination{a, twin},
			[]ports.RouteWaypoint{wp("Market", 10.1, 106.1)})
		require.Len(t, out, 1)
		assert.Equal(t, "a", out[0].ID)
	})
}
