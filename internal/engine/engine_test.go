package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planora/planora/pkg/command"
	"github.com/planora/planora/pkg/domain"
)

func dispatch(t *testing.T, e *Engine, kind command.Kind, raw map[string]any) {
	t.Helper()
	require.NoError(t, e.Dispatch(context.Background(), kind, raw))
}

func placePayload(id, name string, lat, lon float64) map[string]any {
	return map[string]any{
		"place_id": id,
		"title":    name,
		"en_name":  name,
		"price":    "$10",
		"gps_coordinates": map[string]any{
			"latitude":  lat,
			"longitude": lon,
		},
	}
}

func TestUnknownCommandIsIgnored(t *testing.T) {
	e := New()
	before := e.Plan()
	version := e.Version()

	require.NoError(t, e.Dispatch(context.Background(), "make_coffee", map[string]any{"x": 1}))

	assert.Equal(t, before, e.Plan())
	assert.Equal(t, version, e.Version())
}

func TestInvalidPayloadIsDropped(t *testing.T) {
	e := New()
	version := e.Version()

	require.NoError(t, e.Dispatch(context.Background(), command.UpdateMembers, map[string]any{"members": 0}))

	assert.Equal(t, version, e.Version())
	assert.Zero(t, e.Members())
}

func TestAddAndSelectDays(t *testing.T) {
	e := New()

	dispatch(t, e, command.AddNewDay, nil)
	dispatch(t, e, command.AddNewDay, nil)

	plan := e.Plan()
	require.Len(t, plan.Days, 3)
	// The new day gets the focus.
	assert.Equal(t, "3", e.SelectedDay())

	dispatch(t, e, command.SelectDay, map[string]any{"day": 2})
	assert.Equal(t, "2", e.SelectedDay())
	assert.Equal(t, ViewSingle, e.View())

	err := e.Dispatch(context.Background(), command.SelectDay, map[string]any{"day": 9})
	assert.ErrorIs(t, err, domain.ErrDayNotFound)
}

func TestAddDayAfterCurrent(t *testing.T) {
	e := New()
	dispatch(t, e, command.AddNewDay, nil)
	dispatch(t, e, command.SelectDay, map[string]any{"day": 1})

	dispatch(t, e, command.AddNewDayAfterCurrent, nil)

	require.Len(t, e.Plan().Days, 3)
	// The inserted day (now day 2) gets the focus.
	assert.Equal(t, "2", e.SelectedDay())
}

func TestDeleteLastDayRejected(t *testing.T) {
	e := New()
	before := e.Plan()

	err := e.Dispatch(context.Background(), command.DeleteCurrentDay, nil)
	assert.ErrorIs(t, err, domain.ErrLastDay)
	assert.Equal(t, before, e.Plan())
}

func TestDeleteDayRepairsSelection(t *testing.T) {
	e := New()
	dispatch(t, e, command.AddNewDay, nil)
	dispatch(t, e, command.AddNewDay, nil)
	require.Equal(t, "3", e.SelectedDay())

	dispatch(t, e, command.DeleteCurrentDay, nil)

	// Day 3 is gone; the selection falls back to the first day.
	require.Len(t, e.Plan().Days, 2)
	assert.Equal(t, "1", e.SelectedDay())
}

func TestDeleteRangeBeyondPlanRejected(t *testing.T) {
	e := New()
	dispatch(t, e, command.AddNewDay, nil)

	err := e.Dispatch(context.Background(), command.DeleteRangeOfDays,
		map[string]any{"start_day": 1, "end_day": 5})
	assert.ErrorIs(t, err, domain.ErrDayNotFound)
	assert.Len(t, e.Plan().Days, 2)
}

func TestManualEditInvalidatesOptimizedRoute(t *testing.T) {
	e := New()
	dispatch(t, e, command.AddNewDestination,
		map[string]any{"day": 1, "destination": placePayload("p1", "Market", 10.1, 106.1)})

	// Simulate a cached optimized route on day 1.
	e.mu.Lock()
	plan := e.plan.Clone()
	plan.Days[0].OptimizedRoute = cloneForTest(plan.Days[0].Destinations)
	plan.Days[0].RouteDistanceKm = 3
	require.NoError(t, e.commit(plan))
	e.mu.Unlock()

	dispatch(t, e, command.AddNewDestination,
		map[string]any{"day": 1, "destination": placePayload("p2", "Museum", 10.2, 106.2)})

	day := e.Plan().Days[0]
	assert.Empty(t, day.OptimizedRoute)
	// Metadata is kept; the empty route is what marks the cache stale.
	assert.Equal(t, float64(3), day.RouteDistanceKm)
}

func TestDuplicateDestinationRejected(t *testing.T) {
	e := New()
	raw := map[string]any{"day": 1, "destination": placePayload("p1", "Market", 10.1, 106.1)}
	dispatch(t, e, command.AddNewDestination, raw)

	err := e.Dispatch(context.Background(), command.AddNewDestination, raw)
	assert.ErrorIs(t, err, domain.ErrDuplicateDestination)
	assert.Len(t, e.Plan().Days[0].Destinations, 1)
}

func TestReplaceDestination(t *testing.T) {
	e := New()
	dispatch(t, e, command.AddNewDestination,
		map[string]any{"day": 1, "destination": placePayload("p1", "Market", 10.1, 106.1)})

	dispatch(t, e, command.ReplaceDestination, map[string]any{
		"remove_id":       "p1",
		"new_destination": placePayload("p2", "Museum", 10.2, 106.2),
	})

	dests := e.Plan().Days[0].Destinations
	require.Len(t, dests, 1)
	assert.Equal(t, "p2", dests[0].ID)

	err := e.Dispatch(context.Background(), command.ReplaceDestination, map[string]any{
		"remove_id":       "ghost",
		"new_destination": placePayload("p3", "Pagoda", 10.3, 106.3),
	})
	assert.ErrorIs(t, err, domain.ErrDestinationNotFound)
}

func TestRemoveDestination(t *testing.T) {
	e := New()
	dispatch(t, e, command.AddNewDestination,
		map[string]any{"day": 1, "destination": placePayload("p1", "Market", 10.1, 106.1)})

	dispatch(t, e, command.RemoveDestination, map[string]any{"destination_id": "p1"})
	assert.Empty(t, e.Plan().Days[0].Destinations)
}

func TestStartDateResizesDayGrid(t *testing.T) {
	e := New()

	dispatch(t, e, command.UpdateStartDate, map[string]any{"start_day": "2026-03-01"})
	dispatch(t, e, command.UpdateEndDate, map[string]any{"end_day": "2026-03-04"})

	// Inclusive difference: four days.
	assert.Len(t, e.Plan().Days, 4)
}

func TestStructuralChangeRederivesEndDate(t *testing.T) {
	e := New()
	dispatch(t, e, command.UpdateStartDate, map[string]any{"start_day": "2026-03-01"})
	dispatch(t, e, command.UpdateEndDate, map[string]any{"end_day": "2026-03-02"})
	require.Len(t, e.Plan().Days, 2)

	dispatch(t, e, command.AddNewDay, nil)

	// Three days now; the end date follows the day count, the day count
	// does not bounce back from the new end date.
	require.Len(t, e.Plan().Days, 3)
	_, end := e.Dates()
	require.NotNil(t, end)
	assert.Equal(t, "2026-03-03", end.Format("2006-01-02"))
}

func TestUnparsableDateIsDropped(t *testing.T) {
	e := New()
	version := e.Version()

	dispatch(t, e, command.UpdateStartDate, map[string]any{"start_day": "next tuesday"})

	start, _ := e.Dates()
	assert.Nil(t, start)
	assert.Equal(t, version, e.Version())
}

func TestViewCommands(t *testing.T) {
	e := New()

	dispatch(t, e, command.ViewAllDays, nil)
	assert.Equal(t, ViewAllDays, e.View())

	dispatch(t, e, command.ExtendMapView, nil)
	assert.True(t, e.MapExpanded())
	dispatch(t, e, command.CollapseMapView, nil)
	assert.False(t, e.MapExpanded())

	dispatch(t, e, command.FindRouteOfPair, map[string]any{"pair_index": 2})
	assert.Equal(t, ViewRouteGuidance, e.View())
	assert.Equal(t, 2, e.RouteLeg())
}

func TestSearchStagesCandidatesWithoutTouchingPlan(t *testing.T) {
	e := New()
	before := e.Plan()

	dispatch(t, e, command.SearchNewDestination, map[string]any{
		"matches": []map[string]any{
			placePayload("p1", "Market", 10.1, 106.1),
			placePayload("p2", "Museum", 10.2, 106.2),
		},
	})

	assert.Len(t, e.Matches(), 2)
	assert.Equal(t, before, e.Plan())

	// Confirming one candidate moves it into the plan.
	dispatch(t, e, command.ConfirmAddNewDestination,
		map[string]any{"day": 1, "destination": placePayload("p1", "Market", 10.1, 106.1)})
	assert.Len(t, e.Plan().Days[0].Destinations, 1)

	e.ResetMatches()
	assert.Nil(t, e.Matches())
}

func TestDeleteCurrentPlanResetsEverything(t *testing.T) {
	e := New()
	dispatch(t, e, command.UpdateTripName, map[string]any{"trip_name": "Hue Trip"})
	dispatch(t, e, command.AddNewDay, nil)
	dispatch(t, e, command.UpdateMembers, map[string]any{"members": 4})

	dispatch(t, e, command.DeleteCurrentPlan, nil)

	plan := e.Plan()
	assert.Empty(t, plan.Name)
	assert.Len(t, plan.Days, 1)
	assert.Equal(t, "1", e.SelectedDay())
	assert.Zero(t, e.Members())
	start, end := e.Dates()
	assert.Nil(t, start)
	assert.Nil(t, end)
}

func TestCreateItineraryDistributesPlaces(t *testing.T) {
	e := New()

	places := []map[string]any{
		placePayload("p1", "A", 1, 1),
		placePayload("p2", "B", 2, 2),
		placePayload("p3", "C", 3, 3),
		placePayload("p4", "D", 4, 4),
		placePayload("p5", "E", 5, 5),
	}
	dispatch(t, e, command.CreateItinerary, map[string]any{
		"itinerary": map[string]any{
			"trip_info": map[string]any{
				"trip_name":  "Coast Run",
				"num_people": 2,
				"start_day":  "2026-04-01",
				"end_day":    "2026-04-03",
			},
			"places":               places,
			"valid_starting_point": true,
		},
	})

	plan := e.Plan()
	assert.Equal(t, "Coast Run", plan.Name)
	assert.Equal(t, 2, e.Members())
	require.Len(t, plan.Days, 3)

	// Five places over three days: the remainder lands on the earliest days.
	assert.Len(t, plan.Days[0].Destinations, 2)
	assert.Len(t, plan.Days[1].Destinations, 2)
	assert.Len(t, plan.Days[2].Destinations, 1)
}

func TestCreateItineraryInvalidStartingPoint(t *testing.T) {
	e := New()

	err := e.Dispatch(context.Background(), command.CreateItinerary, map[string]any{
		"itinerary": map[string]any{
			"trip_info": map[string]any{
				"trip_name": "Nowhere",
				"start_day": "2026-04-01",
				"end_day":   "2026-04-02",
			},
			"places":               []map[string]any{placePayload("p1", "A", 1, 1)},
			"valid_starting_point": false,
		},
	})
	require.Error(t, err)

	// Metadata applied, but no places placed.
	plan := e.Plan()
	assert.Equal(t, "Nowhere", plan.Name)
	require.Len(t, plan.Days, 2)
	assert.Empty(t, plan.Days[0].Destinations)
}

func cloneForTest(in []domain.Destination) []domain.Destination {
	out := make([]domain.Destination, len(in))
	for i, d := range in {
		out[i] = d.Clone()
	}
	return out
}
