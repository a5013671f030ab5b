package command_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planora/planora/pkg/command"
)

func TestDecodeUnknownKind(t *testing.T) {
	_, err := command.Decode("teleport_home", nil)
	assert.ErrorIs(t, err, command.ErrUnknownKind)
}

func TestDecodeWeaklyTypedNumbers(t *testing.T) {
	// Agent payloads routinely carry numbers as strings.
	payload, err := command.Decode(command.SwapDay, map[string]any{
		"day1": "2",
		"day2": 3,
	})
	require.NoError(t, err)

	pair := payload.(*command.DayPair)
	assert.Equal(t, 2, pair.Day1)
	assert.Equal(t, 3, pair.Day2)
}

func TestDecodeValidation(t *testing.T) {
	tests := []struct {
		name string
		kind command.Kind
		raw  map[string]any
	}{
		{"empty trip name", command.UpdateTripName, map[string]any{"trip_name": ""}},
		{"zero members", command.UpdateMembers, map[string]any{"members": 0}},
		{"day zero", command.AddNewDayAfterIth, map[string]any{"day": 0}},
		{"inverted range", command.DeleteRangeOfDays, map[string]any{"start_day": 3, "end_day": 1}},
		{"missing remove id", command.ReplaceDestination, map[string]any{}},
		{"negative pair index", command.FindRouteOfPair, map[string]any{"pair_index": -1}},
		{"missing type", command.ExtractTypeFromPrompt, map[string]any{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := command.Decode(tt.kind, tt.raw)
			require.Error(t, err)
			assert.True(t, command.IsValidation(err), "expected validation error, got %v", err)
		})
	}
}

func TestDecodeNoArgCommandsTolerateAnyPayload(t *testing.T) {
	for _, kind := range []command.Kind{
		command.AddNewDay,
		command.DeleteCurrentDay,
		command.DeleteAllDays,
		command.ViewAllDays,
		command.DeleteCurrentPlan,
	} {
		_, err := command.Decode(kind, map[string]any{"stray": "ignored"})
		assert.NoError(t, err, "kind %s", kind)
	}
}

func TestDecodeNestedDestination(t *testing.T) {
	payload, err := command.Decode(command.AddNewDestination, map[string]any{
		"day": "1",
		"destination": map[string]any{
			"place_id": "p-9",
			"title":    "Museum",
			"price":    "$12",
			"gps_coordinates": map[string]any{
				"latitude":  "10.78",
				"longitude": 106.7,
			},
		},
	})
	require.NoError(t, err)

	add := payload.(*command.AddDestination)
	assert.Equal(t, 1, add.Day)
	assert.Equal(t, "p-9", add.Destination.PlaceID)
	assert.Equal(t, 10.78, add.Destination.Coordinates.Latitude)
	assert.Equal(t, 106.7, add.Destination.Coordinates.Longitude)
}

func TestDecodeItinerary(t *testing.T) {
	payload, err := command.Decode(command.CreateItinerary, map[string]any{
		"itinerary": map[string]any{
			"trip_info": map[string]any{
				"trip_name":  "Saigon Weekend",
				"num_people": "4",
				"start_day":  "2026-03-01",
				"end_day":    "2026-03-03",
			},
			"places":               []map[string]any{{"title": "A"}, {"title": "B"}},
			"valid_starting_point": false,
		},
	})
	require.NoError(t, err)

	it := payload.(*command.CreateItineraryPayload).Itinerary
	assert.Equal(t, "Saigon Weekend", it.Info.TripName)
	assert.Equal(t, 4, it.Info.NumPeople)
	assert.Len(t, it.Places, 2)
	require.NotNil(t, it.Valid)
	assert.False(t, *it.Valid)
}

func TestKnown(t *testing.T) {
	assert.True(t, command.Known(command.SwapDay))
	assert.False(t, command.Known("warp_drive"))
}
