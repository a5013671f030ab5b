package command_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planora/planora/pkg/command"
)

func TestEnvelopeUnmarshalFlattened(t *testing.T) {
	raw := `{
		"command": "swap_day",
		"day1": 1,
		"day2": "3",
		"response_en": "Swapped day 1 and day 3.",
		"response_vi": "Đã hoán đổi ngày 1 và ngày 3."
	}`

	var env command.Envelope
	require.NoError(t, json.Unmarshal([]byte(raw), &env))

	assert.Equal(t, command.SwapDay, env.Command)
	assert.Equal(t, "Swapped day 1 and day 3.", env.ResponseEN)
	assert.Equal(t, "Đã hoán đổi ngày 1 và ngày 3.", env.ResponseVI)

	// The payload holds only the sibling keys.
	assert.Equal(t, float64(1), env.Payload["day1"])
	assert.Equal(t, "3", env.Payload["day2"])
	assert.NotContains(t, env.Payload, "command")
	assert.NotContains(t, env.Payload, "response_en")
}

func TestEnvelopeRoundTrip(t *testing.T) {
	env := command.Envelope{
		Command:    command.UpdateTripName,
		Payload:    map[string]any{"trip_name": "Hue Trip"},
		ResponseEN: "Renamed.",
	}

	data, err := json.Marshal(env)
	require.NoError(t, err)

	var back command.Envelope
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, env.Command, back.Command)
	assert.Equal(t, "Hue Trip", back.Payload["trip_name"])
	assert.Equal(t, "Renamed.", back.ResponseEN)
	assert.Empty(t, back.ResponseVI)
}

func TestEnvelopeDecodesIntoPayload(t *testing.T) {
	var env command.Envelope
	require.NoError(t, json.Unmarshal([]byte(`{"command":"select_day","day":"2"}`), &env))

	payload, err := command.Decode(env.Command, env.Payload)
	require.NoError(t, err)
	assert.Equal(t, 2, payload.(*command.DayRef).Day)
}
