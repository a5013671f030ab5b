package command

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/planora/planora/pkg/domain"
)

// Payload is implemented by every per-kind payload struct.
type Payload interface {
	// Validate rejects payloads whose required fields are missing or out of
	// range. Handlers never see an invalid payload.
	Validate() error
}

// None is the payload of commands that carry no arguments.
type None struct{}

func (None) Validate() error { return nil }

// TripName renames the trip.
type TripName struct {
	Name string `mapstructure:"trip_name"`
}

func (p TripName) Validate() error {
	if p.Name == "" {
		return &ValidationError{Key: "trip_name", Reason: "required"}
	}
	return nil
}

// Members sets the member head count.
type Members struct {
	Members int `mapstructure:"members"`
}

func (p Members) Validate() error {
	if p.Members < 1 {
		return &ValidationError{Key: "members", Reason: "must be positive", Value: p.Members}
	}
	return nil
}

// StartDate sets the trip start date as "2006-01-02".
type StartDate struct {
	Day string `mapstructure:"start_day"`
}

func (p StartDate) Validate() error { return requireDate("start_day", p.Day) }

// EndDate sets the trip end date as "2006-01-02".
type EndDate struct {
	Day string `mapstructure:"end_day"`
}

func (p EndDate) Validate() error { return requireDate("end_day", p.Day) }

// DayRef points at one day by its 1-based number.
type DayRef struct {
	Day int `mapstructure:"day"`
}

func (p DayRef) Validate() error {
	if p.Day < 1 {
		return &ValidationError{Key: "day", Reason: "must be a 1-based day number", Value: p.Day}
	}
	return nil
}

// DayPair names two days to swap.
type DayPair struct {
	Day1 int `mapstructure:"day1"`
	Day2 int `mapstructure:"day2"`
}

func (p DayPair) Validate() error {
	if p.Day1 < 1 {
		return &ValidationError{Key: "day1", Reason: "must be a 1-based day number", Value: p.Day1}
	}
	if p.Day2 < 1 {
		return &ValidationError{Key: "day2", Reason: "must be a 1-based day number", Value: p.Day2}
	}
	return nil
}

// DayRange is an inclusive 1-based day span.
type DayRange struct {
	Start int `mapstructure:"start_day"`
	End   int `mapstructure:"end_day"`
}

func (p DayRange) Validate() error {
	if p.Start < 1 {
		return &ValidationError{Key: "start_day", Reason: "must be a 1-based day number", Value: p.Start}
	}
	if p.End < p.Start {
		return &ValidationError{Key: "end_day", Reason: "must not precede start_day", Value: p.End}
	}
	return nil
}

// AddDestination places a new destination onto a day.
type AddDestination struct {
	Day         int          `mapstructure:"day"`
	Destination domain.Place `mapstructure:"destination"`
}

func (p AddDestination) Validate() error {
	if p.Day < 1 {
		return &ValidationError{Key: "day", Reason: "must be a 1-based day number", Value: p.Day}
	}
	return nil
}

// Replace swaps one destination in the plan for another, keyed by the id
// of the destination being removed.
type Replace struct {
	RemoveID    string       `mapstructure:"remove_id"`
	Destination domain.Place `mapstructure:"new_destination"`
}

func (p Replace) Validate() error {
	if p.RemoveID == "" {
		return &ValidationError{Key: "remove_id", Reason: "required"}
	}
	return nil
}

// Remove deletes a destination by id.
type Remove struct {
	DestinationID string `mapstructure:"destination_id"`
}

func (p Remove) Validate() error {
	if p.DestinationID == "" {
		return &ValidationError{Key: "destination_id", Reason: "required"}
	}
	return nil
}

// PairIndex selects one leg of the optimized route for guidance view.
type PairIndex struct {
	PairIndex int `mapstructure:"pair_index"`
}

func (p PairIndex) Validate() error {
	if p.PairIndex < 0 {
		return &ValidationError{Key: "pair_index", Reason: "must not be negative", Value: p.PairIndex}
	}
	return nil
}

// Matches stages candidate places into the transient buffer.
type Matches struct {
	Matches []domain.Place `mapstructure:"matches"`
}

func (Matches) Validate() error { return nil }

// PlaceType requests nearby candidates of one category.
type PlaceType struct {
	Type string `mapstructure:"type"`
}

func (p PlaceType) Validate() error {
	if p.Type == "" {
		return &ValidationError{Key: "type", Reason: "required"}
	}
	return nil
}

// PlaceInfo stages a single fully-detailed place.
type PlaceInfo struct {
	Place domain.Place `mapstructure:"place_info"`
}

func (PlaceInfo) Validate() error { return nil }

// TripInfo is the metadata block of an agent-built itinerary.
type TripInfo struct {
	TripName  string `mapstructure:"trip_name"`
	NumPeople int    `mapstructure:"num_people"`
	StartDay  string `mapstructure:"start_day"`
	EndDay    string `mapstructure:"end_day"`
}

// Itinerary is a whole agent-built trip: metadata, a date range that sizes
// the day grid, and places to distribute across the days.
type Itinerary struct {
	Info   TripInfo       `mapstructure:"trip_info"`
	Places []domain.Place `mapstructure:"places"`
	Valid  *bool          `mapstructure:"valid_starting_point"`
}

// CreateItineraryPayload wraps an itinerary under the key the agent emits.
type CreateItineraryPayload struct {
	Itinerary Itinerary `mapstructure:"itinerary"`
}

func (CreateItineraryPayload) Validate() error { return nil }

func requireDate(key, value string) error {
	if value == "" {
		return &ValidationError{Key: key, Reason: "required"}
	}
	return nil
}

// payloadFactories maps each kind to a constructor for its empty payload.
var payloadFactories = map[Kind]func() Payload{
	UpdateTripName:  func() Payload { return &TripName{} },
	UpdateMembers:   func() Payload { return &Members{} },
	UpdateStartDate: func() Payload { return &StartDate{} },
	UpdateEndDate:   func() Payload { return &EndDate{} },

	AddNewDay:             func() Payload { return &None{} },
	AddNewDayAfterCurrent: func() Payload { return &None{} },
	AddNewDayAfterIth:     func() Payload { return &DayRef{} },
	DeleteCurrentDay:      func() Payload { return &None{} },
	DeleteAllDays:         func() Payload { return &None{} },
	SwapDay:               func() Payload { return &DayPair{} },
	DeleteRangeOfDays:     func() Payload { return &DayRange{} },

	AddNewDestination:        func() Payload { return &AddDestination{} },
	ConfirmAddNewDestination: func() Payload { return &AddDestination{} },
	ReplaceDestination:       func() Payload { return &Replace{} },
	RemoveDestination:        func() Payload { return &Remove{} },

	SelectDay:       func() Payload { return &DayRef{} },
	ViewAllDays:     func() Payload { return &None{} },
	ExtendMapView:   func() Payload { return &None{} },
	CollapseMapView: func() Payload { return &None{} },
	FindRouteOfPair: func() Payload { return &PairIndex{} },

	DeleteCurrentPlan: func() Payload { return &None{} },

	SearchNewDestination:  func() Payload { return &Matches{} },
	ExtractTypeFromPrompt: func() Payload { return &PlaceType{} },
	FindPlaceInformation:  func() Payload { return &PlaceInfo{} },

	CreateItinerary: func() Payload { return &CreateItineraryPayload{} },
}

// Decode narrows a loosely-typed payload map into the typed payload for
// kind and validates it. Agent payloads routinely carry numbers as strings,
// so decoding is weakly typed. ErrUnknownKind is returned for kinds the
// engine does not understand.
func Decode(kind Kind, raw map[string]any) (Payload, error) {
	factory, ok := payloadFactories[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	payload := factory()

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           payload,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if raw == nil {
		raw = map[string]any{}
	}
	if err := dec.Decode(raw); err != nil {
		return nil, &ValidationError{Key: string(kind), Reason: err.Error(), Value: raw}
	}
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	return payload, nil
}
