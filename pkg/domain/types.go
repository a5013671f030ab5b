package domain

import "strconv"

// Currency codes supported by the editor. OriginalCurrency on a cost item
// is always one of these.
const (
	CurrencyUSD = "USD"
	CurrencyVND = "VND"
)

// CostItem is one line-item expense attached to a destination.
// OriginalAmount and OriginalCurrency are the write-once source of truth;
// Amount is a derived display value recomputed from OriginalAmount whenever
// the display currency changes, never from a previously converted Amount.
type CostItem struct {
	ID               string `json:"id"`
	Amount           string `json:"amount"`
	Detail           string `json:"detail"`
	OriginalAmount   string `json:"originalAmount"`
	OriginalCurrency string `json:"originalCurrency"`
}

// Destination is a place on a day's itinerary. Costs always has at least
// one entry.
type Destination struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Address   string     `json:"address"`
	Costs     []CostItem `json:"costs"`
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
}

// RouteInstruction is a single turn-by-turn maneuver returned by the
// optimizer.
type RouteInstruction struct {
	Type     string `json:"type"`
	Modifier string `json:"modifier"`
	Name     string `json:"name"`
}

// DayPlan is one day's ordered destinations plus any cached optimized-route
// metadata. ID and DayNumber are both the day's 1-based position and must
// stay equal and contiguous after every mutation.
//
// OptimizedRoute is a cache: any structural edit to Destinations outside the
// optimizer's own reconciliation resets it to empty.
type DayPlan struct {
	ID                     string               `json:"id"`
	DayNumber              int                  `json:"dayNumber"`
	Destinations           []Destination        `json:"destinations"`
	OptimizedRoute         []Destination        `json:"optimizedRoute"`
	RouteDistanceKm        float64              `json:"routeDistanceKm,omitempty"`
	RouteDurationMin       float64              `json:"routeDurationMin,omitempty"`
	RouteGeometry          string               `json:"routeGeometry,omitempty"`
	RouteInstructions      [][]RouteInstruction `json:"routeInstructions,omitempty"`
	RouteSegmentGeometries []string             `json:"routeSegmentGeometries,omitempty"`
}

// TripPlan is the whole editable itinerary. Days always has at least one
// entry.
type TripPlan struct {
	Name string    `json:"name"`
	Days []DayPlan `json:"days"`
}

// NewDay returns an empty day at the given 1-based position.
func NewDay(number int) DayPlan {
	return DayPlan{
		ID:             strconv.Itoa(number),
		DayNumber:      number,
		Destinations:   []Destination{},
		OptimizedRoute: []Destination{},
	}
}

// NewPlan returns a plan with a single empty day, the minimal valid
// document.
func NewPlan() TripPlan {
	return TripPlan{Days: []DayPlan{NewDay(1)}}
}

// Clone returns a deep copy of the plan. Async collaborators work on clones
// so their snapshots never alias engine state.
func (p TripPlan) Clone() TripPlan {
	out := TripPlan{Name: p.Name, Days: make([]DayPlan, len(p.Days))}
	for i, d := range p.Days {
		out.Days[i] = d.Clone()
	}
	return out
}

// Clone returns a deep copy of the day.
func (d DayPlan) Clone() DayPlan {
	out := d
	out.Destinations = cloneDestinations(d.Destinations)
	out.OptimizedRoute = cloneDestinations(d.OptimizedRoute)
	if d.RouteInstructions != nil {
		out.RouteInstructions = make([][]RouteInstruction, len(d.RouteInstructions))
		for i, leg := range d.RouteInstructions {
			out.RouteInstructions[i] = append([]RouteInstruction(nil), leg...)
		}
	}
	if d.RouteSegmentGeometries != nil {
		out.RouteSegmentGeometries = append([]string(nil), d.RouteSegmentGeometries...)
	}
	return out
}

// Clone returns a deep copy of the destination.
func (d Destination) Clone() Destination {
	out := d
	out.Costs = append([]CostItem(nil), d.Costs...)
	return out
}

func cloneDestinations(in []Destination) []Destination {
	if in == nil {
		return nil
	}
	out := make([]Destination, len(in))
	for i, d := range in {
		out[i] = d.Clone()
	}
	return out
}
