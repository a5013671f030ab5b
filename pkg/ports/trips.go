package ports

import "context"

// Wire schema of the trip persistence service. Destinations group under
// days by day_number; costs keep originalAmount/originalCurrency so the
// write-once source of truth survives a round trip.

// CostRecord is one cost line on the wire.
type CostRecord struct {
	Amount           string `json:"amount"`
	OriginalAmount   string `json:"originalAmount"`
	OriginalCurrency string `json:"originalCurrency"`
	Detail           string `json:"detail"`
}

// DestinationRecord is one destination on the wire. Order is the index
// within its day.
type DestinationRecord struct {
	Name      string       `json:"name"`
	Address   string       `json:"address"`
	Latitude  float64      `json:"latitude"`
	Longitude float64      `json:"longitude"`
	Order     int          `json:"order"`
	Costs     []CostRecord `json:"costs"`
}

// DayRecord is one day on the wire.
type DayRecord struct {
	DayNumber    int                 `json:"day_number"`
	Destinations []DestinationRecord `json:"destinations"`
}

// TripRecord is a whole trip on the wire. ID is assigned by the service on
// create and empty before then.
type TripRecord struct {
	ID        string      `json:"id,omitempty"`
	Name      string      `json:"name"`
	Members   int         `json:"members,omitempty"`
	StartDate string      `json:"start_date,omitempty"`
	EndDate   string      `json:"end_date,omitempty"`
	Currency  string      `json:"currency"`
	Days      []DayRecord `json:"days"`
}

// TripService is the external trip persistence service. Every call carries
// the caller's bearer token explicitly; there is no ambient session state.
type TripService interface {
	// Create stores a new trip and returns it with the assigned id.
	Create(ctx context.Context, token string, trip TripRecord) (TripRecord, error)

	// Update overwrites an existing trip by id.
	Update(ctx context.Context, token string, trip TripRecord) (TripRecord, error)

	// Get fetches one trip by id. Returns domain.ErrTripNotFound when the
	// id is unknown.
	Get(ctx context.Context, token, id string) (TripRecord, error)

	// Delete removes a trip by id.
	Delete(ctx context.Context, token, id string) error

	// List returns all trips owned by the token's user.
	List(ctx context.Context, token string) ([]TripRecord, error)
}
