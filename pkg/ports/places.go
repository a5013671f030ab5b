package ports

import (
	"context"

	"github.com/planora/planora/pkg/domain"
)

// PlaceLookup is the external place directory: text search, nearby search
// by category, and detail lookup by id. Mapping results into Destination
// shape happens in pkg/domain, outside this interface.
type PlaceLookup interface {
	Search(ctx context.Context, query string) ([]domain.Place, error)
	Nearby(ctx context.Context, placeType string, lat, lon float64, radiusM int) ([]domain.Place, error)
	ByID(ctx context.Context, placeID string) (*domain.Place, error)
}
