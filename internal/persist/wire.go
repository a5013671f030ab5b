package persist

import (
	"time"

	"github.com/planora/planora/pkg/domain"
	"github.com/planora/planora/pkg/ports"
)

const dateLayout = "2006-01-02"

// Metadata is the trip-level extra state the gate persists alongside the
// document: member count, date range and display currency.
type Metadata struct {
	Members   int
	StartDate *time.Time
	EndDate   *time.Time
	Currency  string
}

// ToWire maps the in-memory plan onto the persistence service's schema:
// days keyed by day_number, destinations carrying their order index, costs
// carrying the write-once originals.
func ToWire(plan domain.TripPlan, meta Metadata) ports.TripRecord {
	rec := ports.TripRecord{
		Name:     plan.Name,
		Members:  meta.Members,
		Currency: meta.Currency,
		Days:     make([]ports.DayRecord, len(plan.Days)),
	}
	if meta.StartDate != nil {
		rec.StartDate = meta.StartDate.Format(dateLayout)
	}
	if meta.EndDate != nil {
		rec.EndDate = meta.EndDate.Format(dateLayout)
	}

	for i, day := range plan.Days {
		wd := ports.DayRecord{
			DayNumber:    day.DayNumber,
			Destinations: make([]ports.DestinationRecord, len(day.Destinations)),
		}
		for j, dest := range day.Destinations {
			wdst := ports.DestinationRecord{
				Name:      dest.Name,
				Address:   dest.Address,
				Latitude:  dest.Latitude,
				Longitude: dest.Longitude,
				Order:     j,
				Costs:     make([]ports.CostRecord, len(dest.Costs)),
			}
			for k, cost := range dest.Costs {
				wdst.Costs[k] = ports.CostRecord{
					Amount:           cost.Amount,
					OriginalAmount:   cost.OriginalAmount,
					OriginalCurrency: orCurrency(cost.OriginalCurrency, meta.Currency),
					Detail:           cost.Detail,
				}
			}
			wd.Destinations[j] = wdst
		}
		rec.Days[i] = wd
	}
	return rec
}

func orCurrency(currency, fallback string) string {
	if currency == "" {
		return fallback
	}
	return currency
}
