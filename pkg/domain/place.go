package domain

import (
	"strings"

	"github.com/google/uuid"
)

// GeoCoordinates is a bare latitude/longitude pair as place services report
// it.
type GeoCoordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Place is the record shape returned by the external place lookup services
// (search-by-text, nearby-by-type, get-by-id). Names may be localized;
// Price is free-form and may carry a currency symbol.
type Place struct {
	PlaceID     string         `json:"place_id" mapstructure:"place_id"`
	Title       string         `json:"title" mapstructure:"title"`
	NameEN      string         `json:"en_name" mapstructure:"en_name"`
	NameVI      string         `json:"vi_name" mapstructure:"vi_name"`
	Address     string         `json:"address" mapstructure:"address"`
	Price       string         `json:"price" mapstructure:"price"`
	Coordinates GeoCoordinates `json:"gps_coordinates" mapstructure:"gps_coordinates"`
}

// DetectCurrency inspects a price string's leading symbol and returns the
// currency it implies plus the price with the symbol stripped. Prices with
// no recognized symbol keep the fallback currency.
func DetectCurrency(price, fallback string) (currency, normalized string) {
	currency = fallback
	trimmed := strings.TrimSpace(price)
	if trimmed == "" {
		return currency, ""
	}
	switch {
	case strings.HasPrefix(trimmed, "₫"):
		currency = CurrencyVND
	case strings.HasPrefix(trimmed, "$"):
		currency = CurrencyUSD
	}
	normalized = strings.TrimSpace(strings.TrimLeftFunc(trimmed, func(r rune) bool {
		return (r < '0' || r > '9') && r != '-'
	}))
	return currency, normalized
}

// MapPlace converts a place record into a Destination with a single seed
// cost item. The cost's original currency is detected from the price
// symbol, falling back to the display currency; lang selects the localized
// name ("vi" for Vietnamese, anything else English).
func MapPlace(p Place, displayCurrency, lang string) Destination {
	currency, price := DetectCurrency(p.Price, displayCurrency)

	name := p.NameEN
	if strings.EqualFold(lang, "vi") {
		name = p.NameVI
	}
	if name == "" {
		name = p.Title
	}

	id := p.PlaceID
	if id == "" {
		id = uuid.NewString()
	}

	return Destination{
		ID:      id,
		Name:    name,
		Address: p.Address,
		Costs: []CostItem{{
			ID:               uuid.NewString(),
			Amount:           price,
			OriginalAmount:   price,
			OriginalCurrency: currency,
		}},
		Latitude:  p.Coordinates.Latitude,
		Longitude: p.Coordinates.Longitude,
	}
}
