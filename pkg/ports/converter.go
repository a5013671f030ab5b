package ports

import "context"

// Converter converts a numeric amount between currencies. One call per
// bound of a cost range; the engine never converts an already-converted
// amount.
type Converter interface {
	Convert(ctx context.Context, amount float64, source, target string) (float64, error)
}
