package currency

import (
	"context"
	"fmt"
	"sync"

	"github.com/planora/planora/pkg/domain"
	"github.com/planora/planora/pkg/ports"
)

// Pipeline converts every cost item of a day list into a target display
// currency, fanning the conversion calls out in parallel.
type Pipeline struct {
	converter ports.Converter
}

// NewPipeline creates a pipeline over the given rate converter.
func NewPipeline(converter ports.Converter) *Pipeline {
	return &Pipeline{converter: converter}
}

// ConvertDays returns a fully-converted deep copy of days for display in
// the target currency. Items already in the target currency take
// OriginalAmount verbatim; everything else converts each bound of the
// parsed original through the rate service. Any conversion failure fails
// the whole snapshot and the input is left untouched.
func (p *Pipeline) ConvertDays(ctx context.Context, days []domain.DayPlan, target string) ([]domain.DayPlan, error) {
	out := make([]domain.DayPlan, len(days))
	for i, d := range days {
		out[i] = d.Clone()
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for di := range out {
		for si := range out[di].Destinations {
			for ci := range out[di].Destinations[si].Costs {
				wg.Add(1)
				go func(cost *domain.CostItem) {
					defer wg.Done()
					converted, err := p.convertCost(ctx, *cost, target)
					if err != nil {
						mu.Lock()
						if firstErr == nil {
							firstErr = err
						}
						mu.Unlock()
						return
					}
					cost.Amount = converted
				}(&out[di].Destinations[si].Costs[ci])
			}
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

// convertCost derives the display amount for one cost item. Both bounds of
// a range convert independently and reassemble as "min-max".
func (p *Pipeline) convertCost(ctx context.Context, cost domain.CostItem, target string) (string, error) {
	source := cost.OriginalCurrency
	if source == "" {
		source = target
	}
	if source == target {
		return cost.OriginalAmount, nil
	}

	parsed := ParseAmount(cost.OriginalAmount)

	lo, err := p.converter.Convert(ctx, parsed.Min, source, target)
	if err != nil {
		return "", fmt.Errorf("convert %s %s to %s: %w", cost.OriginalAmount, source, target, err)
	}
	if !parsed.IsRange {
		return formatBound(lo), nil
	}

	hi, err := p.converter.Convert(ctx, parsed.Max, source, target)
	if err != nil {
		return "", fmt.Errorf("convert %s %s to %s: %w", cost.OriginalAmount, source, target, err)
	}
	return Amount{Min: lo, Max: hi, IsRange: true}.String(), nil
}
