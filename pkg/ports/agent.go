package ports

import (
	"context"

	"github.com/planora/planora/pkg/command"
	"github.com/planora/planora/pkg/domain"
)

// Translator turns a free-text prompt into a structured command envelope,
// given the current plan for context. The engine consumes the result
// exactly like a direct UI command.
type Translator interface {
	Translate(ctx context.Context, plan domain.TripPlan, prompt string) (*command.Envelope, error)
}
