package schedule

import (
	"context"

	"github.com/kiri-thornalley/virtual-assistant/internal/model"
)

// UseCase defines the business logic interface for the scheduling engine.
type UseCase interface {
	// Run executes one full scheduling pass: buffer expansion, free-slot
	// derivation, prioritization, weather gating, and slot assignment.
	// It performs no I/O and is deterministic given its input.
	Run(ctx context.Context, sc model.Scope, input RunInput) (RunOutput, error)
}
