package arbor

import (
	"log/slog"

	"github.com/aretw0/arbor/internal/runtime"
	"github.com/aretw0/arbor/pkg/domain"
)

// Version is the current release of the arbor module.
const Version = "0.4.1"

// ErrNoPath is returned by Search when the goal cannot be reached.
var ErrNoPath = domain.ErrNoPath

// Option defines a functional option for configuring a search.
type Option = runtime.Option

// Stepper drives a search one expansion at a time, for debuggers and UIs.
type Stepper[S domain.State[S]] = runtime.Stepper[S]

// Snapshot is the per-step view returned by Stepper.Step.
type Snapshot[S domain.State[S]] = runtime.Snapshot[S]

// WithStepCost sets the uniform cost applied to every edge (default: 1).
// It must be non-negative.
func WithStepCost(cost float64) Option {
	return runtime.WithStepCost(cost)
}

// WithLogger sets a custom structured logger. Searches log at debug level only.
func WithLogger(logger *slog.Logger) Option {
	return runtime.WithLogger(logger)
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.SearchHooks) Option {
	return runtime.WithHooks(hooks)
}

// Search runs A* from start to goal.
//
// It returns a frozen Result when the goal is reached, or ErrNoPath when the
// frontier is exhausted. Panics raised by Children or by the heuristic are not
// recovered. Each call owns its own frontier and score maps, so independent
// searches may run concurrently.
func Search[S domain.State[S]](start, goal S, heuristic domain.Heuristic[S], opts ...Option) (*domain.Result[S], error) {
	return runtime.Search(start, goal, heuristic, opts...)
}

// NewStepper prepares a search without running it.
func NewStepper[S domain.State[S]](start, goal S, heuristic domain.Heuristic[S], opts ...Option) (*Stepper[S], error) {
	return runtime.NewStepper(start, goal, heuristic, opts...)
}
