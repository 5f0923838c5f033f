package runtime

import (
	"io"
	"log/slog"

	"github.com/aretw0/arbor/pkg/domain"
)

// Config holds the knobs of a single search run.
type Config struct {
	StepCost float64
	Logger   *slog.Logger
	Hooks    domain.SearchHooks
}

// Option defines a functional option for configuring a search run.
type Option func(*Config)

// WithStepCost sets the uniform cost of every edge (default: 1).
func WithStepCost(cost float64) Option {
	return func(c *Config) {
		c.StepCost = cost
	}
}

// WithLogger sets a custom structured logger for the run.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.SearchHooks) Option {
	return func(c *Config) {
		c.Hooks = hooks
	}
}

func newConfig(opts []Option) Config {
	cfg := Config{
		StepCost: 1,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
