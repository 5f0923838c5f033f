// Package batch solves independent problems concurrently on a bounded worker
// pool. Each search still runs sequentially on one worker.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/aretw0/arbor/pkg/problem"
	"github.com/panjf2000/ants/v2"
)

// Outcome is the result of one problem, at the index it was submitted with.
type Outcome struct {
	Definition problem.Definition
	Report     *problem.Report
	Err        error
}

// Solver dispatches problems to a worker pool.
type Solver struct {
	pool     *ants.Pool
	registry *problem.Registry
	config   problem.Config
	logger   *slog.Logger
}

// Option configures a Solver.
type Option func(*Solver) error

// WithPoolSize sets the number of concurrent searches.
// Default is runtime.NumCPU(), with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *Solver) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if s.pool != nil {
			s.pool.Release()
		}
		s.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Solver) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithRegistry sets the kinds the solver knows about.
// Default is problem.DefaultRegistry().
func WithRegistry(reg *problem.Registry) Option {
	return func(s *Solver) error {
		if reg == nil {
			return errors.New("batch: nil registry")
		}
		s.registry = reg
		return nil
	}
}

// WithConfig sets the run options passed to every problem. Hooks must be
// safe for concurrent use.
func WithConfig(cfg problem.Config) Option {
	return func(s *Solver) error {
		s.config = cfg
		return nil
	}
}

// NewSolver creates a solver. Call Release when done.
func NewSolver(opts ...Option) (*Solver, error) {
	poolSize := runtime.NumCPU()
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	s := &Solver{
		pool:     pool,
		registry: problem.DefaultRegistry(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if optErr := opt(s); optErr != nil {
			s.Release()
			return nil, optErr
		}
	}
	if s.config.Logger == nil {
		s.config.Logger = s.logger
	}
	return s, nil
}

// SolveAll solves every definition and returns the outcomes in input order,
// along with the joined per-problem errors. Cancelling ctx stops running
// searches between expansions; they and the problems not yet started fail
// with the context error.
func (s *Solver) SolveAll(ctx context.Context, defs []problem.Definition) ([]Outcome, error) {
	outcomes := make([]Outcome, len(defs))
	var wg sync.WaitGroup
	cfg := s.config
	cfg.Context = ctx

	for i, d := range defs {
		outcomes[i].Definition = d
		if err := ctx.Err(); err != nil {
			outcomes[i].Err = err
			continue
		}

		wg.Add(1)
		submitErr := s.pool.Submit(func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				outcomes[i].Err = err
				return
			}
			rep, err := s.registry.Solve(d, cfg)
			outcomes[i].Report = rep
			outcomes[i].Err = err
			if err != nil {
				s.logger.Warn("problem failed", "problem", d.Name, "error", err)
				return
			}
			s.logger.Debug("problem solved", "problem", d.Name, "found", rep.Found, "cost", rep.Cost, "expanded", rep.Expanded)
		})
		if submitErr != nil {
			wg.Done()
			outcomes[i].Err = fmt.Errorf("failed to submit %s: %w", d.Name, submitErr)
		}
	}
	wg.Wait()

	var errs []error
	for _, o := range outcomes {
		if o.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", o.Definition.Name, o.Err))
		}
	}
	return outcomes, errors.Join(errs...)
}

// Reports returns the reports of the successful outcomes, in order.
func Reports(outcomes []Outcome) []*problem.Report {
	reports := make([]*problem.Report, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Report != nil {
			reports = append(reports, o.Report)
		}
	}
	return reports
}

// Release frees the worker pool.
func (s *Solver) Release() {
	if s.pool != nil {
		s.pool.Release()
	}
}
