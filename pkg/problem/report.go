package problem

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/render"
)

// Report summarises one solved (or unsolvable) problem.
type Report struct {
	Name       string        `json:"name"`
	Kind       string        `json:"kind"`
	Heuristic  string        `json:"heuristic"`
	StepCost   float64       `json:"step_cost"`
	Found      bool          `json:"found"`
	Cost       float64       `json:"cost"`
	Steps      int           `json:"steps"`
	Expanded   int           `json:"expanded"`
	Discovered int           `json:"discovered"`
	Duration   time.Duration `json:"duration"`
	// Path holds the folded label body of every state from start to goal.
	Path []string     `json:"path,omitempty"`
	Tree *render.Tree `json:"tree,omitempty"`
}

// Moves returns the number of moves on the path.
func (r *Report) Moves() int {
	if len(r.Path) == 0 {
		return 0
	}
	return len(r.Path) - 1
}

// solve runs one typed search and fills a report. A missing path is an
// outcome, not an error. The search is driven step by step so that
// cfg.Context and cfg.MaxExpansions can stop it.
func solve[S domain.State[S]](d Definition, heuristic string, cfg Config, start, goal S, h domain.Heuristic[S], ropts render.Options[S], describe func(S) string) (*Report, error) {
	rep := &Report{
		Name:      d.Name,
		Kind:      d.Kind,
		Heuristic: heuristic,
		StepCost:  d.Cost(),
	}

	var finish domain.FinishEvent
	hooks := domain.ChainHooks(cfg.Hooks, domain.SearchHooks{
		OnFinish: func(e *domain.FinishEvent) { finish = *e },
	})

	opts := []arbor.Option{arbor.WithStepCost(rep.StepCost), arbor.WithHooks(hooks)}
	if cfg.Logger != nil {
		opts = append(opts, arbor.WithLogger(cfg.Logger.With("problem", d.Name)))
	}

	res, err := run(cfg, start, goal, h, opts)
	rep.Expanded = finish.Expanded
	rep.Discovered = finish.Discovered
	rep.Duration = finish.Duration
	if errors.Is(err, domain.ErrNoPath) {
		return rep, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.Name, err)
	}

	rep.Found = true
	rep.Cost = res.Cost()
	rep.Steps = res.Steps()
	for _, s := range res.Path() {
		rep.Path = append(rep.Path, render.FoldLabel(describe(s)))
	}

	rep.Tree, err = render.Build(res, ropts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.Name, err)
	}
	return rep, nil
}

func run[S domain.State[S]](cfg Config, start, goal S, h domain.Heuristic[S], opts []arbor.Option) (*domain.Result[S], error) {
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := arbor.NewStepper(start, goal, h, opts...)
	if err != nil {
		return nil, err
	}
	expanded := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("search aborted after %d expansions: %w", expanded, err)
		}
		if cfg.MaxExpansions > 0 && expanded >= cfg.MaxExpansions {
			return nil, fmt.Errorf("%w: %d states expanded", ErrExpansionLimit, expanded)
		}
		snap, err := st.Step()
		if err != nil {
			return nil, err
		}
		if snap.Done {
			return snap.Result, nil
		}
		expanded = snap.Rank + 1
	}
}

func unknownHeuristic(d Definition, k Kind) error {
	return fmt.Errorf("%w: %q for kind %s (known: %v)", ErrUnknownHeuristic, d.Heuristic, k.Name(), k.Heuristics())
}

func wrapInvalid(d Definition, field string, err error) error {
	return fmt.Errorf("%w: %s: %s: %w", ErrInvalidDefinition, d.Name, field, err)
}
