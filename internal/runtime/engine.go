package runtime

import (
	"fmt"
	"math"
	"time"

	"github.com/aretw0/arbor/pkg/domain"
)

// Snapshot exposes the state of a search after one call to Stepper.Step.
type Snapshot[S domain.State[S]] struct {
	// Current is the state popped by this step (zero value once exhausted).
	Current S
	// Rank is the visit rank assigned to Current.
	Rank int
	// Step counts the expansions performed so far, goal pop excluded.
	Step int
	// FrontierSize is the number of entries left on the frontier, stale ones included.
	FrontierSize int
	// Discovered is the number of distinct states discovered so far.
	Discovered int
	Done       bool
	Found      bool
	// Result is set once the goal has been popped.
	Result *domain.Result[S]
}

// Stepper runs an A* search one expansion at a time.
//
// Closed states are never reopened: a cheaper path to an already expanded
// state updates its g-score and parent but does not push it back on the
// frontier. Returned paths are therefore optimal only when the heuristic is
// consistent, not merely admissible.
type Stepper[S domain.State[S]] struct {
	cfg       Config
	start     S
	goal      S
	goalKey   string
	heuristic domain.Heuristic[S]

	open frontier[S]
	rec  domain.Record[S]

	current   S
	rank      int
	steps     int
	done      bool
	found     bool
	result    *domain.Result[S]
	startedAt time.Time
}

// NewStepper seeds a search from start towards goal.
// The heuristic is evaluated once for the start state here.
func NewStepper[S domain.State[S]](start, goal S, heuristic domain.Heuristic[S], opts ...Option) (*Stepper[S], error) {
	cfg := newConfig(opts)
	if math.IsNaN(cfg.StepCost) || cfg.StepCost < 0 {
		return nil, fmt.Errorf("%w: got %v", domain.ErrInvalidStepCost, cfg.StepCost)
	}
	if heuristic == nil {
		return nil, domain.ErrNilHeuristic
	}

	startKey := start.Key()
	s := &Stepper[S]{
		cfg:       cfg,
		start:     start,
		goal:      goal,
		goalKey:   goal.Key(),
		heuristic: heuristic,
		rec: domain.Record[S]{
			G:       map[string]float64{startKey: 0},
			H:       map[string]float64{},
			Parent:  make(map[string]string),
			Visited: make(map[string]int),
			States:  map[string]S{startKey: start},
			Order:   []string{startKey},
		},
		rank:      -1,
		startedAt: time.Now(),
	}

	h := heuristic(start, goal)
	s.rec.H[startKey] = h
	s.open.push(h, startKey, start)

	cfg.Logger.Debug("search started", "start", startKey, "goal", s.goalKey, "step_cost", cfg.StepCost)
	if cfg.Hooks.OnStart != nil {
		cfg.Hooks.OnStart(&domain.SearchEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventSearchStart},
			StartKey:  startKey,
			GoalKey:   s.goalKey,
			StepCost:  cfg.StepCost,
		})
	}
	return s, nil
}

// Step pops the best frontier entry and expands it.
// It returns domain.ErrNoPath once the frontier is exhausted. Calling Step
// after the search is done returns the final snapshot again.
func (s *Stepper[S]) Step() (Snapshot[S], error) {
	if s.done {
		return s.snapshot(), s.doneErr()
	}

	for s.open.Len() > 0 {
		e := s.open.pop()
		if _, closed := s.rec.Visited[e.key]; closed {
			// Stale entry left behind by a relaxation.
			continue
		}

		s.rank = len(s.rec.Visited)
		s.rec.Visited[e.key] = s.rank
		s.current = e.state

		if s.cfg.Hooks.OnExpand != nil {
			s.cfg.Hooks.OnExpand(&domain.ExpandEvent{
				EventBase:    domain.EventBase{Timestamp: time.Now(), Type: domain.EventStateExpand},
				Key:          e.key,
				Rank:         s.rank,
				G:            s.rec.G[e.key],
				H:            s.rec.H[e.key],
				FrontierSize: s.open.Len(),
			})
		}

		if e.key == s.goalKey {
			path := buildPath(s.rec.Parent, s.rec.States, e.key)
			s.result = domain.NewResult(s.start, e.state, path, s.steps, s.cfg.StepCost, s.rec)
			s.finish(true)
			return s.snapshot(), nil
		}

		s.steps++
		s.expand(e.key, e.state)
		return s.snapshot(), nil
	}

	s.finish(false)
	return s.snapshot(), domain.ErrNoPath
}

// Done reports whether the search has terminated.
func (s *Stepper[S]) Done() bool { return s.done }

// Result returns the frozen result once the goal has been reached.
func (s *Stepper[S]) Result() (*domain.Result[S], bool) {
	return s.result, s.result != nil
}

func (s *Stepper[S]) expand(key string, current S) {
	gCurrent := s.rec.G[key]
	for _, child := range current.Children() {
		childKey := child.Key()
		if childKey == key {
			continue
		}

		tentative := gCurrent + s.cfg.StepCost
		known, seen := s.rec.G[childKey]
		if seen && tentative >= known {
			continue
		}

		h, memoized := s.rec.H[childKey]
		if !memoized {
			h = s.heuristic(child, s.goal)
			s.rec.H[childKey] = h
			s.rec.States[childKey] = child
			s.rec.Order = append(s.rec.Order, childKey)
		}
		s.rec.G[childKey] = tentative
		s.rec.Parent[childKey] = key

		_, closed := s.rec.Visited[childKey]
		if !closed {
			s.open.push(tentative+h, childKey, child)
		}

		if s.cfg.Hooks.OnRelax != nil {
			s.cfg.Hooks.OnRelax(&domain.RelaxEvent{
				EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStateRelax},
				Key:       childKey,
				ParentKey: key,
				G:         tentative,
				H:         h,
				Improved:  seen,
				Requeued:  !closed,
			})
		}
	}
}

func (s *Stepper[S]) finish(found bool) {
	s.done = true
	s.found = found

	ev := &domain.FinishEvent{
		EventBase:  domain.EventBase{Timestamp: time.Now(), Type: domain.EventSearchFinish},
		Found:      found,
		Expanded:   len(s.rec.Visited),
		Discovered: len(s.rec.Order),
		Duration:   time.Since(s.startedAt),
	}
	if found {
		ev.Cost = s.result.Cost()
		ev.PathLength = len(s.result.Path())
	}

	s.cfg.Logger.Debug("search finished",
		"found", found,
		"expanded", ev.Expanded,
		"discovered", ev.Discovered,
		"cost", ev.Cost,
		"duration", ev.Duration,
	)
	if s.cfg.Hooks.OnFinish != nil {
		s.cfg.Hooks.OnFinish(ev)
	}
}

func (s *Stepper[S]) doneErr() error {
	if s.found {
		return nil
	}
	return domain.ErrNoPath
}

func (s *Stepper[S]) snapshot() Snapshot[S] {
	return Snapshot[S]{
		Current:      s.current,
		Rank:         s.rank,
		Step:         s.steps,
		FrontierSize: s.open.Len(),
		Discovered:   len(s.rec.Order),
		Done:         s.done,
		Found:        s.found,
		Result:       s.result,
	}
}

// Search runs A* from start to goal until the goal is popped or the frontier
// is exhausted, in which case it returns domain.ErrNoPath.
func Search[S domain.State[S]](start, goal S, heuristic domain.Heuristic[S], opts ...Option) (*domain.Result[S], error) {
	stepper, err := NewStepper(start, goal, heuristic, opts...)
	if err != nil {
		return nil, err
	}
	for {
		snap, err := stepper.Step()
		if err != nil {
			return nil, err
		}
		if snap.Done {
			return snap.Result, nil
		}
	}
}
