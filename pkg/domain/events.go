package domain

import (
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventSearchStart  EventType = "search_start"
	EventStateExpand  EventType = "state_expand"
	EventStateRelax   EventType = "state_relax"
	EventSearchFinish EventType = "search_finish"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// SearchEvent is emitted once, before the first pop.
type SearchEvent struct {
	EventBase
	StartKey string  `json:"start_key"`
	GoalKey  string  `json:"goal_key"`
	StepCost float64 `json:"step_cost"`
}

// ExpandEvent is emitted every time a state is popped as current.
type ExpandEvent struct {
	EventBase
	Key          string  `json:"key"`
	Rank         int     `json:"rank"`
	G            float64 `json:"g"`
	H            float64 `json:"h"`
	FrontierSize int     `json:"frontier_size"`
}

// RelaxEvent is emitted when a state is discovered or reached through a
// strictly cheaper path.
type RelaxEvent struct {
	EventBase
	Key       string  `json:"key"`
	ParentKey string  `json:"parent_key"`
	G         float64 `json:"g"`
	H         float64 `json:"h"`
	// Improved is false on first discovery.
	Improved bool `json:"improved"`
	// Requeued is false when the state was already expanded; its scores and
	// parent change but it is not pushed back on the frontier.
	Requeued bool `json:"requeued"`
}

// FinishEvent is emitted once, when the search terminates.
type FinishEvent struct {
	EventBase
	Found      bool          `json:"found"`
	Expanded   int           `json:"expanded"`
	Discovered int           `json:"discovered"`
	Cost       float64       `json:"cost,omitempty"`
	PathLength int           `json:"path_length,omitempty"`
	Duration   time.Duration `json:"duration"`
}

// SearchHooks defines callbacks for engine observability.
// Any of them may be nil. They run inline, on the searching goroutine.
type SearchHooks struct {
	OnStart  func(*SearchEvent)
	OnExpand func(*ExpandEvent)
	OnRelax  func(*RelaxEvent)
	OnFinish func(*FinishEvent)
}

// ChainHooks combines hook sets. Callbacks run in argument order; nil ones
// are skipped.
func ChainHooks(hooks ...SearchHooks) SearchHooks {
	var out SearchHooks
	for _, h := range hooks {
		out.OnStart = chain(out.OnStart, h.OnStart)
		out.OnExpand = chain(out.OnExpand, h.OnExpand)
		out.OnRelax = chain(out.OnRelax, h.OnRelax)
		out.OnFinish = chain(out.OnFinish, h.OnFinish)
	}
	return out
}

func chain[E any](first, next func(*E)) func(*E) {
	switch {
	case first == nil:
		return next
	case next == nil:
		return first
	}
	return func(e *E) {
		first(e)
		next(e)
	}
}
