package domain

// State is the capability a search domain must provide to the engine.
//
// Key is the canonical identity of the state: two states are logically equal
// if and only if their keys are equal. It must be derived from the state's
// content (never from pointer identity) and must not change once the state is
// built.
//
// Children returns the states reachable in one move. The returned values must
// be independent snapshots: mutating one of them (which a well-behaved domain
// never does) must not affect the receiver. Order matters only for
// tie-breaking between entries of equal f-score.
type State[S any] interface {
	Key() string
	Children() []S
}

// Heuristic estimates the remaining cost from state to goal.
// The engine treats it as a black box and calls it at most once per distinct
// state. Path optimality is only guaranteed when it is consistent. It must
// return a finite number: NaN leaves the frontier without a total order.
type Heuristic[S any] func(state, goal S) float64

// Zero is the null heuristic. With it, A* degenerates to uniform-cost search.
func Zero[S any](S, S) float64 { return 0 }

// Equal reports whether two states are logically equal.
func Equal[S State[S]](a, b S) bool {
	return a.Key() == b.Key()
}
