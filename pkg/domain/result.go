package domain

// Record is the bookkeeping accumulated by one search run, keyed by State.Key.
// The engine hands it over to NewResult and never touches it again.
type Record[S any] struct {
	// G holds the best known cost from the start for every discovered state.
	G map[string]float64
	// H holds the memoized heuristic estimate for every discovered state.
	H map[string]float64
	// Parent holds the shortest-path tree edges (child -> parent).
	Parent map[string]string
	// Visited holds the rank at which each state was popped as current.
	Visited map[string]int
	// States holds the first instance seen for every discovered key.
	States map[string]S
	// Order lists discovered keys in first-discovery order.
	Order []string
}

// Result is the outcome of a successful search.
// It is immutable: accessors return copies or scalar values only.
type Result[S State[S]] struct {
	root     S
	goal     S
	path     []S
	onPath   map[string]int
	steps    int
	stepCost float64
	rec      Record[S]
}

// NewResult freezes a search record into a Result.
// path must run from root to goal and be contiguous under rec.Parent.
func NewResult[S State[S]](root, goal S, path []S, steps int, stepCost float64, rec Record[S]) *Result[S] {
	onPath := make(map[string]int, len(path))
	for i, s := range path {
		onPath[s.Key()] = i
	}
	return &Result[S]{
		root:     root,
		goal:     goal,
		path:     path,
		onPath:   onPath,
		steps:    steps,
		stepCost: stepCost,
		rec:      rec,
	}
}

// Root returns the start state of the search.
func (r *Result[S]) Root() S { return r.root }

// Goal returns the goal state as it was reached.
func (r *Result[S]) Goal() S { return r.goal }

// Path returns the states from root to goal, both included.
func (r *Result[S]) Path() []S {
	out := make([]S, len(r.path))
	copy(out, r.path)
	return out
}

// Steps returns the number of expansions performed before the goal was popped.
func (r *Result[S]) Steps() int { return r.steps }

// StepCost returns the uniform edge cost used by the run.
func (r *Result[S]) StepCost() float64 { return r.stepCost }

// Cost returns the g-score of the goal.
func (r *Result[S]) Cost() float64 { return r.rec.G[r.goal.Key()] }

// Expanded returns the number of states popped as current, goal included.
func (r *Result[S]) Expanded() int { return len(r.rec.Visited) }

// Len returns the number of distinct states discovered.
func (r *Result[S]) Len() int { return len(r.rec.Order) }

// G returns the best known cost from the root to s.
func (r *Result[S]) G(s S) (float64, bool) {
	g, ok := r.rec.G[s.Key()]
	return g, ok
}

// H returns the memoized heuristic estimate of s.
func (r *Result[S]) H(s S) (float64, bool) {
	h, ok := r.rec.H[s.Key()]
	return h, ok
}

// F returns g + h for s.
func (r *Result[S]) F(s S) (float64, bool) {
	g, okG := r.G(s)
	h, okH := r.H(s)
	if !okG || !okH {
		return 0, false
	}
	return g + h, true
}

// Parent returns the predecessor of s in the shortest-path tree.
// The root has no parent.
func (r *Result[S]) Parent(s S) (S, bool) {
	var zero S
	pk, ok := r.rec.Parent[s.Key()]
	if !ok {
		return zero, false
	}
	return r.State(pk)
}

// Rank returns the order in which s was popped as current.
func (r *Result[S]) Rank(s S) (int, bool) {
	rank, ok := r.rec.Visited[s.Key()]
	return rank, ok
}

// Visited reports whether s was popped as current.
func (r *Result[S]) Visited(s S) bool {
	_, ok := r.rec.Visited[s.Key()]
	return ok
}

// Discovered reports whether s was ever added to the frontier.
func (r *Result[S]) Discovered(s S) bool {
	_, ok := r.rec.G[s.Key()]
	return ok
}

// OnPath reports whether s belongs to the returned path.
func (r *Result[S]) OnPath(s S) bool {
	_, ok := r.onPath[s.Key()]
	return ok
}

// State returns the state recorded under key.
func (r *Result[S]) State(key string) (S, bool) {
	s, ok := r.rec.States[key]
	return s, ok
}

// VisitOrder returns the expanded states sorted by rank.
func (r *Result[S]) VisitOrder() []S {
	out := make([]S, len(r.rec.Visited))
	for key, rank := range r.rec.Visited {
		out[rank] = r.rec.States[key]
	}
	return out
}

// DiscoveryOrder returns every discovered state in first-discovery order.
func (r *Result[S]) DiscoveryOrder() []S {
	out := make([]S, 0, len(r.rec.Order))
	for _, key := range r.rec.Order {
		out = append(out, r.rec.States[key])
	}
	return out
}
