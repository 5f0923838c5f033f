package blocks

import "github.com/aretw0/arbor/pkg/domain"

// Term is one weighted adjacency rewarded by AdjacencyHeuristic.
type Term struct {
	Upper  string  `mapstructure:"upper" json:"upper" yaml:"upper"`
	Lower  string  `mapstructure:"lower" json:"lower" yaml:"lower"`
	Weight float64 `mapstructure:"weight" json:"weight" yaml:"weight"`
}

// AdjacencyHeuristic builds a heuristic that starts from base and, for every
// term, subtracts Weight when Upper sits on Lower and adds Weight otherwise.
// The goal is ignored: the terms describe it.
//
// Such heuristics are generally neither admissible nor consistent.
func AdjacencyHeuristic(base float64, terms ...Term) domain.Heuristic[World] {
	own := append([]Term(nil), terms...)
	return func(state, _ World) float64 {
		h := base
		for _, t := range own {
			if state.IsAbove(t.Upper, t.Lower) {
				h -= t.Weight
			} else {
				h += t.Weight
			}
		}
		return h
	}
}

// Misplaced counts the blocks whose support differs from the goal: a block
// held while the goal holds another, or a block resting on something else
// than in goal. Each misplaced
// block needs at least one move, so it never overestimates unit-cost plans.
func Misplaced(state, goal World) float64 {
	below := supports(goal)
	n := 0
	if state.arm != "" && state.arm != goal.arm {
		n++
	}
	for _, stack := range state.stacks {
		for i, block := range stack {
			lower := Table
			if i+1 < len(stack) {
				lower = stack[i+1]
			}
			if want, ok := below[block]; !ok || want != lower {
				n++
			}
		}
	}
	return float64(n)
}

func supports(w World) map[string]string {
	below := make(map[string]string, w.Size())
	for _, stack := range w.stacks {
		for i, block := range stack {
			if i+1 < len(stack) {
				below[block] = stack[i+1]
			} else {
				below[block] = Table
			}
		}
	}
	return below
}

// Heuristic1 is the weighted estimate for stacking A on B on C:
// base 6, with weights 1, 2 and 3 for A/B, B/C and C on the table.
func Heuristic1() domain.Heuristic[World] {
	return AdjacencyHeuristic(6,
		Term{Upper: "A", Lower: "B", Weight: 1},
		Term{Upper: "B", Lower: "C", Weight: 2},
		Term{Upper: "C", Lower: Table, Weight: 3},
	)
}

// Heuristic2 is the unweighted estimate for stacking A on B on C.
func Heuristic2() domain.Heuristic[World] {
	return AdjacencyHeuristic(3,
		Term{Upper: "A", Lower: "B", Weight: 1},
		Term{Upper: "B", Lower: "C", Weight: 1},
		Term{Upper: "C", Lower: Table, Weight: 1},
	)
}
