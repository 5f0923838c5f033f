package blocks

import (
	"testing"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keysOf(worlds []World) []string {
	out := make([]string, len(worlds))
	for i, w := range worlds {
		out[i] = w.Key()
	}
	return out
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name      string
		arm       string
		stacks    [][]string
		maxStacks int
	}{
		{"no stacks", "", nil, 0},
		{"too many stacks", "", [][]string{{"A"}, {"B"}}, 1},
		{"empty name", "", [][]string{{""}}, 1},
		{"reserved character", "", [][]string{{"A,B"}}, 1},
		{"duplicate in stacks", "", [][]string{{"A"}, {"A"}}, 2},
		{"duplicate with arm", "A", [][]string{{"A"}}, 1},
		{"reserved arm", "A|", nil, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.arm, tt.stacks, tt.maxStacks)
			assert.ErrorIs(t, err, ErrInvalidWorld)
		})
	}
	assert.Panics(t, func() { MustNew("", nil, 0) })
}

func TestWorld_KeyIgnoresStackOrder(t *testing.T) {
	a := MustNew("", [][]string{{"C", "A"}, {"B"}}, 3)
	b := MustNew("", [][]string{{}, {"B"}, {"C", "A"}}, 3)
	c := MustNew("", [][]string{{"A", "C"}, {"B"}}, 3)
	d := MustNew("B", [][]string{{"C", "A"}}, 3)

	assert.Equal(t, "|;B;C,A", a.Key())
	assert.True(t, domain.Equal(a, b))
	assert.False(t, domain.Equal(a, c))
	assert.Equal(t, "B|;;C,A", d.Key())
}

func TestWorld_Predicates(t *testing.T) {
	w := MustNew("D", [][]string{{"C", "A"}, {"B"}}, 3)

	assert.Equal(t, "D", w.Arm())
	assert.Equal(t, 3, w.MaxStacks())
	assert.Equal(t, 4, w.Size())
	assert.Equal(t, []string{"C", "B"}, w.FreeBlocks())

	assert.True(t, w.IsAbove("C", "A"))
	assert.True(t, w.IsAbove("A", Table))
	assert.True(t, w.IsAbove("B", Table))
	assert.False(t, w.IsAbove("A", "C"))
	assert.False(t, w.IsAbove("D", Table), "held block rests on nothing")

	assert.True(t, w.IsFree("C"))
	assert.False(t, w.IsFree("A"))
	assert.False(t, w.IsFree("D"))

	assert.True(t, w.OnTable("A"))
	assert.True(t, w.OnTable("B"))
	assert.False(t, w.OnTable("C"))
	assert.False(t, w.OnTable("D"))

	stacks := w.Stacks()
	stacks[0][0] = "Z"
	assert.True(t, w.IsFree("C"), "Stacks returns a copy")
}

func TestWorld_Children(t *testing.T) {
	free := MustNew("", [][]string{{"C", "A"}, {"B"}}, 3)
	assert.Equal(t, []string{
		"C|;A;B", // pick C
		"B|;;C,A", // pick B
	}, keysOf(free.Children()))

	held := MustNew("C", [][]string{{"A"}, {"B"}}, 3)
	children := held.Children()
	require.Len(t, children, 3)
	assert.Equal(t, []string{"|;B;C,A", "|;A;C,B", "|A;B;C"}, keysOf(children))
	for _, c := range children {
		assert.Equal(t, "", c.Arm())
		assert.Equal(t, 3, c.MaxStacks())
	}

	// The parent is untouched.
	assert.Equal(t, "C|;A;B", held.Key())
	assert.Equal(t, [][]string{{"A"}, {"B"}, nil}, held.Stacks())
}

func TestWorld_String(t *testing.T) {
	w := MustNew("", [][]string{{"C", "A"}, {"B"}}, 3)
	assert.Equal(t, "Arm: -\nStack #0: A C _\nStack #1: B _ _\nStack #2: _ _ _", w.String())

	held := MustNew("C", [][]string{{"A"}}, 2)
	assert.Equal(t, "Arm: C\nStack #0: A _\nStack #1: _ _", held.String())
}

func TestHeuristics(t *testing.T) {
	start := MustNew("", [][]string{{"C", "A"}, {"B"}}, 3)
	goal := MustNew("", [][]string{{"A", "B", "C"}}, 3)

	// A/B no, B/C no, C on table no: 6 + 1 + 2 + 3.
	assert.Equal(t, 12.0, Heuristic1()(start, goal))
	assert.Equal(t, 0.0, Heuristic1()(goal, goal))
	assert.Equal(t, 6.0, Heuristic2()(start, goal))
	assert.Equal(t, 0.0, Heuristic2()(goal, goal))

	// C on A, A on the table and B on the table all differ from the goal.
	assert.Equal(t, 3.0, Misplaced(start, goal))
	assert.Equal(t, 0.0, Misplaced(goal, goal))
	held := MustNew("A", [][]string{{"B", "C"}}, 3)
	assert.Equal(t, 1.0, Misplaced(held, goal))
}

func TestAdjacencyHeuristic_CopiesTerms(t *testing.T) {
	terms := []Term{{Upper: "A", Lower: Table, Weight: 2}}
	h := AdjacencyHeuristic(1, terms...)
	terms[0].Weight = 100

	w := MustNew("", [][]string{{"A"}}, 1)
	assert.Equal(t, -1.0, h(w, w))
}

func TestSearch_ThreeBlocks(t *testing.T) {
	start := MustNew("", [][]string{{"C", "A"}, {"B"}}, 3)
	goal := MustNew("", [][]string{{"A", "B", "C"}}, 3)

	heuristics := map[string]domain.Heuristic[World]{
		"heuristic1": Heuristic1(),
		"heuristic2": Heuristic2(),
		"misplaced":  Misplaced,
		"zero":       domain.Zero[World],
	}
	for name, h := range heuristics {
		t.Run(name, func(t *testing.T) {
			res, err := arbor.Search(start, goal, h)
			require.NoError(t, err)
			// Unstack C, then stack B on C and A on B: six arm moves.
			assert.Equal(t, 6.0, res.Cost())
			assert.Len(t, res.Path(), 7)
			assert.Equal(t, goal.Key(), res.Goal().Key())
		})
	}
}

func TestSearch_StepCosts(t *testing.T) {
	start := MustNew("", [][]string{{"A"}, {"B"}, {"C"}}, 3)
	goal := MustNew("", [][]string{{"A", "B", "C"}}, 3)

	for _, cost := range []float64{1, 0.1, 2} {
		res, err := arbor.Search(start, goal, Heuristic2(), arbor.WithStepCost(cost))
		require.NoError(t, err)
		assert.Len(t, res.Path(), 5)
		assert.InDelta(t, 4*cost, res.Cost(), 1e-9)
	}
}

func TestLabelAndStyle(t *testing.T) {
	start := MustNew("", [][]string{{"C", "A"}, {"B"}}, 3)
	goal := MustNew("", [][]string{{"A", "B", "C"}}, 3)
	res, err := arbor.Search(start, goal, Misplaced)
	require.NoError(t, err)

	assert.Equal(t, "#0\nf(n) = 3.0 + 0.0 = 3.0\n\nArm: -\nStack #0: A C _\nStack #1: B _ _\nStack #2: _ _ _", Label(start, res))
	assert.Equal(t, "red", Style(start, res)["color"])

	held := res.Path()[1]
	assert.Equal(t, "ellipse", Style(held, res)["shape"])
	assert.Equal(t, "red", Style(held, res)["color"])
}
