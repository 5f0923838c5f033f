package runtime

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// node is a vertex of an explicit adjacency list.
type node struct {
	id    string
	edges map[string][]string
}

func (n node) Key() string { return n.id }

func (n node) Children() []node {
	out := make([]node, 0, len(n.edges[n.id]))
	for _, next := range n.edges[n.id] {
		out = append(out, node{id: next, edges: n.edges})
	}
	return out
}

func graph(edges map[string][]string) func(id string) node {
	return func(id string) node { return node{id: id, edges: edges} }
}

// table returns a heuristic reading estimates from a map, 0 when absent.
func table(h map[string]float64) domain.Heuristic[node] {
	return func(s, _ node) float64 { return h[s.id] }
}

// bfs returns the number of edges on a shortest path, or -1.
func bfs[S domain.State[S]](start, goal S) int {
	dist := map[string]int{start.Key(): 0}
	queue := []S{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.Key() == goal.Key() {
			return dist[cur.Key()]
		}
		for _, c := range cur.Children() {
			if _, ok := dist[c.Key()]; !ok {
				dist[c.Key()] = dist[cur.Key()] + 1
				queue = append(queue, c)
			}
		}
	}
	return -1
}

func randomGraph(r *rand.Rand, size, degree int) map[string][]string {
	edges := make(map[string][]string, size)
	for i := 0; i < size; i++ {
		from := fmt.Sprintf("v%d", i)
		for j := 0; j < degree; j++ {
			edges[from] = append(edges[from], fmt.Sprintf("v%d", r.Intn(size)))
		}
	}
	return edges
}

func keys[S domain.State[S]](states []S) []string {
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = s.Key()
	}
	return out
}

func assertValidPath[S domain.State[S]](t *testing.T, res *domain.Result[S], start, goal S) {
	t.Helper()
	path := res.Path()
	require.NotEmpty(t, path)
	assert.Equal(t, start.Key(), path[0].Key())
	assert.Equal(t, goal.Key(), path[len(path)-1].Key())
	for i := 1; i < len(path); i++ {
		found := false
		for _, c := range path[i-1].Children() {
			if c.Key() == path[i].Key() {
				found = true
				break
			}
		}
		assert.True(t, found, "step %d: %s is not a child of %s", i, path[i].Key(), path[i-1].Key())
		parent, ok := res.Parent(path[i])
		require.True(t, ok)
		assert.Equal(t, path[i-1].Key(), parent.Key())
	}
}

func TestSearch_ZeroHeuristicMatchesBFS(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for trial := 0; trial < 50; trial++ {
		at := graph(randomGraph(r, 40, 3))
		start, goal := at("v0"), at(fmt.Sprintf("v%d", 1+r.Intn(39)))

		want := bfs(start, goal)
		res, err := Search(start, goal, domain.Zero[node])
		if want < 0 {
			assert.ErrorIs(t, err, domain.ErrNoPath, "trial %d", trial)
			assert.Nil(t, res)
			continue
		}
		require.NoError(t, err, "trial %d", trial)
		assertValidPath(t, res, start, goal)
		assert.Equal(t, want+1, len(res.Path()), "trial %d", trial)
		assert.Equal(t, float64(want), res.Cost(), "trial %d", trial)
	}
}

func TestSearch_StepCost(t *testing.T) {
	at := graph(map[string][]string{"S": {"A"}, "A": {"B"}, "B": {"G"}})

	res, err := Search(at("S"), at("G"), domain.Zero[node], WithStepCost(2.5))
	require.NoError(t, err)
	assert.Equal(t, 7.5, res.Cost())
	assert.Equal(t, 2.5, res.StepCost())
	assert.Equal(t, len(res.Path()), int(res.Cost()/res.StepCost())+1)

	g, ok := res.G(at("B"))
	require.True(t, ok)
	assert.Equal(t, 5.0, g)
}

func TestSearch_ZeroStepCost(t *testing.T) {
	at := graph(map[string][]string{"S": {"A", "B"}, "A": {"G"}, "B": {"A"}})

	res, err := Search(at("S"), at("G"), domain.Zero[node], WithStepCost(0))
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Cost())
	assertValidPath(t, res, at("S"), at("G"))
}

func TestSearch_Deterministic(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	at := graph(randomGraph(r, 60, 4))
	h := func(s, _ node) float64 { return float64(len(s.id) % 2) }

	first, err := Search(at("v0"), at("v59"), h)
	if err != nil {
		require.ErrorIs(t, err, domain.ErrNoPath)
		t.Skip("random graph has no path")
	}
	for i := 0; i < 5; i++ {
		again, err := Search(at("v0"), at("v59"), h)
		require.NoError(t, err)
		assert.Equal(t, keys(first.Path()), keys(again.Path()))
		assert.Equal(t, keys(first.VisitOrder()), keys(again.VisitOrder()))
		assert.Equal(t, keys(first.DiscoveryOrder()), keys(again.DiscoveryOrder()))
		assert.Equal(t, first.Cost(), again.Cost())
	}
}

func TestSearch_RanksContiguous(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	at := graph(randomGraph(r, 50, 3))

	res, err := Search(at("v0"), at("v0"), domain.Zero[node])
	require.NoError(t, err)
	assert.Equal(t, 1, res.Expanded())

	for trial := 1; trial < 50; trial++ {
		res, err := Search(at("v0"), at(fmt.Sprintf("v%d", trial)), domain.Zero[node])
		if err != nil {
			continue
		}
		for i, s := range res.VisitOrder() {
			rank, ok := res.Rank(s)
			require.True(t, ok)
			assert.Equal(t, i, rank)
			assert.True(t, res.Visited(s))
			assert.True(t, res.Discovered(s))
			_, hasG := res.G(s)
			_, hasH := res.H(s)
			assert.True(t, hasG && hasH)
		}
		assert.Equal(t, res.Expanded(), len(res.VisitOrder()))
		assert.Equal(t, res.Expanded()-1, res.Steps())
	}
}

func TestSearch_StartIsGoal(t *testing.T) {
	at := graph(map[string][]string{"S": {"A"}})

	res, err := Search(at("S"), at("S"), table(map[string]float64{"S": 3}))
	require.NoError(t, err)
	assert.Equal(t, []string{"S"}, keys(res.Path()))
	assert.Equal(t, 0.0, res.Cost())
	assert.Equal(t, 0, res.Steps())
	assert.Equal(t, 1, res.Len())

	f, ok := res.F(at("S"))
	require.True(t, ok)
	assert.Equal(t, 3.0, f)
	_, ok = res.Parent(at("S"))
	assert.False(t, ok)
	assert.False(t, res.Discovered(at("A")))
}

func TestSearch_NoPath(t *testing.T) {
	at := graph(map[string][]string{
		"S": {"A"},
		"A": {"S", "B"},
		"G": {"S"},
	})

	var finish *domain.FinishEvent
	res, err := Search(at("S"), at("G"), domain.Zero[node], WithHooks(domain.SearchHooks{
		OnFinish: func(e *domain.FinishEvent) { finish = e },
	}))
	assert.ErrorIs(t, err, domain.ErrNoPath)
	assert.Nil(t, res)
	require.NotNil(t, finish)
	assert.False(t, finish.Found)
	assert.Equal(t, 3, finish.Expanded)
}

func TestSearch_SkipsSelfLoops(t *testing.T) {
	at := graph(map[string][]string{
		"S": {"S", "A"},
		"A": {"A", "G"},
	})

	var relaxed []string
	res, err := Search(at("S"), at("G"), domain.Zero[node], WithHooks(domain.SearchHooks{
		OnRelax: func(e *domain.RelaxEvent) { relaxed = append(relaxed, e.ParentKey+">"+e.Key) },
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"S", "A", "G"}, keys(res.Path()))
	assert.Equal(t, []string{"S>A", "A>G"}, relaxed)
}

func TestSearch_TieBreakIsFIFO(t *testing.T) {
	at := graph(map[string][]string{
		"S": {"B", "A", "C"},
		"B": {"G"},
		"A": {"G"},
		"C": {"G"},
	})

	res, err := Search(at("S"), at("G"), domain.Zero[node])
	require.NoError(t, err)
	// B, A and C share f = 1; they are expanded in discovery order and G is
	// first reached through B.
	assert.Equal(t, []string{"S", "B", "G"}, keys(res.Path()))
	assert.Equal(t, []string{"S", "B", "A", "C", "G"}, keys(res.VisitOrder()))
}

func TestSearch_RelaxesQueuedState(t *testing.T) {
	// G is first discovered through the long branch, then reached cheaper
	// through D while still queued.
	at := graph(map[string][]string{
		"S": {"A", "D"},
		"A": {"B"},
		"B": {"G"},
		"D": {"G"},
	})
	h := table(map[string]float64{"D": 1.5, "G": 0})

	var improved []string
	res, err := Search(at("S"), at("G"), h, WithHooks(domain.SearchHooks{
		OnRelax: func(e *domain.RelaxEvent) {
			if e.Improved {
				improved = append(improved, e.Key)
			}
		},
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"S", "D", "G"}, keys(res.Path()))
	assert.Equal(t, 2.0, res.Cost())
	assert.Equal(t, []string{"G"}, improved)
}

func TestSearch_ClosedStatesAreNotReopened(t *testing.T) {
	// With the inconsistent estimate on B, X is expanded at g=3 before B
	// offers g=2. X keeps its new parent but is not expanded again.
	at := graph(map[string][]string{
		"S":  {"A", "B"},
		"A":  {"A2"},
		"A2": {"X"},
		"B":  {"X"},
		"X":  {"G"},
	})
	h := table(map[string]float64{"B": 5, "G": 10})

	var requeued []bool
	res, err := Search(at("S"), at("G"), h, WithHooks(domain.SearchHooks{
		OnRelax: func(e *domain.RelaxEvent) {
			if e.Key == "X" {
				requeued = append(requeued, e.Requeued)
			}
		},
	}))
	require.NoError(t, err)

	assert.Equal(t, []bool{true, false}, requeued)
	g, _ := res.G(at("X"))
	assert.Equal(t, 2.0, g)
	parent, _ := res.Parent(at("X"))
	assert.Equal(t, "B", parent.Key())

	assert.Equal(t, []string{"S", "B", "X", "G"}, keys(res.Path()))
	// G kept the score it got from the first expansion of X.
	assert.Equal(t, 4.0, res.Cost())
	rank, _ := res.Rank(at("X"))
	assert.Equal(t, 3, rank)
}

func TestSearch_HeuristicMemoized(t *testing.T) {
	at := graph(map[string][]string{
		"S": {"A", "B"},
		"A": {"C"},
		"B": {"C"},
		"C": {"G"},
	})
	calls := map[string]int{}
	h := func(s, _ node) float64 {
		calls[s.id]++
		return 0
	}

	_, err := Search(at("S"), at("G"), h)
	require.NoError(t, err)
	for id, n := range calls {
		assert.Equal(t, 1, n, id)
	}
}

func TestSearch_InvalidConfig(t *testing.T) {
	at := graph(map[string][]string{"S": {"G"}})

	_, err := Search(at("S"), at("G"), domain.Zero[node], WithStepCost(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidStepCost)

	_, err = Search(at("S"), at("G"), domain.Zero[node], WithStepCost(math.NaN()))
	assert.ErrorIs(t, err, domain.ErrInvalidStepCost)

	_, err = Search(at("S"), at("G"), nil)
	assert.ErrorIs(t, err, domain.ErrNilHeuristic)
}

func TestSearch_PanicsPropagate(t *testing.T) {
	at := graph(map[string][]string{"S": {"G"}})
	h := func(s, _ node) float64 {
		if s.id == "G" {
			panic("boom")
		}
		return 0
	}
	assert.PanicsWithValue(t, "boom", func() {
		_, _ = Search(at("S"), at("G"), h)
	})
}
