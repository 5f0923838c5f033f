package problem

import (
	"errors"
	"fmt"
	"math"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/puzzles/blocks"
	"github.com/aretw0/arbor/pkg/puzzles/taquin"
)

// TaquinParams are the params of a taquin problem.
type TaquinParams struct {
	Start [][]int `mapstructure:"start"`
	Goal  [][]int `mapstructure:"goal"`
}

// TaquinKind solves sliding-tile puzzles.
type TaquinKind struct{}

func (TaquinKind) Name() string { return "taquin" }

func (TaquinKind) Heuristics() []string { return []string{"manhattan", "hamming", "zero"} }

func (k TaquinKind) Solve(d Definition, cfg Config) (*Report, error) {
	var p TaquinParams
	if err := decodeParams(d, &p); err != nil {
		return nil, err
	}
	start, err := taquin.New(p.Start)
	if err != nil {
		return nil, wrapInvalid(d, "start", err)
	}
	goal, err := taquin.New(p.Goal)
	if err != nil {
		return nil, wrapInvalid(d, "goal", err)
	}
	if start.Rows() != goal.Rows() || start.Cols() != goal.Cols() {
		return nil, wrapInvalid(d, "goal", taquin.ErrInvalidBoard)
	}

	name := d.Heuristic
	if name == "" {
		name = k.Heuristics()[0]
	}
	var h domain.Heuristic[taquin.Board]
	switch name {
	case "manhattan":
		h = taquin.Manhattan
	case "hamming":
		h = taquin.Hamming
	case "zero":
		h = domain.Zero[taquin.Board]
	default:
		return nil, unknownHeuristic(d, k)
	}

	return solve(d, name, cfg, start, goal, h,
		taquin.RenderOptions(cfg.IncludeFrontier, cfg.IncludeUnexplored),
		taquin.Board.String)
}

// WorldParams describe one block world.
type WorldParams struct {
	Arm    string     `mapstructure:"arm"`
	Stacks [][]string `mapstructure:"stacks"`
}

// BlocksParams are the params of a blocks problem. Base and Terms configure
// the "adjacency" heuristic and are ignored by the others.
type BlocksParams struct {
	MaxStacks int           `mapstructure:"max_stacks"`
	Start     WorldParams   `mapstructure:"start"`
	Goal      WorldParams   `mapstructure:"goal"`
	Base      float64       `mapstructure:"base"`
	Terms     []blocks.Term `mapstructure:"terms"`
}

// BlocksKind solves block-stacking plans.
type BlocksKind struct{}

func (BlocksKind) Name() string { return "blocks" }

func (BlocksKind) Heuristics() []string {
	return []string{"misplaced", "adjacency", "heuristic1", "heuristic2", "zero"}
}

func (k BlocksKind) Solve(d Definition, cfg Config) (*Report, error) {
	var p BlocksParams
	if err := decodeParams(d, &p); err != nil {
		return nil, err
	}
	maxStacks := p.MaxStacks
	if maxStacks == 0 {
		// Enough stacks for every block to rest on the table.
		maxStacks = max(countBlocks(p.Start), len(p.Start.Stacks), len(p.Goal.Stacks), 1)
	}
	start, err := blocks.New(p.Start.Arm, p.Start.Stacks, maxStacks)
	if err != nil {
		return nil, wrapInvalid(d, "start", err)
	}
	goal, err := blocks.New(p.Goal.Arm, p.Goal.Stacks, maxStacks)
	if err != nil {
		return nil, wrapInvalid(d, "goal", err)
	}

	name := d.Heuristic
	if name == "" {
		name = k.Heuristics()[0]
	}
	var h domain.Heuristic[blocks.World]
	switch name {
	case "misplaced":
		h = blocks.Misplaced
	case "adjacency":
		if err := checkWeights(p.Base, p.Terms); err != nil {
			return nil, wrapInvalid(d, "terms", err)
		}
		h = blocks.AdjacencyHeuristic(p.Base, p.Terms...)
	case "heuristic1":
		h = blocks.Heuristic1()
	case "heuristic2":
		h = blocks.Heuristic2()
	case "zero":
		h = domain.Zero[blocks.World]
	default:
		return nil, unknownHeuristic(d, k)
	}

	return solve(d, name, cfg, start, goal, h,
		blocks.RenderOptions(cfg.IncludeFrontier, cfg.IncludeUnexplored),
		blocks.World.String)
}

func countBlocks(w WorldParams) int {
	n := 0
	for _, s := range w.Stacks {
		n += len(s)
	}
	if w.Arm != "" {
		n++
	}
	return n
}

var errNonFinite = errors.New("weights must be finite")

// checkWeights rejects NaN and infinite weights, which would leave the
// frontier without a total order.
func checkWeights(base float64, terms []blocks.Term) error {
	if math.IsNaN(base) || math.IsInf(base, 0) {
		return fmt.Errorf("%w: base is %v", errNonFinite, base)
	}
	for _, t := range terms {
		if math.IsNaN(t.Weight) || math.IsInf(t.Weight, 0) {
			return fmt.Errorf("%w: %s/%s has weight %v", errNonFinite, t.Upper, t.Lower, t.Weight)
		}
	}
	return nil
}
