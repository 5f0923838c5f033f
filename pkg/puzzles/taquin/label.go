package taquin

import (
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/render"
)

// Label shows the visit rank, the scores and the grid of a board.
func Label(b Board, res *domain.Result[Board]) string {
	return render.ScoredLabel(Board.String)(b, res)
}

// Style colours the solution path.
func Style(b Board, res *domain.Result[Board]) render.Attrs {
	return render.PathStyle(b, res)
}

// RenderOptions returns render options using Label and Style.
func RenderOptions(frontier, unexplored bool) render.Options[Board] {
	return render.Options[Board]{
		Label:             Label,
		Style:             Style,
		IncludeFrontier:   frontier,
		IncludeUnexplored: unexplored,
	}
}
