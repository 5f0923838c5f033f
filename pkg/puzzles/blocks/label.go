package blocks

import (
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/render"
)

// Label shows the visit rank, the scores, the arm and every stack of a world.
func Label(w World, res *domain.Result[World]) string {
	return render.ScoredLabel(World.String)(w, res)
}

// Style colours the solution path and draws worlds with a held block as ellipses.
func Style(w World, res *domain.Result[World]) render.Attrs {
	attrs := render.PathStyle(w, res)
	if w.arm == "" {
		return attrs
	}
	out := render.Attrs{"shape": "ellipse"}
	for k, v := range attrs {
		out[k] = v
	}
	return out
}

// RenderOptions returns render options using Label and Style.
func RenderOptions(frontier, unexplored bool) render.Options[World] {
	return render.Options[World]{
		Label:             Label,
		Style:             Style,
		IncludeFrontier:   frontier,
		IncludeUnexplored: unexplored,
	}
}
