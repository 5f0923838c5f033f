package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/arbor/pkg/problem"
	"github.com/aretw0/arbor/pkg/render"
	"github.com/muesli/termenv"
)

// Markdown summarises solved problems as a markdown table followed by the
// path of each problem.
func Markdown(reports []*problem.Report) string {
	var sb strings.Builder
	sb.WriteString("# Search report\n\n")
	sb.WriteString("| Problem | Kind | Heuristic | Step cost | Found | Cost | Moves | Expanded | Discovered |\n")
	sb.WriteString("|---|---|---|---:|:-:|---:|---:|---:|---:|\n")
	for _, r := range reports {
		found := "no"
		if r.Found {
			found = "yes"
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %g | %s | %.2f | %d | %d | %d |\n",
			r.Name, r.Kind, r.Heuristic, r.StepCost, found, r.Cost, r.Moves(), r.Expanded, r.Discovered)
	}

	for _, r := range reports {
		if !r.Found {
			continue
		}
		fmt.Fprintf(&sb, "\n## %s\n\n", r.Name)
		for i, step := range r.Path {
			fmt.Fprintf(&sb, "%d. `%s`\n", i, step)
		}
	}
	return sb.String()
}

// ColorText renders the tree as an indented outline, path nodes in red and
// frontier or unexplored nodes faint.
func ColorText(t *render.Tree, p termenv.Profile) string {
	var sb strings.Builder
	t.Walk(func(n *render.Node, depth int) {
		s := p.String(render.FoldLabel(n.Label))
		switch n.Kind {
		case render.KindPath:
			s = s.Foreground(p.Color("#ef4444")).Bold()
		case render.KindFrontier, render.KindUnexplored:
			s = s.Faint()
		}
		fmt.Fprintf(&sb, "%s%s\n", strings.Repeat("  ", depth), s)
	})
	return sb.String()
}
