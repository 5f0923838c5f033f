// Package render turns a search result into a tree description and exports it
// as Graphviz DOT, Mermaid, JSON or indented text.
//
// The tree is the shortest-path tree recorded by the engine: every expanded
// state hangs under its parent. Optionally, states that were discovered but
// never expanded (the frontier) and children of expanded states that were
// never discovered can be shown as leaves.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/cespare/xxhash/v2"
)

// Kind classifies a node of the tree.
type Kind string

const (
	// KindPath marks a state on the returned path.
	KindPath Kind = "path"
	// KindVisited marks an expanded state that is not on the path.
	KindVisited Kind = "visited"
	// KindFrontier marks a discovered state that was never expanded.
	KindFrontier Kind = "frontier"
	// KindUnexplored marks a child of an expanded state that was never discovered.
	KindUnexplored Kind = "unexplored"
)

// Attrs are style attributes attached to a node (Graphviz names: color,
// style, shape, fillcolor...).
type Attrs map[string]string

// LabelFunc returns the text shown inside a node.
type LabelFunc[S domain.State[S]] func(state S, res *domain.Result[S]) string

// StyleFunc returns the style attributes of a node.
type StyleFunc[S domain.State[S]] func(state S, res *domain.Result[S]) Attrs

// Options configures Build. The zero value renders expanded states only,
// labelled with their key and scores, with the path in red.
type Options[S domain.State[S]] struct {
	Label             LabelFunc[S]
	Style             StyleFunc[S]
	IncludeFrontier   bool
	IncludeUnexplored bool
}

// Node is one state of the rendered tree.
type Node struct {
	ID       string   `json:"id"`
	Key      string   `json:"key"`
	Label    string   `json:"label"`
	Kind     Kind     `json:"kind"`
	Rank     *int     `json:"rank,omitempty"`
	G        *float64 `json:"g,omitempty"`
	H        *float64 `json:"h,omitempty"`
	Attrs    Attrs    `json:"attrs,omitempty"`
	Children []*Node  `json:"children,omitempty"`
}

// Tree is a renderer-neutral description of a search tree.
type Tree struct {
	Root  *Node `json:"root"`
	Count int   `json:"count"`
}

// NodeID derives a stable node identifier from a state key.
func NodeID(key string) string {
	return fmt.Sprintf("n%016x", xxhash.Sum64String(key))
}

// ScoredLabel wraps a body renderer with the visit rank and the
// "f(n) = h + g = f" line, leaving them blank when unknown.
func ScoredLabel[S domain.State[S]](body func(S) string) LabelFunc[S] {
	return func(state S, res *domain.Result[S]) string {
		lines := make([]string, 0, 5)
		if rank, ok := res.Rank(state); ok {
			lines = append(lines, fmt.Sprintf("#%d", rank))
		} else {
			lines = append(lines, "")
		}
		if g, okG := res.G(state); okG {
			h, _ := res.H(state)
			lines = append(lines, fmt.Sprintf("f(n) = %s + %s = %s", formatScore(h), formatScore(g), formatScore(h+g)))
		}
		lines = append(lines, "", body(state))
		return strings.Join(lines, "\n")
	}
}

// DefaultLabel labels a node with its rank, scores and key.
func DefaultLabel[S domain.State[S]](state S, res *domain.Result[S]) string {
	return ScoredLabel(func(s S) string { return s.Key() })(state, res)
}

// PathStyle colours the path red, dashes frontier nodes and greys out
// undiscovered ones.
func PathStyle[S domain.State[S]](state S, res *domain.Result[S]) Attrs {
	switch {
	case res.OnPath(state):
		return Attrs{"color": "red"}
	case res.Visited(state):
		return nil
	case res.Discovered(state):
		return Attrs{"style": "dashed"}
	default:
		return Attrs{"style": "dotted", "color": "grey60", "fontcolor": "grey60"}
	}
}

// Build assembles the search tree of res.
func Build[S domain.State[S]](res *domain.Result[S], opts Options[S]) (*Tree, error) {
	if res == nil {
		return nil, fmt.Errorf("render: nil result")
	}
	label := opts.Label
	if label == nil {
		label = DefaultLabel[S]
	}
	style := opts.Style
	if style == nil {
		style = PathStyle[S]
	}

	discovered := res.DiscoveryOrder()
	seq := make(map[string]int, len(discovered))
	for i, s := range discovered {
		seq[s.Key()] = i
	}

	nodes := make(map[string]*Node)
	states := make(map[string]S)
	order := make(map[string][2]int)
	add := func(s S, kind Kind, tiebreak int) *Node {
		key := s.Key()
		states[key] = s
		n := &Node{
			ID:    NodeID(key),
			Key:   key,
			Label: label(s, res),
			Kind:  kind,
			Attrs: style(s, res),
		}
		if rank, ok := res.Rank(s); ok {
			n.Rank = &rank
		}
		if g, ok := res.G(s); ok {
			n.G = &g
		}
		if h, ok := res.H(s); ok {
			n.H = &h
		}
		nodes[key] = n
		primary := len(seq) + tiebreak
		if n.Rank != nil {
			primary = *n.Rank
		}
		order[key] = [2]int{primary, tiebreak}
		return n
	}

	visited := res.VisitOrder()
	for _, s := range visited {
		kind := KindVisited
		if res.OnPath(s) {
			kind = KindPath
		}
		add(s, kind, seq[s.Key()])
	}
	if opts.IncludeFrontier {
		for _, s := range discovered {
			if !res.Visited(s) {
				add(s, KindFrontier, seq[s.Key()])
			}
		}
	}

	// Link every node but the root under its parent.
	rootKey := res.Root().Key()
	for key, n := range nodes {
		if key == rootKey {
			continue
		}
		parent, ok := res.Parent(states[key])
		if !ok {
			return nil, fmt.Errorf("render: state %q has no parent", key)
		}
		pn, ok := nodes[parent.Key()]
		if !ok {
			return nil, fmt.Errorf("render: parent of %q is not in the tree", key)
		}
		pn.Children = append(pn.Children, n)
	}

	if opts.IncludeUnexplored {
		extra := len(discovered)
		for _, s := range visited {
			pn := nodes[s.Key()]
			for _, child := range s.Children() {
				if _, exists := nodes[child.Key()]; exists || res.Discovered(child) {
					continue
				}
				n := add(child, KindUnexplored, extra)
				extra++
				pn.Children = append(pn.Children, n)
			}
		}
	}

	for _, n := range nodes {
		sort.Slice(n.Children, func(i, j int) bool {
			a, b := order[n.Children[i].Key], order[n.Children[j].Key]
			if a[0] != b[0] {
				return a[0] < b[0]
			}
			return a[1] < b[1]
		})
	}

	root, ok := nodes[rootKey]
	if !ok {
		return nil, fmt.Errorf("render: root %q was never visited", rootKey)
	}
	return &Tree{Root: root, Count: len(nodes)}, nil
}

// Walk visits the tree depth-first, parents before children.
func (t *Tree) Walk(fn func(n *Node, depth int)) {
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		fn(n, depth)
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	if t.Root != nil {
		walk(t.Root, 0)
	}
}

func formatScore(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%.1f", v)
	}
	s := strings.TrimRight(fmt.Sprintf("%.3f", v), "0")
	if strings.HasSuffix(s, ".") {
		return s + "0"
	}
	return s
}
