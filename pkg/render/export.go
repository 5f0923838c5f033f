package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Format specifies the export format of a tree.
type Format string

const (
	FormatDOT     Format = "dot"
	FormatMermaid Format = "mermaid"
	FormatJSON    Format = "json"
	FormatText    Format = "text"
)

// ErrUnknownFormat is returned for an unsupported export format.
var ErrUnknownFormat = errors.New("unknown format")

// Formats lists the supported export formats.
func Formats() []Format {
	return []Format{FormatText, FormatDOT, FormatMermaid, FormatJSON}
}

// ParseFormat validates a format name (case-insensitive).
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Extension returns the conventional file extension for f, dot included.
func (f Format) Extension() string {
	switch f {
	case FormatDOT:
		return ".dot"
	case FormatMermaid:
		return ".mmd"
	case FormatJSON:
		return ".json"
	default:
		return ".txt"
	}
}

// Render exports the tree in the requested format. name is used as the graph
// name where the format has one.
func Render(t *Tree, f Format, name string) (string, error) {
	switch f {
	case FormatDOT:
		return t.DOT(name), nil
	case FormatMermaid:
		return t.Mermaid(), nil
	case FormatJSON:
		return t.JSON()
	case FormatText:
		return t.Text(), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// DOT produces a Graphviz digraph. Node attributes come from the style
// function; edges follow parent links.
func (t *Tree) DOT(name string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "digraph %s {\n", quoteDOT(name))
	sb.WriteString("    node [shape=box, fontname=\"monospace\"];\n")

	t.Walk(func(n *Node, _ int) {
		attrs := []string{"label=" + quoteDOT(n.Label)}
		for _, k := range sortedKeys(n.Attrs) {
			attrs = append(attrs, k+"="+quoteDOT(n.Attrs[k]))
		}
		fmt.Fprintf(&sb, "    %s [%s];\n", n.ID, strings.Join(attrs, ", "))
	})
	sb.WriteString("\n")
	t.Walk(func(n *Node, _ int) {
		for _, c := range n.Children {
			fmt.Fprintf(&sb, "    %s -> %s;\n", n.ID, c.ID)
		}
	})

	sb.WriteString("}\n")
	return sb.String()
}

// Mermaid produces a Mermaid flowchart with one class per node kind.
func (t *Tree) Mermaid() string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	byKind := make(map[Kind][]string)
	t.Walk(func(n *Node, _ int) {
		fmt.Fprintf(&sb, "    %s[\"%s\"]\n", n.ID, escapeMermaidLabel(n.Label))
		byKind[n.Kind] = append(byKind[n.Kind], n.ID)
	})
	t.Walk(func(n *Node, _ int) {
		for _, c := range n.Children {
			arrow := "-->"
			if c.Kind == KindFrontier || c.Kind == KindUnexplored {
				arrow = "-.->"
			}
			fmt.Fprintf(&sb, "    %s %s %s\n", n.ID, arrow, c.ID)
		}
	})

	sb.WriteString("\n    %% Search Styles\n")
	// Force black text (color:#000) for contrast on both light and dark themes.
	sb.WriteString("    classDef path fill:#ffcdd2,stroke:#c62828,stroke-width:3px,color:#000;\n")
	sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:1px,color:#000;\n")
	sb.WriteString("    classDef frontier fill:#fff,stroke:#9e9e9e,stroke-dasharray:5 5,color:#000;\n")
	sb.WriteString("    classDef unexplored fill:#fafafa,stroke:#bdbdbd,stroke-dasharray:2 2,color:#9e9e9e;\n")
	for _, kind := range []Kind{KindPath, KindVisited, KindFrontier, KindUnexplored} {
		if ids := byKind[kind]; len(ids) > 0 {
			fmt.Fprintf(&sb, "    class %s %s;\n", strings.Join(ids, ","), kind)
		}
	}
	return sb.String()
}

// JSON returns the tree as indented JSON.
func (t *Tree) JSON() (string, error) {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode tree: %w", err)
	}
	return string(data) + "\n", nil
}

// Text returns an indented outline of the tree. Path nodes are starred and
// multi-line labels are folded onto one line.
func (t *Tree) Text() string {
	var sb strings.Builder
	t.Walk(func(n *Node, depth int) {
		marker := " "
		switch n.Kind {
		case KindPath:
			marker = "*"
		case KindFrontier:
			marker = "?"
		case KindUnexplored:
			marker = "."
		}
		fmt.Fprintf(&sb, "%s%s %s\n", strings.Repeat("  ", depth), marker, FoldLabel(n.Label))
	})
	return sb.String()
}

// FoldLabel joins the non-empty lines of a label with " | ".
func FoldLabel(label string) string {
	var parts []string
	for _, line := range strings.Split(label, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " | ")
}

func quoteDOT(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	return `"` + r.Replace(s) + `"`
}

func escapeMermaidLabel(s string) string {
	r := strings.NewReplacer(`"`, "#quot;", "\n", "<br/>", "<", "#lt;", ">", "#gt;")
	return r.Replace(s)
}

func sortedKeys(m Attrs) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
