package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the arbor ASCII banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	// Green to teal, trunk to canopy.
	lines := []struct {
		text  string
		color string
	}{
		{"                 _                ", "#34d399"},
		{"   __ _ _ __ ___| |__   ___  _ __ ", "#2dd4bf"},
		{"  / _` | '__/ __| '_ \\ / _ \\| '__|", "#22d3ee"},
		{" | (_| | |  \\__ \\ |_) | (_) | |   ", "#38bdf8"},
		{"  \\__,_|_|  |___/_.__/ \\___/|_|   ", "#60a5fa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
