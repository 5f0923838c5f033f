/*
Package arbor is a generic best-first (A*) search engine over implicitly defined
state spaces, with an exporter for the resulting search tree.

A domain only has to describe its states: a canonical Key used for duplicate
detection and a Children expansion. The engine owns the frontier, the g/h
bookkeeping, the tie-breaking and the path reconstruction.

# Concept

The frontier is a min-heap ordered by f = g + h, with ties broken by insertion
order so runs are reproducible. Heuristic values are memoized once per state.
A cheaper path to a state that is still queued updates its score and parent;
a state that was already expanded is never reopened. This means returned paths
are optimal when the heuristic is consistent, which is stronger than admissible.

# Usage

	package main

	import (
		"errors"
		"fmt"
		"log"

		"github.com/aretw0/arbor"
		"github.com/aretw0/arbor/pkg/puzzles/taquin"
		"github.com/aretw0/arbor/pkg/render"
	)

	func main() {
		start, _ := taquin.New([][]int{{1, 4, 2}, {7, 6, 3}, {8, 0, 5}})
		goal, _ := taquin.New([][]int{{1, 2, 3}, {4, 5, 6}, {7, 8, 0}})

		res, err := arbor.Search(start, goal, taquin.Manhattan)
		if errors.Is(err, arbor.ErrNoPath) {
			fmt.Println("no path")
			return
		}
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("solved in %v moves\n", res.Cost())

		tree, err := render.Build(res, render.Options[taquin.Board]{})
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(tree.DOT("taquin"))
	}
*/
package arbor
