package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aretw0/arbor/internal/presentation/tui"
	"github.com/aretw0/arbor/pkg/batch"
	"github.com/aretw0/arbor/pkg/problem"
	"github.com/aretw0/arbor/pkg/render"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var solveCmd = &cobra.Command{
	Use:   "solve FILE",
	Short: "Solve the problems of a YAML or JSON file",
	Long: `Solves every problem listed in FILE and prints its search tree.
With --out, each tree is written to DIR/<name><ext> instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defs, err := problem.Load(args[0])
		if err != nil {
			return err
		}
		return runProblems(cmd, defs)
	},
}

func init() {
	rootCmd.AddCommand(solveCmd)
	addRunFlags(solveCmd)
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", string(render.FormatText), "Tree format (text, dot, mermaid, json)")
	cmd.Flags().StringP("out", "o", "", "Directory to write one tree file per problem")
	cmd.Flags().Bool("frontier", false, "Include discovered but unexpanded states")
	cmd.Flags().Bool("unexplored", false, "Include never discovered children of expanded states")
	cmd.Flags().IntP("workers", "w", 0, "Concurrent searches (default: number of CPUs)")
	cmd.Flags().Int("max-expansions", 0, "Abort a search after this many expanded states (0: no limit)")
	cmd.Flags().Bool("no-report", false, "Do not print the summary report")
}

// runProblems solves defs on a worker pool, then writes the trees and the
// summary report.
func runProblems(cmd *cobra.Command, defs []problem.Definition) error {
	rawFormat, _ := cmd.Flags().GetString("format")
	outDir, _ := cmd.Flags().GetString("out")
	frontier, _ := cmd.Flags().GetBool("frontier")
	unexplored, _ := cmd.Flags().GetBool("unexplored")
	workers, _ := cmd.Flags().GetInt("workers")
	maxExpansions, _ := cmd.Flags().GetInt("max-expansions")
	noReport, _ := cmd.Flags().GetBool("no-report")

	format, err := render.ParseFormat(rawFormat)
	if err != nil {
		return err
	}

	opts := []batch.Option{
		batch.WithLogger(logger),
		batch.WithConfig(problem.Config{
			Logger:            logger,
			MaxExpansions:     maxExpansions,
			IncludeFrontier:   frontier,
			IncludeUnexplored: unexplored,
		}),
	}
	if workers > 0 {
		opts = append(opts, batch.WithPoolSize(workers))
	}
	solver, err := batch.NewSolver(opts...)
	if err != nil {
		return err
	}
	defer solver.Release()

	outcomes, solveErr := solver.SolveAll(cmd.Context(), defs)
	reports := batch.Reports(outcomes)

	out := cmd.OutOrStdout()
	tty := isTerminal(out)
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	for _, rep := range reports {
		if !rep.Found {
			logger.Warn("no path to goal", "problem", rep.Name)
			continue
		}
		if outDir != "" {
			if err := writeTree(outDir, rep, format); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintf(out, "== %s ==\n", rep.Name)
		if format == render.FormatText && tty {
			fmt.Fprint(out, tui.ColorText(rep.Tree, termenv.ColorProfile()))
			continue
		}
		text, err := render.Render(rep.Tree, format, rep.Name)
		if err != nil {
			return err
		}
		fmt.Fprint(out, text)
	}

	if !noReport && len(reports) > 0 {
		printReport(out, reports, tty)
	}
	return solveErr
}

func writeTree(dir string, rep *problem.Report, format render.Format) error {
	text, err := render.Render(rep.Tree, format, rep.Name)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, rep.Name+format.Extension())
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	logger.Info("tree written", "problem", rep.Name, "path", path, "nodes", rep.Tree.Count)
	return nil
}

func printReport(w io.Writer, reports []*problem.Report, tty bool) {
	md := tui.Markdown(reports)
	if tty {
		if renderMd, err := tui.NewRenderer(); err == nil {
			if styled, err := renderMd(md); err == nil {
				fmt.Fprint(w, styled)
				return
			}
		}
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, md)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
