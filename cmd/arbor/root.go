package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/spf13/cobra"
)

var logger = logging.NewNop()

var rootCmd = &cobra.Command{
	Use:   "arbor",
	Short: "Arbor solves search problems with A* and draws their search trees",
	Long: `Arbor runs a best-first (A*) search over sliding-tile puzzles and block worlds
described in YAML or JSON files, and exports the resulting search tree as text,
Graphviz DOT, Mermaid or JSON.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetString("log-level")
		level, err := logging.ParseLevel(raw)
		if err != nil {
			return err
		}
		logger = logging.New(level)
		slog.SetDefault(logger)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// Execute runs the root command. An interrupt cancels running searches.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
}
