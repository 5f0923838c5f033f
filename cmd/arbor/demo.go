package main

import (
	"github.com/aretw0/arbor/internal/presentation/tui"
	"github.com/aretw0/arbor/pkg/problem"
	"github.com/spf13/cobra"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Solve the built-in block world and taquin problems",
	RunE: func(cmd *cobra.Command, args []string) error {
		if isTerminal(cmd.OutOrStdout()) {
			tui.PrintBanner(cmd.OutOrStdout())
		}
		return runProblems(cmd, problem.Demo())
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
	addRunFlags(demoCmd)
}
