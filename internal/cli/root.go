// Package cli implements the simcli command-line interface using Cobra.
// Each subcommand maps to a day-to-day operator task: run a local batch
// of ticks, ask a running simdaemon for its status, or assign a ship a
// task over the daemon's HTTP API.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "simcli",
	Short: "simcli — operate the space-economy simulation",
	Long: `simcli drives the deterministic space-industry economy simulation core.

run:    load content, build an initial state, and advance it a number of
        ticks locally, printing the final metrics snapshot.
status: ask a running simdaemon for its current tick and fleet summary.
assign: queue a ship task against a running simdaemon.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(runCmd, statusCmd, assignCmd)
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
