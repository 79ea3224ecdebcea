// Package cli wires the cobra commands for the taskify binary.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd *cobra.Command

func init() {
	rootCmd = &cobra.Command{
		Use:   "taskify",
		Short: "Taskify - multi-tenant project and task tracker",
		Long: `Taskify serves a project/task tracker API: users own projects, projects
own tasks, and tasks move through a fixed workflow status catalog.

Running without a subcommand starts the HTTP server.`,
		RunE:          runServe,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
}

// Execute runs the root command.
func Execute(version string) error {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)

	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
