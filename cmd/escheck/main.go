// Package main provides the entry point for the escheck CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/escheck/cmd/escheck/commands"
	"github.com/Sumatoshi-tech/escheck/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "escheck",
		Short: "Escheck - ECMAScript compatibility checker",
		Long: `Escheck verifies that JavaScript source files only use language and
standard-library features supported at a target ECMAScript edition.

Commands:
  check     Check files against a target edition or browser query
  features  List the known feature catalog`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewCheckCommand())
	rootCmd.AddCommand(commands.NewFeaturesCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "escheck %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
