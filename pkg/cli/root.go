// Package cli implements the courseadm command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

// Execute runs the CLI.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "courseadm",
		Short:         "Course admin console CLI",
		Long:          "Command-line interface for the course admin identity and authorization service.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newBootstrapCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
