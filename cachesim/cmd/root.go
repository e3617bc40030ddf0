// Package cmd provides the command-line interface for cachesim.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

func init() {
	cobra.OnInitialize(loadEnvFile)
}

// NewRootCommand creates the cachesim command with all its subcommands.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cachesim",
		Short: "cachesim replays memory access traces through a simulated cache.",
		Long: `cachesim replays memory access traces through a simulated ` +
			`write-back cache. Every read in the trace produces one result ` +
			`line with the value read, the hit flag and the dirty flag.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return applyEnv(cmd)
		},
	}

	addFlags(rootCmd)

	rootCmd.AddCommand(newDMCommand())
	rootCmd.AddCommand(newSACommand())

	return rootCmd
}

// Execute runs the root command with the process arguments and exits with a
// non-zero status on failure.
func Execute() {
	err := NewRootCommand().Execute()
	if err != nil {
		atexit.Exit(1)
	}
}
