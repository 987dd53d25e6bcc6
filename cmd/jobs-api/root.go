package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "jobs-api",
		Short: "Enerlab jobs API: job challenges and application validation",
		Long: `jobs-api publishes job application challenges over HTTP and validates
candidate submissions, forwarding accepted applications to Slack (or NATS).

Without a subcommand it starts the HTTP server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "optional YAML or TOML config file (env vars take precedence)")

	root.AddCommand(
		newServeCmd(&configPath),
		newPositionsCmd(),
		newChallengeCmd(),
		newCheckCmd(),
		newSimilarityCmd(),
	)
	return root
}
