package main

import (
	"os"

	"github.com/spf13/cobra"

	"subtrack/internal/interfaces/cli/migrate"
	"subtrack/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "subtrack",
		Short: "Subtrack - subscription tracking service",
		Long:  `Subtrack is a web API for tracking recurring-payment subscriptions, with authentication, audit logging, and migration tools.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
