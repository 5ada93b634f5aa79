// Package migrate implements the "migrate" CLI command group.
package migrate

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"subtrack/internal/infrastructure/config"
	"subtrack/internal/infrastructure/database"
	"subtrack/internal/infrastructure/migration"
	"subtrack/internal/shared/logger"
)

var (
	env     string
	steps   int
	version int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations: apply pending migrations, roll back, inspect the current version.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newForceCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE:  runDown,
	}
	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")
	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current migration version",
		RunE:  runStatus,
	}
}

func newForceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "force",
		Short: "Force the migration version and clear the dirty flag",
		RunE:  runForce,
	}
	cmd.Flags().IntVarP(&version, "version", "v", 0, "Version to force")
	cmd.MarkFlagRequired("version")
	return cmd
}

func initEnv() (*migration.GolangMigrateStrategy, logger.Interface, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	scriptsPath, err := filepath.Abs("./internal/infrastructure/migration/scripts")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get scripts path: %w", err)
	}

	strategy := migration.NewGolangMigrateStrategy(scriptsPath).(*migration.GolangMigrateStrategy)
	return strategy, log, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	strategy, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running up migrations", "environment", env)

	if err := strategy.Migrate(database.Get()); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Infow("migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	strategy, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running down migrations", "environment", env, "steps", steps)

	if err := strategy.MigrateDown(database.Get(), steps); err != nil {
		return fmt.Errorf("down migration failed: %w", err)
	}

	log.Infow("down migration completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	strategy, _, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	current, dirty, err := strategy.GetVersion(database.Get())
	if err != nil {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	fmt.Printf("\nMigration Status:\n")
	fmt.Printf("  Environment:     %s\n", env)
	fmt.Printf("  Current Version: %d\n", current)
	fmt.Printf("  Dirty:           %t\n", dirty)
	return nil
}

func runForce(cmd *cobra.Command, args []string) error {
	strategy, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	if err := strategy.Force(database.Get(), version); err != nil {
		return fmt.Errorf("failed to force version: %w", err)
	}

	log.Infow("migration version forced", "version", version)
	return nil
}
