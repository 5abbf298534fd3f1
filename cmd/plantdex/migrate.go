package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/plantdex/internal/config"
	"github.com/kailas-cloud/plantdex/internal/db/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the embedded schema migrations",
	Long: `Applies pending schema migrations to the configured database.
SQLite databases are migrated on every open; this command only creates
and migrates the file.`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		applied, err := postgres.Migrate(cmd.Context(), cfg.Database.DSN)
		if err != nil {
			return fmt.Errorf("migrate postgres: %w", err)
		}
		logger.Info("Migrations applied", zap.Int("count", applied))
		cmd.Printf("applied %d migration(s)\n", applied)
	default:
		pool, err := openPool(cmd.Context(), cfg.Database, logger)
		if err != nil {
			return err
		}
		_ = pool.Close()
		cmd.Println("database is up to date")
	}
	return nil
}
