package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/plantdex/internal/config"
	logpkg "github.com/kailas-cloud/plantdex/internal/logger"
)

var (
	envName string
	cfg     config.Config
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "plantdex",
	Short: "Plant search and garden map data service",
	Long: `plantdex serves ranked fuzzy search over plant names, paginated
plant and map listings, and planting CRUD on PostgreSQL or SQLite.

Configuration is read from config/<env>.yaml; a .env file in the working
directory is loaded first.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envName, "env", "", "config environment (default: $ENV or local)")
}

// setup loads .env, the config file and the logger. Commands that need
// neither (version) skip it through their own PersistentPreRunE.
func setup(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	if envName == "" {
		envName = config.GetEnv()
	}

	var err error
	cfg, err = config.Load(envName)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err = logpkg.NewLogger(envName, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	return nil
}
