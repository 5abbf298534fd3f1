// Package sqlite opens the embedded SQLite store through modernc.org/sqlite.
//
// Text arrays are stored as JSON text. similarity and array_to_string are
// registered as Go scalar functions so statements render the same way as on
// PostgreSQL.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/kailas-cloud/plantdex/internal/db"
	"github.com/kailas-cloud/plantdex/internal/db/sqlite/migrations"
)

// DefaultSimilarityThreshold matches the pg_trgm default.
const DefaultSimilarityThreshold = 0.3

// Config holds parameters for the SQLite store.
type Config struct {
	// Path is the database file. Its directory is created if missing.
	Path                string
	SimilarityThreshold float64
	Pool                db.PoolConfig
}

// Open opens the database file, applies the embedded migrations and returns the pool.
func Open(ctx context.Context, cfg Config, logger *zap.Logger) (*db.Pool, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	threshold := cfg.SimilarityThreshold
	if threshold == 0 {
		threshold = DefaultSimilarityThreshold
	}
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("similarity threshold must be in (0, 1], got %v", threshold)
	}
	if err := registerFunctions(); err != nil {
		return nil, err
	}

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	dsn := cfg.Path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	applied, err := db.Migrate(ctx, sqlDB, migrations.FS)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	if logger != nil && applied > 0 {
		logger.Info("Applied migrations", zap.Int("count", applied), zap.String("path", cfg.Path))
	}

	return db.NewPool(sqlDB, Dialect{Threshold: threshold}, cfg.Pool, logger), nil
}
