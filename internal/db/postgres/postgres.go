// Package postgres opens the PostgreSQL store through lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	_ "github.com/lib/pq" // PostgreSQL driver
	"go.uber.org/zap"

	"github.com/kailas-cloud/plantdex/internal/db"
	"github.com/kailas-cloud/plantdex/internal/db/postgres/migrations"
)

// DefaultSimilarityThreshold matches the pg_trgm default.
const DefaultSimilarityThreshold = 0.3

// Config holds connection parameters for the PostgreSQL store.
type Config struct {
	DSN                 string
	SimilarityThreshold float64
	Pool                db.PoolConfig
}

// Open connects to PostgreSQL and returns the pool. No connection is made
// until the first acquisition; use WaitForReady to block on availability.
func Open(cfg Config, logger *zap.Logger) (*db.Pool, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("dsn is required")
	}
	threshold := cfg.SimilarityThreshold
	if threshold == 0 {
		threshold = DefaultSimilarityThreshold
	}
	dsn, err := WithSimilarityThreshold(cfg.DSN, threshold)
	if err != nil {
		return nil, err
	}
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return db.NewPool(sqlDB, Dialect{}, cfg.Pool, logger), nil
}

// Migrate applies the embedded schema migrations.
func Migrate(ctx context.Context, dsn string) (int, error) {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return 0, fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()
	return db.Migrate(ctx, sqlDB, migrations.FS)
}

// kvOptions matches the options parameter of a key=value DSN, quoted or bare.
var kvOptions = regexp.MustCompile(`(^|\s)options\s*=\s*('(?:[^'\\]|\\.)*'|\S+)`)

// WithSimilarityThreshold sets pg_trgm.similarity_threshold as a startup option
// of every connection. Existing options are kept and the threshold is appended
// after them, so the configured value wins over one already in the DSN.
// Both URL and key=value DSNs are supported.
func WithSimilarityThreshold(dsn string, threshold float64) (string, error) {
	if threshold <= 0 || threshold > 1 {
		return "", fmt.Errorf("similarity threshold must be in (0, 1], got %v", threshold)
	}
	opt := "-c pg_trgm.similarity_threshold=" + strconv.FormatFloat(threshold, 'f', -1, 64)

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", fmt.Errorf("parse dsn: %w", err)
		}
		q := u.Query()
		q.Set("options", joinOptions(q.Get("options"), opt))
		u.RawQuery = q.Encode()
		return u.String(), nil
	}

	loc := kvOptions.FindStringSubmatchIndex(dsn)
	if loc == nil {
		return strings.TrimSpace(dsn) + " options='" + opt + "'", nil
	}
	existing := dsn[loc[4]:loc[5]]
	if strings.HasPrefix(existing, "'") {
		existing = existing[1 : len(existing)-1]
	}
	return dsn[:loc[4]] + "'" + joinOptions(existing, opt) + "'" + dsn[loc[5]:], nil
}

func joinOptions(existing, opt string) string {
	existing = strings.TrimSpace(existing)
	if existing == "" {
		return opt
	}
	return existing + " " + opt
}
