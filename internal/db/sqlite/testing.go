package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/kailas-cloud/plantdex/internal/db"
)

// OpenForTest opens a migrated store in a temporary directory (test-only).
// A zero threshold uses DefaultSimilarityThreshold.
func OpenForTest(t testing.TB, threshold float64) *db.Pool {
	t.Helper()
	pool, err := Open(context.Background(), Config{
		Path:                filepath.Join(t.TempDir(), "plantdex.db"),
		SimilarityThreshold: threshold,
		Pool:                db.PoolConfig{AcquireTimeout: time.Second},
	}, nil)
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = pool.Close() })
	return pool
}
