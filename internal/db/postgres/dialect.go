package postgres

import (
	"database/sql"
	"strconv"
	"strings"

	"github.com/lib/pq"

	"github.com/kailas-cloud/plantdex/internal/db"
)

// Compile-time check: Dialect implements db.Dialect.
var _ db.Dialect = Dialect{}

// Dialect renders SQL for PostgreSQL with the pg_trgm extension.
type Dialect struct{}

// Name returns "postgres".
func (Dialect) Name() string { return "postgres" }

// Placeholder returns $n.
func (Dialect) Placeholder(n int) string { return "$" + strconv.Itoa(n) }

// Greatest uses GREATEST, which ignores NULL arguments.
func (Dialect) Greatest(exprs []string) string {
	return "GREATEST(" + strings.Join(exprs, ", ") + ")"
}

// Fuzzy uses the pg_trgm % operator; the threshold is the session's
// pg_trgm.similarity_threshold.
func (Dialect) Fuzzy(expr, placeholder string) string {
	return expr + " % " + placeholder
}

// ILike returns ILIKE.
func (Dialect) ILike() string { return "ILIKE" }

// ScanArray decodes text[] via pq.
func (Dialect) ScanArray(dest *[]string) any { return pq.Array(dest) }

// ArrayValue encodes text[] via pq. A nil slice is stored as an empty array.
func (Dialect) ArrayValue(v []string) any {
	if v == nil {
		v = []string{}
	}
	return pq.Array(v)
}

// SnapshotTxOptions returns a read-only REPEATABLE READ transaction.
func (Dialect) SnapshotTxOptions() *sql.TxOptions {
	return &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
}
