package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/kailas-cloud/plantdex/internal/db/query"
)

// Store is the relational store facade: a pooled connection source plus lifecycle.
type Store interface {
	Pinger
	Acquirer
	Close() error
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Acquirer hands out scoped connections. Callers must Close the returned Conn.
type Acquirer interface {
	Conn(ctx context.Context) (Conn, error)
	Dialect() Dialect
}

// Querier runs statements. Implemented by *sql.Conn, *sql.Tx and *sql.DB.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Conn is one connection checked out of the pool. Implemented by *sql.Conn.
type Conn interface {
	Querier
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
	Close() error
}

// Dialect extends query rendering with driver-specific value handling.
type Dialect interface {
	query.Dialect
	// ScanArray returns a scan destination that fills dest from a text array column.
	ScanArray(dest *[]string) any
	// ArrayValue converts v into an argument for a text array column.
	ArrayValue(v []string) any
	// SnapshotTxOptions returns the options for a read-only transaction
	// that sees one snapshot across statements.
	SnapshotTxOptions() *sql.TxOptions
}

// Scanner reads the current row. Implemented by *sql.Rows and *sql.Row.
type Scanner interface {
	Scan(dest ...any) error
}

// KVStore provides simple key-value operations for caches.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
