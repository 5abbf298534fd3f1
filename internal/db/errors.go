package db

import (
	"errors"

	"github.com/kailas-cloud/plantdex/internal/domain"
)

// ErrKeyNotFound is returned by KV stores on a cache miss.
var ErrKeyNotFound = errors.New("db: key not found")

// Op constants name the failing operation in errors and metrics.
const (
	OpGet     = "GET"
	OpSet     = "SET"
	OpPing    = "PING"
	OpScan    = "SCAN"
	OpUnlink  = "UNLINK"
	OpAcquire = "acquire"
	OpBegin   = "begin"
	OpCount   = "count"
	OpSelect  = "select"
	OpInsert  = "insert"
	OpUpdate  = "update"
	OpDelete  = "delete"
	OpMigrate = "migrate"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// QueryError is a failed SQL statement. It matches domain.ErrQueryExecution
// and the driver error under errors.Is / errors.As.
type QueryError struct {
	Op    string
	Query string
	Err   error
}

func (e *QueryError) Error() string { return "query " + e.Op + ": " + e.Err.Error() }

// Unwrap exposes both the domain sentinel and the driver error.
func (e *QueryError) Unwrap() []error { return []error{domain.ErrQueryExecution, e.Err} }
