package db

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"
)

// fakeDialect renders like PostgreSQL without a driver behind it.
type fakeDialect struct{}

func (fakeDialect) Name() string               { return "fake" }
func (fakeDialect) Placeholder(n int) string   { return "$" + strconv.Itoa(n) }
func (fakeDialect) Greatest(e []string) string { return "GREATEST(" + strings.Join(e, ", ") + ")" }
func (fakeDialect) Fuzzy(expr, ph string) string {
	return expr + " % " + ph
}
func (fakeDialect) ILike() string                     { return "ILIKE" }
func (fakeDialect) ScanArray(dest *[]string) any      { return dest }
func (fakeDialect) ArrayValue(v []string) any         { return v }
func (fakeDialect) SnapshotTxOptions() *sql.TxOptions { return &sql.TxOptions{ReadOnly: true} }

// mockAcquirer implements Acquirer for tests.
type mockAcquirer struct {
	connFn func(ctx context.Context) (Conn, error)
	calls  int
}

func (m *mockAcquirer) Conn(ctx context.Context) (Conn, error) {
	m.calls++
	if m.connFn != nil {
		return m.connFn(ctx)
	}
	return nil, sql.ErrConnDone
}

func (m *mockAcquirer) Dialect() Dialect { return fakeDialect{} }

// recordingObserver captures observed queries.
type recordingObserver struct {
	ops []string
}

func (r *recordingObserver) ObserveQuery(entity, op string, _ time.Duration, _ error) {
	r.ops = append(r.ops, entity+":"+op)
}
