package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/plantdex/internal/db/query"
	"github.com/kailas-cloud/plantdex/internal/domain"
	"github.com/kailas-cloud/plantdex/internal/domain/page"
	"github.com/kailas-cloud/plantdex/internal/logger"
)

// RowScanner reads one row into T. The dialect decodes array columns.
type RowScanner[T any] func(d Dialect, row Scanner) (T, error)

// QueryObserver records statement timings per entity and operation.
type QueryObserver interface {
	ObserveQuery(entity, op string, elapsed time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveQuery(string, string, time.Duration, error) {}

// Executor runs statements on scoped pool connections.
type Executor struct {
	store      Acquirer
	consistent bool
	observer   QueryObserver
	logger     *zap.Logger
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithConsistentPages runs the count and data queries of a page
// in one read-only snapshot transaction.
func WithConsistentPages(enabled bool) ExecutorOption {
	return func(e *Executor) { e.consistent = enabled }
}

// WithObserver sets the query observer.
func WithObserver(o QueryObserver) ExecutorOption {
	return func(e *Executor) {
		if o != nil {
			e.observer = o
		}
	}
}

// WithLogger sets the fallback logger used when the context carries none.
func WithLogger(l *zap.Logger) ExecutorOption {
	return func(e *Executor) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewExecutor creates an executor over store.
func NewExecutor(store Acquirer, opts ...ExecutorOption) *Executor {
	e := &Executor{
		store:    store,
		observer: nopObserver{},
		logger:   zap.NewNop(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Dialect returns the store dialect.
func (e *Executor) Dialect() Dialect { return e.store.Dialect() }

// Paginate runs sel as one page: a COUNT(*) with the same filter, then the
// data query with LIMIT/OFFSET. The data query is skipped when the page lies
// past the last page, so an offset is only computed for pages that hold rows.
// Both run on one connection, released on every path.
func Paginate[T any](
	ctx context.Context, e *Executor, sel query.Select, params page.Parameters, scan RowScanner[T],
) (page.Page[T], error) {
	if err := params.Validate(); err != nil {
		return page.Page[T]{}, err
	}

	d := e.store.Dialect()
	countStmt, err := sel.BuildCount(d)
	if err != nil {
		return page.Page[T]{}, fmt.Errorf("build count query: %w", err)
	}
	conn, err := e.store.Conn(ctx)
	if err != nil {
		return page.Page[T]{}, err
	}
	defer e.release(ctx, conn)

	var q Querier = conn
	if e.consistent {
		tx, err := conn.BeginTx(ctx, d.SnapshotTxOptions())
		if err != nil {
			return page.Page[T]{}, e.fail(ctx, sel.Table(), OpBegin, "BEGIN", err)
		}
		// Read-only: rollback just ends the snapshot.
		defer func() { _ = tx.Rollback() }()
		q = tx
	}

	total, err := e.count(ctx, q, sel.Table(), countStmt)
	if err != nil {
		return page.Page[T]{}, err
	}

	items := []T{}
	if !params.PastEnd(total) {
		dataStmt, err := sel.BuildPage(d, params.PerPage(), params.Offset())
		if err != nil {
			return page.Page[T]{}, fmt.Errorf("build page query: %w", err)
		}
		items, err = queryRows(ctx, e, q, sel.Table(), OpSelect, dataStmt, scan)
		if err != nil {
			return page.Page[T]{}, err
		}
	}
	return page.New(items, params, total), nil
}

// List runs stmt and scans every row.
func List[T any](ctx context.Context, e *Executor, entity string, stmt query.Statement, scan RowScanner[T]) ([]T, error) {
	conn, err := e.store.Conn(ctx)
	if err != nil {
		return nil, err
	}
	defer e.release(ctx, conn)
	return queryRows(ctx, e, conn, entity, OpSelect, stmt, scan)
}

// One runs stmt and scans the single resulting row.
// No row yields domain.ErrNotFound. op labels the statement in logs and metrics.
func One[T any](
	ctx context.Context, e *Executor, entity, op string, stmt query.Statement, scan RowScanner[T],
) (T, error) {
	var zero T
	conn, err := e.store.Conn(ctx)
	if err != nil {
		return zero, err
	}
	defer e.release(ctx, conn)

	e.debug(ctx, entity, op, stmt)
	start := time.Now()
	item, err := scan(e.store.Dialect(), conn.QueryRowContext(ctx, stmt.SQL, stmt.Args...))
	if errors.Is(err, sql.ErrNoRows) {
		e.observer.ObserveQuery(entity, op, time.Since(start), nil)
		return zero, fmt.Errorf("%s: %w", entity, domain.ErrNotFound)
	}
	e.observer.ObserveQuery(entity, op, time.Since(start), err)
	if err != nil {
		return zero, e.fail(ctx, entity, op, stmt.SQL, err)
	}
	return item, nil
}

// Exec runs stmt and returns the number of affected rows.
func (e *Executor) Exec(ctx context.Context, entity, op string, stmt query.Statement) (int64, error) {
	conn, err := e.store.Conn(ctx)
	if err != nil {
		return 0, err
	}
	defer e.release(ctx, conn)

	e.debug(ctx, entity, op, stmt)
	start := time.Now()
	res, err := conn.ExecContext(ctx, stmt.SQL, stmt.Args...)
	e.observer.ObserveQuery(entity, op, time.Since(start), err)
	if err != nil {
		return 0, e.fail(ctx, entity, op, stmt.SQL, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, e.fail(ctx, entity, op, stmt.SQL, err)
	}
	return n, nil
}

func (e *Executor) count(ctx context.Context, q Querier, entity string, stmt query.Statement) (int, error) {
	e.debug(ctx, entity, OpCount, stmt)
	start := time.Now()
	var total int64
	err := q.QueryRowContext(ctx, stmt.SQL, stmt.Args...).Scan(&total)
	e.observer.ObserveQuery(entity, OpCount, time.Since(start), err)
	if err != nil {
		return 0, e.fail(ctx, entity, OpCount, stmt.SQL, err)
	}
	return int(total), nil
}

func queryRows[T any](
	ctx context.Context, e *Executor, q Querier, entity, op string, stmt query.Statement, scan RowScanner[T],
) ([]T, error) {
	e.debug(ctx, entity, op, stmt)
	start := time.Now()
	items, err := scanAll(ctx, e.store.Dialect(), q, stmt, scan)
	e.observer.ObserveQuery(entity, op, time.Since(start), err)
	if err != nil {
		return nil, e.fail(ctx, entity, op, stmt.SQL, err)
	}
	return items, nil
}

func scanAll[T any](ctx context.Context, d Dialect, q Querier, stmt query.Statement, scan RowScanner[T]) ([]T, error) {
	rows, err := q.QueryContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	items := []T{}
	for rows.Next() {
		item, err := scan(d, rows)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (e *Executor) release(ctx context.Context, conn Conn) {
	if err := conn.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		logger.FromContextOr(ctx, e.logger).Warn("Failed to release connection", zap.Error(err))
	}
}

func (e *Executor) debug(ctx context.Context, entity, op string, stmt query.Statement) {
	logger.FromContextOr(ctx, e.logger).Debug("Query",
		zap.String("entity", entity),
		zap.String("op", op),
		zap.String("sql", stmt.SQL),
		zap.Int("args", len(stmt.Args)),
	)
}

// fail logs the failing statement and wraps err into a QueryError.
// A done context is reported as such.
func (e *Executor) fail(ctx context.Context, entity, op, sqlText string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	logger.FromContextOr(ctx, e.logger).Error("Query failed",
		zap.String("entity", entity),
		zap.String("op", op),
		zap.String("sql", sqlText),
		zap.Error(err),
	)
	return &QueryError{Op: op, Query: sqlText, Err: err}
}
