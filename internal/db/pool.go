package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/kailas-cloud/plantdex/internal/domain"
)

// Compile-time check: Pool implements Store.
var _ Store = (*Pool)(nil)

// Defaults for PoolConfig zero values.
const (
	DefaultAcquireTimeout = 5 * time.Second
	DefaultMaxOpenConns   = 25
	DefaultMaxIdleConns   = 5
)

// BreakerConfig controls the circuit breaker around connection acquisition.
type BreakerConfig struct {
	Enabled      bool
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	FailureRatio float64
	MinRequests  uint32
}

// PoolConfig sizes the connection pool.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AcquireTimeout  time.Duration
	Breaker         BreakerConfig
}

// Pool is the process-wide connection pool.
type Pool struct {
	db             *sql.DB
	dialect        Dialect
	acquireTimeout time.Duration
	breaker        *gobreaker.CircuitBreaker
	logger         *zap.Logger
}

// NewPool wraps an opened *sql.DB. The pool takes ownership of sqlDB.
func NewPool(sqlDB *sql.DB, dialect Dialect, cfg PoolConfig, logger *zap.Logger) *Pool {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxOpenConns <= 0 {
		cfg.MaxOpenConns = DefaultMaxOpenConns
	}
	if cfg.MaxIdleConns <= 0 {
		cfg.MaxIdleConns = DefaultMaxIdleConns
	}
	if cfg.AcquireTimeout <= 0 {
		cfg.AcquireTimeout = DefaultAcquireTimeout
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	p := &Pool{
		db:             sqlDB,
		dialect:        dialect,
		acquireTimeout: cfg.AcquireTimeout,
		logger:         logger,
	}
	if cfg.Breaker.Enabled {
		p.breaker = newBreaker(dialect.Name(), cfg.Breaker, logger)
	}
	return p
}

func newBreaker(name string, cfg BreakerConfig, logger *zap.Logger) *gobreaker.CircuitBreaker {
	minRequests := cfg.MinRequests
	if minRequests == 0 {
		minRequests = 3
	}
	ratio := cfg.FailureRatio
	if ratio <= 0 {
		ratio = 0.6
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "db-" + name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= minRequests && failureRatio >= ratio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Database breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		// A caller giving up is not a store failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
}

// Dialect returns the SQL dialect of the underlying driver.
func (p *Pool) Dialect() Dialect { return p.dialect }

// Conn checks out one connection, waiting at most the acquire timeout.
// Failure to acquire yields domain.ErrStoreUnavailable, unless ctx itself is done.
func (p *Pool) Conn(ctx context.Context) (Conn, error) {
	acquire := func() (any, error) {
		actx, cancel := context.WithTimeout(ctx, p.acquireTimeout)
		defer cancel()
		return p.db.Conn(actx)
	}

	var (
		res any
		err error
	)
	if p.breaker != nil {
		res, err = p.breaker.Execute(acquire)
	} else {
		res, err = acquire()
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, &Error{Op: OpAcquire, Err: err})
	}
	return res.(*sql.Conn), nil
}

// Ping checks connectivity.
func (p *Pool) Ping(ctx context.Context) error {
	if err := p.db.PingContext(ctx); err != nil {
		return &Error{Op: OpPing, Err: err}
	}
	return nil
}

// Close closes every connection of the pool.
func (p *Pool) Close() error {
	return p.db.Close()
}

// WaitForReady polls Ping until the database responds or timeout expires.
func (p *Pool) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := p.Ping(ctx); err == nil {
		return nil
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := p.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// Stats returns pool statistics.
func (p *Pool) Stats() sql.DBStats { return p.db.Stats() }
