package plantdex

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

const (
	driverPostgres = "postgres"
	driverSQLite   = "sqlite"
)

type clientConfig struct {
	driver string // "postgres" or "sqlite"
	dsn    string
	path   string

	similarityThreshold float64
	consistentPages     bool
	defaultPerPage      int
	maxPerPage          int

	maxOpenConns     int
	acquireTimeout   time.Duration
	readinessTimeout time.Duration

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithPostgres connects to PostgreSQL. The pg_trgm extension must be installed;
// run `plantdex migrate` once to create the schema.
func WithPostgres(dsn string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverPostgres
		c.dsn = dsn
	})
}

// WithSQLite opens (or creates) a local database file and migrates it.
func WithSQLite(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverSQLite
		c.path = path
	})
}

// WithSimilarityThreshold sets the minimum trigram similarity a search hit needs.
// Default: 0.3.
func WithSimilarityThreshold(t float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.similarityThreshold = t
	})
}

// WithPagination sets the page size used when callers pass perPage <= 0
// and the largest page size accepted. Defaults: 20 and 100.
func WithPagination(defaultPerPage, maxPerPage int) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultPerPage = defaultPerPage
		c.maxPerPage = maxPerPage
	})
}

// WithConsistentPages runs each page query and its count in one read-only
// snapshot transaction, so items and totals agree under concurrent writes.
func WithConsistentPages() Option {
	return optionFunc(func(c *clientConfig) {
		c.consistentPages = true
	})
}

// WithPool tunes the connection pool. Zero values keep the defaults
// (25 connections, 5s acquire timeout).
func WithPool(maxOpenConns int, acquireTimeout time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxOpenConns = maxOpenConns
		c.acquireTimeout = acquireTimeout
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
