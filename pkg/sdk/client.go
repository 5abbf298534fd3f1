package plantdex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/plantdex/internal/db"
	"github.com/kailas-cloud/plantdex/internal/db/postgres"
	"github.com/kailas-cloud/plantdex/internal/db/sqlite"
	dommap "github.com/kailas-cloud/plantdex/internal/domain/gardenmap"
	"github.com/kailas-cloud/plantdex/internal/domain/page"
	domplant "github.com/kailas-cloud/plantdex/internal/domain/plant"
	domplanting "github.com/kailas-cloud/plantdex/internal/domain/planting"
	"github.com/kailas-cloud/plantdex/internal/domain/search"
	maprepo "github.com/kailas-cloud/plantdex/internal/repository/gardenmap"
	plantrepo "github.com/kailas-cloud/plantdex/internal/repository/plant"
	plantingrepo "github.com/kailas-cloud/plantdex/internal/repository/planting"
	mapuc "github.com/kailas-cloud/plantdex/internal/usecase/gardenmap"
	healthuc "github.com/kailas-cloud/plantdex/internal/usecase/health"
	plantuc "github.com/kailas-cloud/plantdex/internal/usecase/plant"
	plantinguc "github.com/kailas-cloud/plantdex/internal/usecase/planting"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultAcquireTimeout   = 5 * time.Second
	defaultMaxOpenConns     = 25
)

// Internal interfaces, swapped for mocks in tests.
type plantUseCase interface {
	Search(ctx context.Context, raw string, params page.Parameters) (page.Page[search.Scored[domplant.Plant]], error)
	Find(ctx context.Context, name *string, params page.Parameters) (page.Page[domplant.Plant], error)
	FindByID(ctx context.Context, id int64) (domplant.Plant, error)
}

type plantingUseCase interface {
	Find(ctx context.Context, params domplanting.SearchParameters) ([]domplanting.Planting, error)
	Create(ctx context.Context, d domplanting.Draft) (domplanting.Planting, error)
	Update(ctx context.Context, id int64, patch domplanting.Patch) (domplanting.Planting, error)
	Delete(ctx context.Context, id int64) error
}

type mapUseCase interface {
	Find(ctx context.Context, params dommap.SearchParameters, pp page.Parameters) (page.Page[dommap.Map], error)
	FindByID(ctx context.Context, id int64) (dommap.Map, error)
	Create(ctx context.Context, d dommap.Draft) (dommap.Map, error)
}

// closer is the part of the store the Client keeps after wiring.
type closer interface {
	Ping(ctx context.Context) error
	Close() error
}

// Client is the plantdex SDK entry point. It is safe for concurrent use.
type Client struct {
	store       closer
	plantSvc    plantUseCase
	plantingSvc plantingUseCase
	mapSvc      mapUseCase
	healthSvc   healthUseCase
	pagination  pagination
	obs         *observer
}

// New creates a Client, opens the database and waits until it answers.
// The provided context bounds the readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		defaultPerPage:   page.DefaultPerPage,
		maxPerPage:       page.DefaultMaxLimit,
		maxOpenConns:     defaultMaxOpenConns,
		acquireTimeout:   defaultAcquireTimeout,
		readinessTimeout: defaultReadinessTimeout,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.driver == "" {
		return nil, errors.New("plantdex: database required (use WithPostgres or WithSQLite)")
	}
	if cfg.defaultPerPage < 1 || cfg.maxPerPage < cfg.defaultPerPage {
		return nil, fmt.Errorf("plantdex: invalid pagination %d/%d", cfg.defaultPerPage, cfg.maxPerPage)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := createStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("plantdex: database not ready: %w", err)
	}

	return wireClient(store, cfg, obs), nil
}

func createStore(ctx context.Context, cfg *clientConfig) (*db.Pool, error) {
	poolCfg := db.PoolConfig{
		MaxOpenConns:   cfg.maxOpenConns,
		MaxIdleConns:   cfg.maxOpenConns,
		AcquireTimeout: cfg.acquireTimeout,
	}
	switch cfg.driver {
	case driverPostgres:
		p, err := postgres.Open(postgres.Config{
			DSN:                 cfg.dsn,
			SimilarityThreshold: cfg.similarityThreshold,
			Pool:                poolCfg,
		}, nil)
		if err != nil {
			return nil, fmt.Errorf("plantdex: open postgres: %w", err)
		}
		return p, nil
	case driverSQLite:
		p, err := sqlite.Open(ctx, sqlite.Config{
			Path:                cfg.path,
			SimilarityThreshold: cfg.similarityThreshold,
			Pool:                poolCfg,
		}, nil)
		if err != nil {
			return nil, fmt.Errorf("plantdex: open sqlite: %w", err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("plantdex: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	exec := db.NewExecutor(store,
		db.WithConsistentPages(cfg.consistentPages),
		db.WithObserver(obs),
	)

	return &Client{
		store:       store,
		plantSvc:    plantuc.New(plantrepo.New(exec)),
		plantingSvc: plantinguc.New(plantingrepo.New(exec)),
		mapSvc:      mapuc.New(maprepo.New(exec)),
		healthSvc:   healthuc.New(store, nil),
		pagination:  pagination{defaultPerPage: cfg.defaultPerPage, maxPerPage: cfg.maxPerPage},
		obs:         obs,
	}
}

// Close releases all resources.
func (c *Client) Close() error {
	if c.store == nil {
		return nil
	}
	return c.store.Close()
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe(resourceClient, "ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Plants returns the plant catalog service.
func (c *Client) Plants() *PlantService {
	return &PlantService{svc: c.plantSvc, pagination: c.pagination, obs: c.obs}
}

// Plantings returns the planting service.
func (c *Client) Plantings() *PlantingService {
	return &PlantingService{svc: c.plantingSvc, obs: c.obs}
}

// Maps returns the garden map service.
func (c *Client) Maps() *MapService {
	return &MapService{svc: c.mapSvc, pagination: c.pagination, obs: c.obs}
}

type pagination struct {
	defaultPerPage int
	maxPerPage     int
}

// parameters validates a page request. perPage <= 0 selects the default page size;
// pageNum <= 0 is rejected.
func (p pagination) parameters(pageNum, perPage int) (page.Parameters, error) {
	if perPage <= 0 {
		perPage = p.defaultPerPage
	}
	return page.NewParameters(pageNum, perPage, p.maxPerPage)
}
