package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/plantdex/internal/config"
	"github.com/kailas-cloud/plantdex/internal/db"
	"github.com/kailas-cloud/plantdex/internal/db/postgres"
	dbRedis "github.com/kailas-cloud/plantdex/internal/db/redis"
	"github.com/kailas-cloud/plantdex/internal/db/sqlite"
	"github.com/kailas-cloud/plantdex/internal/metrics"
	maprepo "github.com/kailas-cloud/plantdex/internal/repository/gardenmap"
	"github.com/kailas-cloud/plantdex/internal/repository/pagecache"
	plantrepo "github.com/kailas-cloud/plantdex/internal/repository/plant"
	plantingrepo "github.com/kailas-cloud/plantdex/internal/repository/planting"
	mapuc "github.com/kailas-cloud/plantdex/internal/usecase/gardenmap"
	healthuc "github.com/kailas-cloud/plantdex/internal/usecase/health"
	plantuc "github.com/kailas-cloud/plantdex/internal/usecase/plant"
	plantinguc "github.com/kailas-cloud/plantdex/internal/usecase/planting"
)

// app is the composition root shared by serve, search and find.
type app struct {
	pool  *db.Pool
	cache *dbRedis.Store

	plants    *plantuc.Service
	plantings *plantinguc.Service
	maps      *mapuc.Service
	health    *healthuc.Service
}

func newApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*app, error) {
	pool, err := openPool(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	readiness := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
	if err := pool.WaitForReady(ctx, readiness); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}
	logger.Info("Connected to database", zap.String("driver", cfg.Database.Driver))

	metrics.RegisterQueryMetrics()
	exec := db.NewExecutor(pool,
		db.WithConsistentPages(cfg.Database.ConsistentPages),
		db.WithObserver(metrics.QueryObserver{}),
		db.WithLogger(logger),
	)

	a := &app{pool: pool}

	var plants plantuc.Repository = plantrepo.New(exec)
	// Pass a nil interface, not a typed nil pointer, when the cache is off.
	var cachePinger healthuc.CachePinger
	if cfg.Cache.Enabled {
		store, cache, err := openCache(cfg.Cache, logger)
		if err != nil {
			_ = pool.Close()
			return nil, err
		}
		a.cache = store
		cachePinger = store
		plants = pagecache.NewPlants(plants, cache)
		logger.Info("Page cache enabled", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	a.plants = plantuc.New(plants)
	a.plantings = plantinguc.New(plantingrepo.New(exec))
	a.maps = mapuc.New(maprepo.New(exec))
	a.health = healthuc.New(pool, cachePinger)
	return a, nil
}

func openPool(ctx context.Context, dc config.DatabaseConfig, logger *zap.Logger) (*db.Pool, error) {
	poolCfg := db.PoolConfig{
		MaxOpenConns:    dc.MaxOpenConns,
		MaxIdleConns:    dc.MaxIdleConns,
		ConnMaxLifetime: time.Duration(dc.ConnMaxLifetimeSec) * time.Second,
		AcquireTimeout:  time.Duration(dc.AcquireTimeoutSec) * time.Second,
		Breaker: db.BreakerConfig{
			Enabled:      dc.Breaker.Enabled,
			MaxRequests:  dc.Breaker.MaxRequests,
			MinRequests:  dc.Breaker.MinRequests,
			Interval:     time.Duration(dc.Breaker.IntervalSec) * time.Second,
			Timeout:      time.Duration(dc.Breaker.TimeoutSec) * time.Second,
			FailureRatio: dc.Breaker.FailureRatio,
		},
	}

	switch dc.Driver {
	case config.DriverPostgres:
		pool, err := postgres.Open(postgres.Config{
			DSN:                 dc.DSN,
			SimilarityThreshold: dc.SimilarityThreshold,
			Pool:                poolCfg,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return pool, nil
	case config.DriverSQLite:
		pool, err := sqlite.Open(ctx, sqlite.Config{
			Path:                dc.Path,
			SimilarityThreshold: dc.SimilarityThreshold,
			Pool:                poolCfg,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return pool, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", dc.Driver)
	}
}

func openCache(cc config.CacheConfig, logger *zap.Logger) (*dbRedis.Store, *pagecache.Cache, error) {
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:      cc.Addrs,
		Password:   cc.Password,
		Standalone: cc.Standalone,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create cache store: %w", err)
	}
	cache := pagecache.New(store, time.Duration(cc.TTLSec)*time.Second,
		cc.KeyPrefix, metrics.PageCacheTotal, logger)
	return store, cache, nil
}

func (a *app) close() {
	if a.cache != nil {
		a.cache.Close()
	}
	_ = a.pool.Close()
}
