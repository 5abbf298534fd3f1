// Package redis backs the page cache with Redis through rueidis.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/plantdex/internal/db"
)

var (
	_ db.KVStore = (*Store)(nil)
	_ db.Pinger  = (*Store)(nil)
)

const (
	clientName          = "plantdex"
	defaultWriteTimeout = 2 * time.Second
	readyPollInterval   = 100 * time.Millisecond
)

// Config holds connection parameters for a Redis store.
type Config struct {
	Addrs    []string
	Username string
	Password string
	DB       int
	// Standalone skips cluster topology discovery. Required for DeleteByPrefix
	// to see every key, since SCAN only walks one node.
	Standalone   bool
	WriteTimeout time.Duration
}

// Store is the cache store. Client-side caching is off: cached pages carry their own TTL.
type Store struct {
	client rueidis.Client
}

// NewStore creates a store. No connection is made until the first command.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}
	writeTimeout := cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:       cfg.Addrs,
		Username:          cfg.Username,
		Password:          cfg.Password,
		SelectDB:          cfg.DB,
		ClientName:        clientName,
		ForceSingleClient: cfg.Standalone,
		ConnWriteTimeout:  writeTimeout,
		DisableCache:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("create redis client: %w", err)
	}
	return &Store{client: client}, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Do(ctx, s.client.B().Ping().Build()).Error(); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close shuts down the client.
func (s *Store) Close() {
	s.client.Close()
}

// WaitForReady pings every readyPollInterval until the store answers or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(readyPollInterval)
	defer ticker.Stop()

	var last error
	for {
		select {
		case <-ctx.Done():
			if last != nil {
				return fmt.Errorf("redis not ready after %s: %w", timeout, last)
			}
			return fmt.Errorf("redis not ready after %s: %w", timeout, ctx.Err())
		case <-ticker.C:
			if last = s.Ping(ctx); last == nil {
				return nil
			}
		}
	}
}
