// Package pagecache is a read-through cache of result pages in a key-value store.
package pagecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/plantdex/internal/db"
	"github.com/kailas-cloud/plantdex/internal/logger"
)

// DefaultTTL applies when the configured TTL is not positive.
const DefaultTTL = time.Hour

// store is the consumer interface for the page cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteByPrefix(ctx context.Context, prefix string) (int, error)
}

// Key identifies one cached page.
type Key struct {
	Op      string
	Term    string
	Page    int
	PerPage int
}

// Cache stores JSON-encoded values under hashed keys.
type Cache struct {
	store      store
	ttl        time.Duration
	prefix     string
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a page cache.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	s store,
	ttl time.Duration,
	prefix string,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		store:      s,
		ttl:        ttl,
		prefix:     prefix,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Load returns the cached value for key, or calls load and caches its result.
// Cache failures are logged and bypassed; load errors are returned and never cached.
// A nil cache always calls load.
func Load[T any](ctx context.Context, c *Cache, key Key, load func(context.Context) (T, error)) (T, error) {
	if c == nil {
		return load(ctx)
	}
	k := c.cacheKey(key)

	var cached T
	if c.get(ctx, k, &cached) {
		c.incCache("hit")
		return cached, nil
	}
	c.incCache("miss")

	v, err := load(ctx)
	if err != nil {
		return v, err
	}
	c.put(ctx, k, v)
	return v, nil
}

// Flush drops every cached page. Run it after the plant catalog is reloaded.
func (c *Cache) Flush(ctx context.Context) (int, error) {
	n, err := c.store.DeleteByPrefix(ctx, c.pagePrefix())
	if err != nil {
		return n, fmt.Errorf("flush page cache: %w", err)
	}
	c.log(ctx).Info("Flushed page cache", zap.Int("keys", n))
	return n, nil
}

func (c *Cache) pagePrefix() string { return c.prefix + "page:" }

func (c *Cache) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *Cache) cacheKey(k Key) string {
	h := sha256.New()
	for _, part := range []string{k.Op, k.Term, strconv.Itoa(k.Page), strconv.Itoa(k.PerPage)} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return c.pagePrefix() + hex.EncodeToString(h.Sum(nil))
}

func (c *Cache) get(ctx context.Context, key string, dest any) bool {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.log(ctx).Warn("Failed to get cached page", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if len(data) == 0 {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		c.log(ctx).Warn("Failed to parse cached page", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c *Cache) put(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.log(ctx).Warn("Failed to encode page for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.log(ctx).Warn("Failed to cache page", zap.String("key", key), zap.Error(fmt.Errorf("set: %w", err)))
	}
}

func (c *Cache) log(ctx context.Context) *zap.Logger {
	return logger.FromContextOr(ctx, c.logger)
}
