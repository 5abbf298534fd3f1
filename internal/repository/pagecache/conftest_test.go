package pagecache

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/plantdex/internal/db"
	"github.com/kailas-cloud/plantdex/internal/domain/page"
	"github.com/kailas-cloud/plantdex/internal/domain/plant"
	"github.com/kailas-cloud/plantdex/internal/domain/search"
)

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	delFn func(ctx context.Context, prefix string) (int, error)
}

func (m *mockKVStore) DeleteByPrefix(ctx context.Context, prefix string) (int, error) {
	if m.delFn != nil {
		return m.delFn(ctx, prefix)
	}
	return 0, nil
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

// memKVStore is an in-memory store that remembers writes.
type memKVStore struct {
	data map[string][]byte
	ttls map[string]time.Duration
}

func newMemKVStore() *memKVStore {
	return &memKVStore{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memKVStore) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *memKVStore) DeleteByPrefix(_ context.Context, prefix string) (int, error) {
	n := 0
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			delete(m.data, k)
			delete(m.ttls, k)
			n++
		}
	}
	return n, nil
}

func (m *memKVStore) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

type mockPlantRepo struct {
	searchResult page.Page[search.Scored[plant.Plant]]
	findResult   page.Page[plant.Plant]
	byID         plant.Plant
	err          error
	searchCalls  int
	findCalls    int
	byIDCalls    int
}

func (m *mockPlantRepo) Search(
	_ context.Context, _ search.Query, _ page.Parameters,
) (page.Page[search.Scored[plant.Plant]], error) {
	m.searchCalls++
	return m.searchResult, m.err
}

func (m *mockPlantRepo) Find(_ context.Context, _ *string, _ page.Parameters) (page.Page[plant.Plant], error) {
	m.findCalls++
	return m.findResult, m.err
}

func (m *mockPlantRepo) FindByID(_ context.Context, _ int64) (plant.Plant, error) {
	m.byIDCalls++
	return m.byID, m.err
}

func newTestCache(t *testing.T, s store) *Cache {
	t.Helper()
	return New(s, time.Minute, "test:", nil, zap.NewNop())
}
