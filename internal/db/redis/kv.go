package redis

import (
	"context"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/plantdex/internal/db"
)

// scanBatch is the COUNT hint per SCAN round trip.
const scanBatch = 500

// Get retrieves a value by key. A missing key yields db.ErrKeyNotFound.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Do(ctx, s.client.B().Get().Key(key).Build()).AsBytes()
	if rueidis.IsRedisNil(err) {
		return nil, db.ErrKeyNotFound
	}
	if err != nil {
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	return data, nil
}

// SetWithTTL stores a value that expires after ttl.
func (s *Store) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	cmd := s.client.B().Set().Key(key).Value(rueidis.BinaryString(value)).Ex(ttl).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpSet, Err: err}
	}
	return nil
}

// DeleteByPrefix unlinks every key starting with prefix and returns how many
// were removed. prefix must not contain glob metacharacters. Keys are unlinked
// one at a time so a batch never spans hash slots; against a cluster client
// SCAN still walks a single node, so flush through a Standalone store.
func (s *Store) DeleteByPrefix(ctx context.Context, prefix string) (int, error) {
	var (
		cursor  uint64
		removed int
	)
	for {
		cmd := s.client.B().Scan().Cursor(cursor).Match(prefix + "*").Count(scanBatch).Build()
		entry, err := s.client.Do(ctx, cmd).AsScanEntry()
		if err != nil {
			return removed, &db.Error{Op: db.OpScan, Err: err}
		}
		for _, key := range entry.Elements {
			n, err := s.client.Do(ctx, s.client.B().Unlink().Key(key).Build()).AsInt64()
			if err != nil {
				return removed, &db.Error{Op: db.OpUnlink, Err: err}
			}
			removed += int(n)
		}
		if entry.Cursor == 0 {
			return removed, nil
		}
		cursor = entry.Cursor
	}
}
