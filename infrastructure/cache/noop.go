package cache

import (
	"context"
	"time"

	"wayfarer-backend/application/ports"
)

// NoopStore is the degraded-mode KeyValueStore used when the cache service
// is unreachable: every get is a miss and every write is silently skipped.
// The system stays fully correct, only slower.
type NoopStore struct{}

var _ ports.KeyValueStore = NoopStore{}

// NewNoopStore creates a no-op store
func NewNoopStore() *NoopStore {
	return &NoopStore{}
}

func (NoopStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (NoopStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}

func (NoopStore) Delete(ctx context.Context, keys ...string) error {
	return nil
}

func (NoopStore) DeleteMatching(ctx context.Context, pattern string) error {
	return nil
}

func (NoopStore) Close() error {
	return nil
}
