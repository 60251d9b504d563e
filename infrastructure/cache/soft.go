package cache

import (
	"context"
	"time"

	"wayfarer-backend/application/ports"

	"go.uber.org/zap"
)

// SoftStore decorates a KeyValueStore with fail-soft semantics: every error
// from the underlying store is logged and converted into a miss or a no-op.
// Applying this once at the adapter boundary gives every higher-level cache
// operation fail-soft behavior by composition, instead of repeating error
// handling in each call site. From a caller's perspective, "cache
// unavailable" and "cache miss" are indistinguishable.
type SoftStore struct {
	inner  ports.KeyValueStore
	logger *zap.Logger
}

var _ ports.KeyValueStore = (*SoftStore)(nil)

// NewSoftStore wraps a store with fail-soft error handling
func NewSoftStore(inner ports.KeyValueStore, logger *zap.Logger) *SoftStore {
	return &SoftStore{inner: inner, logger: logger}
}

// Get converts errors into misses
func (s *SoftStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, found, err := s.inner.Get(ctx, key)
	if err != nil {
		s.logger.Warn("cache get degraded to miss", zap.String("key", key), zap.Error(err))
		return nil, false, nil
	}
	return data, found, nil
}

// Set converts errors into skipped writes
func (s *SoftStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.inner.Set(ctx, key, value, ttl); err != nil {
		s.logger.Warn("cache set skipped", zap.String("key", key), zap.Error(err))
	}
	return nil
}

// Delete converts errors into no-ops; the entry ages out at TTL instead
func (s *SoftStore) Delete(ctx context.Context, keys ...string) error {
	if err := s.inner.Delete(ctx, keys...); err != nil {
		s.logger.Warn("cache delete skipped", zap.Strings("keys", keys), zap.Error(err))
	}
	return nil
}

// DeleteMatching converts errors into no-ops
func (s *SoftStore) DeleteMatching(ctx context.Context, pattern string) error {
	if err := s.inner.DeleteMatching(ctx, pattern); err != nil {
		s.logger.Warn("cache pattern delete skipped", zap.String("pattern", pattern), zap.Error(err))
	}
	return nil
}

// Close passes through; shutdown errors are still reported
func (s *SoftStore) Close() error {
	return s.inner.Close()
}
