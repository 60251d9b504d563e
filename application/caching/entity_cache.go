package caching

import (
	"context"
	"encoding/json"
	"time"

	"wayfarer-backend/application/ports"

	"go.uber.org/zap"
)

// Default time-to-live per entity namespace. Not renewed on read.
const (
	DefaultUserTTL      = 3600 * time.Second
	DefaultItineraryTTL = 1800 * time.Second
)

// EntityCache caches single-entity lookups keyed by entity kind + ID.
// Values are stored as JSON snapshots: callers must pass plain data, and what
// comes back on a hit is a copy, never a live reference.
//
// Every method is fail-soft. A store or serialization problem is logged and
// surfaces as a miss or a skipped write; callers cannot distinguish a broken
// cache from a cold one, which is the point.
type EntityCache struct {
	store   ports.KeyValueStore
	logger  *zap.Logger
	ttls    map[string]time.Duration
	metrics MetricsRecorder
}

// NewEntityCache creates an entity cache over the given store
func NewEntityCache(store ports.KeyValueStore, logger *zap.Logger) *EntityCache {
	return &EntityCache{
		store:  store,
		logger: logger,
		ttls: map[string]time.Duration{
			KindUser:      DefaultUserTTL,
			KindItinerary: DefaultItineraryTTL,
		},
		metrics: nopRecorder{},
	}
}

// SetTTL overrides the TTL for an entity kind
func (c *EntityCache) SetTTL(kind string, ttl time.Duration) {
	c.ttls[kind] = ttl
}

// SetMetrics attaches a recorder for hit/miss/invalidation counters
func (c *EntityCache) SetMetrics(m MetricsRecorder) {
	if m != nil {
		c.metrics = m
	}
}

// CacheEntity stores a snapshot of an entity under its kind+ID key
func (c *EntityCache) CacheEntity(ctx context.Context, kind, id string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("skipping cache population, value not serializable",
			zap.String("kind", kind),
			zap.String("id", id),
			zap.Error(err),
		)
		return
	}

	key := EntityKey(kind, id)
	if err := c.store.Set(ctx, key, data, c.ttlFor(kind)); err != nil {
		c.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// GetEntity loads a cached entity into dest, reporting whether it was a hit.
// A malformed cached payload counts as a miss; the entry is overwritten on
// the next successful population.
func (c *EntityCache) GetEntity(ctx context.Context, kind, id string, dest interface{}) bool {
	key := EntityKey(kind, id)
	data, found, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		c.metrics.RecordCacheMiss(ctx, kind)
		return false
	}
	if !found {
		c.metrics.RecordCacheMiss(ctx, kind)
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Warn("discarding malformed cache entry", zap.String("key", key), zap.Error(err))
		c.metrics.RecordCacheMiss(ctx, kind)
		return false
	}
	c.metrics.RecordCacheHit(ctx, kind)
	return true
}

// InvalidateEntity removes an entity's cache entry
func (c *EntityCache) InvalidateEntity(ctx context.Context, kind, id string) {
	key := EntityKey(kind, id)
	if err := c.store.Delete(ctx, key); err != nil {
		c.logger.Warn("cache delete failed", zap.String("key", key), zap.Error(err))
		return
	}
	c.metrics.RecordCacheInvalidation(ctx, kind)
}

func (c *EntityCache) ttlFor(kind string) time.Duration {
	if ttl, ok := c.ttls[kind]; ok {
		return ttl
	}
	return DefaultItineraryTTL
}
