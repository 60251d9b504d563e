package caching

import (
	"context"
	"encoding/json"
	"time"

	"wayfarer-backend/application/ports"

	"go.uber.org/zap"
)

// Default time-to-live per list namespace. Public pages churn faster than a
// single user's own listing, so they expire sooner.
const (
	DefaultUserListTTL   = 600 * time.Second
	DefaultPublicListTTL = 300 * time.Second
)

// QueryCache caches paginated, filtered list results keyed by a scope (a
// user ID, or PublicScope) plus a canonical encoding of the query filters.
// The cached value is the full response envelope, items plus pagination
// metadata, so a hit never recomputes pagination math.
//
// Fail-soft like EntityCache: errors degrade to misses and skipped writes.
type QueryCache struct {
	store         ports.KeyValueStore
	logger        *zap.Logger
	userListTTL   time.Duration
	publicListTTL time.Duration
	metrics       MetricsRecorder
}

// NewQueryCache creates a query-result cache over the given store
func NewQueryCache(store ports.KeyValueStore, logger *zap.Logger) *QueryCache {
	return &QueryCache{
		store:         store,
		logger:        logger,
		userListTTL:   DefaultUserListTTL,
		publicListTTL: DefaultPublicListTTL,
		metrics:       nopRecorder{},
	}
}

// SetMetrics attaches a recorder for hit/miss/invalidation counters
func (c *QueryCache) SetMetrics(m MetricsRecorder) {
	if m != nil {
		c.metrics = m
	}
}

// SetTTLs overrides the list TTLs
func (c *QueryCache) SetTTLs(userList, publicList time.Duration) {
	if userList > 0 {
		c.userListTTL = userList
	}
	if publicList > 0 {
		c.publicListTTL = publicList
	}
}

// CacheList stores a response envelope for one scope + filter combination
func (c *QueryCache) CacheList(ctx context.Context, scope string, filter ports.ListFilter, envelope interface{}) {
	data, err := json.Marshal(envelope)
	if err != nil {
		c.logger.Warn("skipping list cache population, envelope not serializable",
			zap.String("scope", scope),
			zap.Error(err),
		)
		return
	}

	key := ListKey(scope, filter)
	if err := c.store.Set(ctx, key, data, c.ttlFor(scope)); err != nil {
		c.logger.Warn("list cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// GetList loads a cached envelope into dest, reporting whether it was a hit
func (c *QueryCache) GetList(ctx context.Context, scope string, filter ports.ListFilter, dest interface{}) bool {
	key := ListKey(scope, filter)
	data, found, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn("list cache get failed", zap.String("key", key), zap.Error(err))
		c.metrics.RecordCacheMiss(ctx, listKind(scope))
		return false
	}
	if !found {
		c.metrics.RecordCacheMiss(ctx, listKind(scope))
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Warn("discarding malformed list cache entry", zap.String("key", key), zap.Error(err))
		c.metrics.RecordCacheMiss(ctx, listKind(scope))
		return false
	}
	c.metrics.RecordCacheHit(ctx, listKind(scope))
	return true
}

// InvalidateScope removes every list entry ever cached under a scope,
// regardless of which filter combination produced it
func (c *QueryCache) InvalidateScope(ctx context.Context, scope string) {
	pattern := ScopePattern(scope)
	if err := c.store.DeleteMatching(ctx, pattern); err != nil {
		c.logger.Warn("scope invalidation failed", zap.String("pattern", pattern), zap.Error(err))
		return
	}
	c.metrics.RecordCacheInvalidation(ctx, listKind(scope))
}

func (c *QueryCache) ttlFor(scope string) time.Duration {
	if scope == PublicScope {
		return c.publicListTTL
	}
	return c.userListTTL
}

func listKind(scope string) string {
	if scope == PublicScope {
		return "public_list"
	}
	return "user_list"
}
