package caching

import (
	"context"
	"testing"
	"time"

	"wayfarer-backend/application/ports"
	"wayfarer-backend/infrastructure/cache"
	"wayfarer-backend/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type listEnvelope struct {
	Items      []string              `json:"items"`
	Pagination common.PaginationInfo `json:"pagination"`
}

func TestQueryCache_RoundTrip(t *testing.T) {
	store := cache.NewMemoryStore()
	defer store.Close()
	qc := NewQueryCache(store, zap.NewNop())
	ctx := context.Background()
	filter := ports.ListFilter{Page: 1, Limit: 10, Sort: "-createdAt"}

	var dest listEnvelope
	assert.False(t, qc.GetList(ctx, "user-1", filter, &dest))

	envelope := listEnvelope{
		Items:      []string{"it1", "it2"},
		Pagination: common.PaginationInfo{Page: 1, Limit: 10, Total: 2, TotalPages: 1},
	}
	qc.CacheList(ctx, "user-1", filter, envelope)

	require.True(t, qc.GetList(ctx, "user-1", filter, &dest))
	assert.Equal(t, envelope, dest)
}

func TestQueryCache_FilterOrderDoesNotMatter(t *testing.T) {
	store := cache.NewMemoryStore()
	defer store.Close()
	qc := NewQueryCache(store, zap.NewNop())
	ctx := context.Background()

	written := ports.ListFilter{Page: 1, Limit: 10, Status: "planning", Destination: "Kyoto"}
	read := ports.ListFilter{Destination: "Kyoto", Status: "planning", Limit: 10, Page: 1}

	qc.CacheList(ctx, "user-1", written, listEnvelope{Items: []string{"it1"}})

	var dest listEnvelope
	assert.True(t, qc.GetList(ctx, "user-1", read, &dest))
}

func TestQueryCache_DistinctFiltersAreDistinctEntries(t *testing.T) {
	store := cache.NewMemoryStore()
	defer store.Close()
	qc := NewQueryCache(store, zap.NewNop())
	ctx := context.Background()

	page1 := ports.ListFilter{Page: 1, Limit: 10}
	page2 := ports.ListFilter{Page: 2, Limit: 10}

	qc.CacheList(ctx, "user-1", page1, listEnvelope{Items: []string{"a"}})

	var dest listEnvelope
	assert.False(t, qc.GetList(ctx, "user-1", page2, &dest), "a different page must not hit")
}

func TestQueryCache_InvalidateScope(t *testing.T) {
	store := cache.NewMemoryStore()
	defer store.Close()
	qc := NewQueryCache(store, zap.NewNop())
	ctx := context.Background()

	// Several filter combinations under one scope, plus entries that must
	// survive the purge
	qc.CacheList(ctx, "user-1", ports.ListFilter{Page: 1, Limit: 10}, listEnvelope{})
	qc.CacheList(ctx, "user-1", ports.ListFilter{Page: 2, Limit: 10}, listEnvelope{})
	qc.CacheList(ctx, "user-1", ports.ListFilter{Page: 1, Limit: 10, Status: "ongoing"}, listEnvelope{})
	qc.CacheList(ctx, "user-2", ports.ListFilter{Page: 1, Limit: 10}, listEnvelope{})
	qc.CacheList(ctx, PublicScope, ports.ListFilter{Page: 1, Limit: 10}, listEnvelope{})

	require.Equal(t, 5, store.Len())

	qc.InvalidateScope(ctx, "user-1")

	var dest listEnvelope
	assert.False(t, qc.GetList(ctx, "user-1", ports.ListFilter{Page: 1, Limit: 10}, &dest))
	assert.False(t, qc.GetList(ctx, "user-1", ports.ListFilter{Page: 2, Limit: 10}, &dest))
	assert.False(t, qc.GetList(ctx, "user-1", ports.ListFilter{Page: 1, Limit: 10, Status: "ongoing"}, &dest))
	assert.True(t, qc.GetList(ctx, "user-2", ports.ListFilter{Page: 1, Limit: 10}, &dest))
	assert.True(t, qc.GetList(ctx, PublicScope, ports.ListFilter{Page: 1, Limit: 10}, &dest))
	assert.Equal(t, 2, store.Len())
}

func TestQueryCache_InvalidatePublicScopeLeavesUserScopes(t *testing.T) {
	store := cache.NewMemoryStore()
	defer store.Close()
	qc := NewQueryCache(store, zap.NewNop())
	ctx := context.Background()

	qc.CacheList(ctx, "user-1", ports.ListFilter{Page: 1, Limit: 10}, listEnvelope{})
	qc.CacheList(ctx, PublicScope, ports.ListFilter{Page: 1, Limit: 10}, listEnvelope{})

	qc.InvalidateScope(ctx, PublicScope)

	var dest listEnvelope
	assert.False(t, qc.GetList(ctx, PublicScope, ports.ListFilter{Page: 1, Limit: 10}, &dest))
	assert.True(t, qc.GetList(ctx, "user-1", ports.ListFilter{Page: 1, Limit: 10}, &dest))
}

func TestQueryCache_TTLPerScope(t *testing.T) {
	store := cache.NewMemoryStore()
	defer store.Close()
	qc := NewQueryCache(store, zap.NewNop())
	qc.SetTTLs(time.Minute, time.Millisecond)
	ctx := context.Background()
	filter := ports.ListFilter{Page: 1, Limit: 10}

	qc.CacheList(ctx, "user-1", filter, listEnvelope{Items: []string{"a"}})
	qc.CacheList(ctx, PublicScope, filter, listEnvelope{Items: []string{"b"}})
	time.Sleep(5 * time.Millisecond)

	var dest listEnvelope
	assert.True(t, qc.GetList(ctx, "user-1", filter, &dest), "long user TTL should still be live")
	assert.False(t, qc.GetList(ctx, PublicScope, filter, &dest), "short public TTL should have expired")
}

func TestQueryCache_StoreErrorIsMiss(t *testing.T) {
	qc := NewQueryCache(failingStore{}, zap.NewNop())
	ctx := context.Background()
	filter := ports.ListFilter{Page: 1, Limit: 10}

	qc.CacheList(ctx, "user-1", filter, listEnvelope{Items: []string{"a"}})

	var dest listEnvelope
	assert.False(t, qc.GetList(ctx, "user-1", filter, &dest))

	qc.InvalidateScope(ctx, "user-1")
}
