package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGet(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	_, found, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "k1", []byte("v1"), time.Minute))

	data, found, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("v1"), data)
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k1", []byte("v1"), time.Minute))

	data, _, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	data[0] = 'X'

	again, _, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), again)
}

func TestMemoryStore_TTLExpiry(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "short", []byte("v"), time.Millisecond))
	require.NoError(t, store.Set(ctx, "forever", []byte("v"), 0))
	time.Sleep(5 * time.Millisecond)

	_, found, err := store.Get(ctx, "short")
	require.NoError(t, err)
	assert.False(t, found, "expired entry must read as missing")

	_, found, err = store.Get(ctx, "forever")
	require.NoError(t, err)
	assert.True(t, found, "non-positive TTL means no expiry")

	assert.Equal(t, 1, store.Len())
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k1", []byte("v"), time.Minute))
	require.NoError(t, store.Set(ctx, "k2", []byte("v"), time.Minute))

	require.NoError(t, store.Delete(ctx, "k1", "k2", "never-existed"))
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStore_DeleteMatching(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	keys := []string{
		"itineraries:user-1:page=1",
		"itineraries:user-1:page=2",
		"itineraries:user-2:page=1",
		"public_itineraries:page=1",
	}
	for _, k := range keys {
		require.NoError(t, store.Set(ctx, k, []byte("v"), time.Minute))
	}

	require.NoError(t, store.DeleteMatching(ctx, "itineraries:user-1:*"))

	_, found, _ := store.Get(ctx, "itineraries:user-1:page=1")
	assert.False(t, found)
	_, found, _ = store.Get(ctx, "itineraries:user-1:page=2")
	assert.False(t, found)
	_, found, _ = store.Get(ctx, "itineraries:user-2:page=1")
	assert.True(t, found)
	_, found, _ = store.Get(ctx, "public_itineraries:page=1")
	assert.True(t, found)
}

func TestMemoryStore_CloseIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
}
