package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// brokenStore fails every operation, simulating a dead backend
type brokenStore struct {
	closeErr error
}

func (b brokenStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("i/o timeout")
}

func (b brokenStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("i/o timeout")
}

func (b brokenStore) Delete(context.Context, ...string) error {
	return errors.New("i/o timeout")
}

func (b brokenStore) DeleteMatching(context.Context, string) error {
	return errors.New("i/o timeout")
}

func (b brokenStore) Close() error { return b.closeErr }

func TestSoftStore_PassesThroughHealthyInner(t *testing.T) {
	inner := NewMemoryStore()
	defer inner.Close()
	soft := NewSoftStore(inner, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, soft.Set(ctx, "k1", []byte("v1"), time.Minute))

	data, found, err := soft.Get(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("v1"), data)

	require.NoError(t, soft.Delete(ctx, "k1"))
	_, found, err = soft.Get(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSoftStore_GetErrorDegradesToMiss(t *testing.T) {
	soft := NewSoftStore(brokenStore{}, zap.NewNop())

	data, found, err := soft.Get(context.Background(), "k1")
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, data)
}

func TestSoftStore_WriteErrorsDegradeToNoops(t *testing.T) {
	soft := NewSoftStore(brokenStore{}, zap.NewNop())
	ctx := context.Background()

	assert.NoError(t, soft.Set(ctx, "k1", []byte("v"), time.Minute))
	assert.NoError(t, soft.Delete(ctx, "k1"))
	assert.NoError(t, soft.DeleteMatching(ctx, "k:*"))
}

func TestSoftStore_CloseErrorSurfaces(t *testing.T) {
	closeErr := errors.New("already closed")
	soft := NewSoftStore(brokenStore{closeErr: closeErr}, zap.NewNop())

	assert.ErrorIs(t, soft.Close(), closeErr)
}

func TestNoopStore_AlwaysMisses(t *testing.T) {
	store := NewNoopStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k1", []byte("v"), time.Minute))

	_, found, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Delete(ctx, "k1"))
	require.NoError(t, store.DeleteMatching(ctx, "*"))
	require.NoError(t, store.Close())
}
