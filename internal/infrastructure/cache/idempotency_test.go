package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryIdempotencyStore_MarkProcessed(t *testing.T) {
	store := NewMemoryIdempotencyStore()
	ctx := context.Background()

	first, err := store.MarkProcessed(ctx, "order-123", time.Minute)
	require.NoError(t, err)
	assert.True(t, first)

	second, err := store.MarkProcessed(ctx, "order-123", time.Minute)
	require.NoError(t, err)
	assert.False(t, second)

	other, err := store.MarkProcessed(ctx, "order-456", time.Minute)
	require.NoError(t, err)
	assert.True(t, other)
}

func TestMemoryIdempotencyStore_Release(t *testing.T) {
	store := NewMemoryIdempotencyStore()
	ctx := context.Background()

	_, err := store.MarkProcessed(ctx, "order-123", time.Minute)
	require.NoError(t, err)

	require.NoError(t, store.Release(ctx, "order-123"))

	again, err := store.MarkProcessed(ctx, "order-123", time.Minute)
	require.NoError(t, err)
	assert.True(t, again)
}

func TestMemoryIdempotencyStore_Expiry(t *testing.T) {
	store := NewMemoryIdempotencyStore()
	ctx := context.Background()

	_, err := store.MarkProcessed(ctx, "order-123", -time.Second)
	require.NoError(t, err)

	// Expired entries are reclaimed on the next call.
	again, err := store.MarkProcessed(ctx, "order-123", time.Minute)
	require.NoError(t, err)
	assert.True(t, again)
}
