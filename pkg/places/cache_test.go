package places

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	cache := NewMemoryCache(time.Minute)
	ctx := context.Background()

	got, err := cache.Get(ctx, "place-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	details := &Details{PlaceID: "place-1", Name: "Cafe Luna", FormattedAddress: "123 Main St"}
	require.NoError(t, cache.Set(ctx, "place-1", details))

	got, err = cache.Get(ctx, "place-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Cafe Luna", got.Name)

	// A returned copy must not alias the stored entry.
	got.Name = "mutated"
	again, err := cache.Get(ctx, "place-1")
	require.NoError(t, err)
	assert.Equal(t, "Cafe Luna", again.Name)
}

func TestMemoryCacheExpiry(t *testing.T) {
	cache := NewMemoryCache(10 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "place-1", &Details{PlaceID: "place-1"}))
	time.Sleep(20 * time.Millisecond)

	got, err := cache.Get(ctx, "place-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}
