package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedValue struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestFetchJSONPopulatesAndReuses(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cache := NewCache(rdb, time.Minute)

	loads := 0
	loader := func(ctx context.Context) (interface{}, error) {
		loads++
		return cachedValue{Name: "expense", Count: 3}, nil
	}

	var first cachedValue
	require.NoError(t, cache.FetchJSON(context.Background(), "k", &first, loader))
	assert.Equal(t, 1, loads)
	assert.Equal(t, "expense", first.Name)

	var second cachedValue
	require.NoError(t, cache.FetchJSON(context.Background(), "k", &second, loader))
	assert.Equal(t, 1, loads, "cached key must not reload")
	assert.Equal(t, first, second)

	// Entry expiry forces a reload.
	mr.FastForward(2 * time.Minute)
	var third cachedValue
	require.NoError(t, cache.FetchJSON(context.Background(), "k", &third, loader))
	assert.Equal(t, 2, loads)
}

func TestFetchJSONNilCacheDegradesToLoader(t *testing.T) {
	var nilCache *Cache

	loads := 0
	loader := func(ctx context.Context) (interface{}, error) {
		loads++
		return cachedValue{Name: "direct"}, nil
	}

	var out cachedValue
	require.NoError(t, nilCache.FetchJSON(context.Background(), "k", &out, loader))
	require.NoError(t, nilCache.FetchJSON(context.Background(), "k", &out, loader))
	assert.Equal(t, 2, loads, "nil cache calls the loader every time")
	assert.Equal(t, "direct", out.Name)
}

func TestFetchJSONPropagatesLoaderError(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cache := NewCache(rdb, time.Minute)
	loadErr := errors.New("upstream down")

	var out cachedValue
	err := cache.FetchJSON(context.Background(), "k", &out, func(ctx context.Context) (interface{}, error) {
		return nil, loadErr
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, loadErr)
	assert.False(t, mr.Exists("k"), "failed loads must not be cached")
}

func TestFetchJSONRequiresLoader(t *testing.T) {
	var out cachedValue
	err := (&Cache{}).FetchJSON(context.Background(), "k", &out, nil)
	require.Error(t, err)
}
