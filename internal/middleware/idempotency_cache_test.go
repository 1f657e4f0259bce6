package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIdempotencyCache(t *testing.T, ttl time.Duration) (*idempotencyCache, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)}
	cache := newIdempotencyCache(ttl)
	cache.now = clock.now
	t.Cleanup(cache.Stop)
	return cache, clock
}

func TestIdempotencyCache_Reserve(t *testing.T) {
	cache, clock := newTestIdempotencyCache(t, time.Minute)

	cached, reserved := cache.Reserve("scan-1")
	assert.Nil(t, cached)
	assert.True(t, reserved)

	// Running: neither replayed nor reserved again.
	cached, reserved = cache.Reserve("scan-1")
	assert.Nil(t, cached)
	assert.False(t, reserved)

	cache.Complete("scan-1", &cachedResponse{StatusCode: 200, Body: []byte(`{"data":{}}`)})
	cached, reserved = cache.Reserve("scan-1")
	require.NotNil(t, cached)
	assert.False(t, reserved)
	assert.Equal(t, 200, cached.StatusCode)

	// Expired entries are reserved anew.
	clock.advance(2 * time.Minute)
	cached, reserved = cache.Reserve("scan-1")
	assert.Nil(t, cached)
	assert.True(t, reserved)
}

func TestIdempotencyCache_Release(t *testing.T) {
	cache, _ := newTestIdempotencyCache(t, time.Minute)

	_, reserved := cache.Reserve("validate-1")
	require.True(t, reserved)
	cache.Release("validate-1")

	_, reserved = cache.Reserve("validate-1")
	assert.True(t, reserved, "released key can be retried")
}

func TestIdempotencyCache_Cleanup(t *testing.T) {
	cache, clock := newTestIdempotencyCache(t, time.Minute)

	cache.Reserve("old")
	cache.Complete("old", &cachedResponse{StatusCode: 200})
	clock.advance(45 * time.Second)
	cache.Reserve("recent")

	clock.advance(30 * time.Second)
	cache.cleanup()

	assert.Equal(t, 1, cache.Len())
	_, reserved := cache.Reserve("recent")
	assert.False(t, reserved)
}

func TestIdempotencyCache_Capacity(t *testing.T) {
	cache, clock := newTestIdempotencyCache(t, time.Minute)
	cache.capacity = 2

	for _, key := range []string{"a", "b", "c"} {
		cache.Reserve(key)
		cache.Complete(key, &cachedResponse{StatusCode: 200})
		clock.advance(time.Second)
	}

	assert.Equal(t, 2, cache.Len())
	_, reserved := cache.Reserve("a")
	assert.True(t, reserved, "oldest key should be evicted")
}

func TestIdempotencyCache_Stop(t *testing.T) {
	cache := newIdempotencyCache(time.Minute)

	cache.Stop()
	cache.Stop()

	select {
	case <-cache.done:
	default:
		t.Fatal("cleanup loop still running")
	}
}
