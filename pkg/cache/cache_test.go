package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheSetGet(t *testing.T) {
	c := New(time.Minute)
	defer c.Stop()

	c.Set("balances:all:0xabc", "42.5", 0)

	value, found := c.Get("balances:all:0xabc")
	require.True(t, found)
	assert.Equal(t, "42.5", value)
}

func TestCacheTTLExpiry(t *testing.T) {
	c := New(time.Minute)
	defer c.Stop()

	c.Set("short", "value", 100*time.Millisecond)

	_, found := c.Get("short")
	require.True(t, found)

	time.Sleep(150 * time.Millisecond)

	_, found = c.Get("short")
	assert.False(t, found, "entry should be absent after TTL elapses")
	assert.Equal(t, 0, c.Size(), "expired entry should be evicted by the lookup")
}

func TestCachePerEntryTTLOverridesDefault(t *testing.T) {
	c := New(50 * time.Millisecond)
	defer c.Stop()

	c.Set("long", "value", time.Minute)

	time.Sleep(100 * time.Millisecond)

	_, found := c.Get("long")
	assert.True(t, found, "per-entry TTL should outlive the default")
}

func TestCacheOverwrite(t *testing.T) {
	c := New(time.Minute)
	defer c.Stop()

	c.Set("key", "first", 0)
	c.Set("key", "second", 0)

	value, found := c.Get("key")
	require.True(t, found)
	assert.Equal(t, "second", value)
}

func TestCacheCleanupExpired(t *testing.T) {
	c := New(time.Minute)
	defer c.Stop()

	c.Set("a", 1, 10*time.Millisecond)
	c.Set("b", 2, 10*time.Millisecond)
	c.Set("c", 3, time.Minute)

	time.Sleep(50 * time.Millisecond)

	removed := c.CleanupExpired()
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, c.Size())
}

func TestCacheStats(t *testing.T) {
	c := New(time.Minute)
	defer c.Stop()

	c.Set("key", "value", 0)

	c.Get("key")
	c.Get("key")
	c.Get("missing")

	stats := c.GetStats()
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.InDelta(t, 66.66, stats.HitRate, 0.1)
}

func TestKeyNormalization(t *testing.T) {
	upper := Key("balances:all", "0xABCdef1234567890ABCdef1234567890ABCdef12")
	lower := Key("balances:all", "0xabcdef1234567890abcdef1234567890abcdef12")

	assert.Equal(t, lower, upper, "same logical query must map to the same key")
}

func TestCacheDeleteAndClear(t *testing.T) {
	c := New(time.Minute)
	defer c.Stop()

	c.Set("a", 1, 0)
	c.Set("b", 2, 0)

	c.Delete("a")
	_, found := c.Get("a")
	assert.False(t, found)

	c.Clear()
	assert.Equal(t, 0, c.Size())
	assert.Equal(t, int64(0), c.GetStats().TotalRequests)
}
