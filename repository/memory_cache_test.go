package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestMemoryCache_GetMissing(t *testing.T) {
	cache := NewMemoryCache()

	_, ok := cache.Get("budget")
	assert.False(t, ok)
}

func TestMemoryCache_ExpiresAfterTTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)}
	cache := NewMemoryCacheWithClock(clock.Now)

	assert.NoError(t, cache.Set("budget", "cached", time.Hour))

	clock.Advance(59 * time.Minute)
	val, ok := cache.Get("budget")
	assert.True(t, ok)
	assert.Equal(t, "cached", val)

	clock.Advance(time.Minute)
	_, ok = cache.Get("budget")
	assert.False(t, ok, "entry should expire exactly at the TTL")
	assert.Equal(t, 0, cache.Len())
}

func TestMemoryCache_ZeroTTLNeverExpires(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	cache := NewMemoryCacheWithClock(clock.Now)

	assert.NoError(t, cache.Set("scenarios", "v", 0))
	clock.Advance(24 * 365 * time.Hour)

	val, ok := cache.Get("scenarios")
	assert.True(t, ok)
	assert.Equal(t, "v", val)
}

func TestMemoryCache_OverwriteResetsTTL(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	cache := NewMemoryCacheWithClock(clock.Now)

	_ = cache.Set("k", "old", time.Minute)
	clock.Advance(50 * time.Second)
	_ = cache.Set("k", "new", time.Minute)
	clock.Advance(50 * time.Second)

	val, ok := cache.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "new", val)

	cache.Delete("k")
	_, ok = cache.Get("k")
	assert.False(t, ok)
}
