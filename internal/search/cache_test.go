package search

import (
	"testing"
	"time"

	"autoapply-engine/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "go|remote=true|loc=", CacheKey("go", true, nil))
	assert.Equal(t, "go|remote=false|loc=", CacheKey("  Go ", false, nil))
	assert.Equal(t, CacheKey("REACT", true, nil), CacheKey("react", true, nil))

	// Location order and case don't change the key; content does.
	assert.Equal(t,
		CacheKey("go", false, []string{"Austin", "new york"}),
		CacheKey("go", false, []string{"New York", " austin "}))
	assert.NotEqual(t,
		CacheKey("go", false, []string{"Austin"}),
		CacheKey("go", false, []string{"Seattle"}))
	assert.NotEqual(t, CacheKey("go", false, nil), CacheKey("go", false, []string{"Austin"}))
}

func TestCacheExpiry(t *testing.T) {
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := NewCache(15 * time.Minute).WithClock(func() time.Time { return clock })

	key := CacheKey("go", false, nil)
	c.Put(key, []domain.JobListing{{JobID: "a", Title: "Go Developer"}})

	got, ok := c.Get(key)
	require.True(t, ok)
	assert.Len(t, got, 1)

	// 14 minutes later: still fresh
	clock = clock.Add(14 * time.Minute)
	_, ok = c.Get(key)
	assert.True(t, ok)

	// past the TTL: gone
	clock = clock.Add(2 * time.Minute)
	_, ok = c.Get(key)
	assert.False(t, ok)
}

func TestCacheMiss(t *testing.T) {
	c := NewCache(time.Minute)
	_, ok := c.Get("nope|remote=false")
	assert.False(t, ok)
}

func TestCacheReturnsCopies(t *testing.T) {
	c := NewCache(time.Minute)
	key := CacheKey("go", false, nil)
	c.Put(key, []domain.JobListing{{JobID: "a", Title: "Go Developer"}})

	got, ok := c.Get(key)
	require.True(t, ok)
	got[0].Title = "mutated"

	again, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, "Go Developer", again[0].Title)
}

func TestCachePurge(t *testing.T) {
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := NewCache(time.Minute).WithClock(func() time.Time { return clock })

	c.Put("old|remote=false", []domain.JobListing{{JobID: "a"}})
	clock = clock.Add(2 * time.Minute)
	c.Put("new|remote=false", []domain.JobListing{{JobID: "b"}})

	c.Purge()

	_, ok := c.Get("old|remote=false")
	assert.False(t, ok)
	_, ok = c.Get("new|remote=false")
	assert.True(t, ok)
}
