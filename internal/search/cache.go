package search

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"autoapply-engine/internal/domain"
)

// Cache is the aggregator-owned TTL cache. The engine serves HTTP and sweep
// goroutines concurrently, so access is mutex-guarded. The clock is
// injectable for deterministic expiry tests.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

type cacheEntry struct {
	listings  []domain.JobListing
	fetchedAt time.Time
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// WithClock swaps the time source; test hook.
func (c *Cache) WithClock(now func() time.Time) *Cache {
	c.now = now
	return c
}

// CacheKey builds the source-independent lookup key for one aggregation call.
// Location preferences are part of the key; order and case don't matter.
func CacheKey(query string, remoteOnly bool, locations []string) string {
	locs := make([]string, 0, len(locations))
	for _, l := range locations {
		if l = strings.ToLower(strings.TrimSpace(l)); l != "" {
			locs = append(locs, l)
		}
	}
	sort.Strings(locs)
	return fmt.Sprintf("%s|remote=%t|loc=%s",
		strings.ToLower(strings.TrimSpace(query)), remoteOnly, strings.Join(locs, ","))
}

func (c *Cache) Get(key string) ([]domain.JobListing, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.fetchedAt) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	out := make([]domain.JobListing, len(e.listings))
	copy(out, e.listings)
	return out, true
}

func (c *Cache) Put(key string, listings []domain.JobListing) {
	stored := make([]domain.JobListing, len(listings))
	copy(stored, listings)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{listings: stored, fetchedAt: c.now()}
}

// Purge drops expired entries; called opportunistically by the aggregator.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if c.now().Sub(e.fetchedAt) > c.ttl {
			delete(c.entries, k)
		}
	}
}
