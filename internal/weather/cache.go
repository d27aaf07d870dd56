package weather

import (
	"fmt"
	"sync"
	"time"
)

type cacheEntry struct {
	snapshot Snapshot
	fetched  time.Time
	lastUsed time.Time
}

// SnapshotCache memoizes snapshots by coordinate pair. An entry answers reads
// for the freshness window after it was stored; entries unused for longer
// than maxIdle are dropped by Evict. The cache is a caller-level
// optimization, not part of the aggregation contract.
type SnapshotCache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
	fresh   time.Duration
	maxIdle time.Duration
	now     func() time.Time // override in tests
}

// NewSnapshotCache creates a cache. fresh <= 0 disables memoization;
// maxIdle <= 0 disables idle eviction.
func NewSnapshotCache(fresh, maxIdle time.Duration) *SnapshotCache {
	return &SnapshotCache{
		entries: make(map[string]*cacheEntry),
		fresh:   fresh,
		maxIdle: maxIdle,
		now:     time.Now,
	}
}

func cacheKey(lat, lon float64) string {
	return fmt.Sprintf("%.4f:%.4f", lat, lon)
}

// Get returns the fresh snapshot for a coordinate pair, if any, and marks the
// entry as used.
func (c *SnapshotCache) Get(lat, lon float64) (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[cacheKey(lat, lon)]
	if !ok {
		return Snapshot{}, false
	}

	now := c.now()
	if c.fresh <= 0 || now.Sub(entry.fetched) >= c.fresh {
		return Snapshot{}, false
	}

	entry.lastUsed = now
	return entry.snapshot, true
}

// Put stores the snapshot for a coordinate pair.
func (c *SnapshotCache) Put(lat, lon float64, snapshot Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.entries[cacheKey(lat, lon)] = &cacheEntry{
		snapshot: snapshot,
		fetched:  now,
		lastUsed: now,
	}
}

// Evict drops entries that have not been used for maxIdle and reports how
// many were removed.
func (c *SnapshotCache) Evict() int {
	if c.maxIdle <= 0 {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := c.now().Add(-c.maxIdle)
	removed := 0
	for key, entry := range c.entries {
		if entry.lastUsed.Before(cutoff) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len reports the number of cached entries, fresh or not.
func (c *SnapshotCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
