package leaderboard

import (
	"sync"
	"time"

	"github.com/campusconnect/campusconnect-server/internal/domain"
)

// Cache holds the most recent successfully computed snapshot.
//
// Only completed cycles write to it; a failed computation leaves the last
// good snapshot in place so new stream subscribers still get data.
type Cache struct {
	mu       sync.RWMutex
	snapshot *domain.Snapshot
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{}
}

// Get returns the cached snapshot, or nil if nothing has been computed yet.
func (c *Cache) Get() *domain.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

// Set stores a fresh snapshot.
func (c *Cache) Set(entries []domain.StatEntry) *domain.Snapshot {
	snap := &domain.Snapshot{
		ComputedAt: time.Now().UTC(),
		Entries:    entries,
	}

	c.mu.Lock()
	c.snapshot = snap
	c.mu.Unlock()

	return snap
}
