package personality

import (
	"sync"

	"github.com/talgya/throneworld/internal/kingdom"
)

// Cache memoizes generated personalities per kingdom. Owned by the
// simulation handle, never process-global, so parallel simulations keep
// independent caches. Safe for concurrent upsert.
type Cache struct {
	mu      sync.RWMutex
	entries map[kingdom.KingdomID]Personality
}

// NewCache creates an empty personality cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[kingdom.KingdomID]Personality)}
}

// Get returns the kingdom's personality, generating and caching it on first
// reference. Repeated calls with the same inputs are idempotent.
func (c *Cache) Get(id kingdom.KingdomID, race kingdom.Race) Personality {
	c.mu.RLock()
	p, ok := c.entries[id]
	c.mu.RUnlock()
	if ok {
		return p
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Re-check under the write lock; another worker may have won the race.
	if p, ok := c.entries[id]; ok {
		return p
	}
	p = Generate(id, race)
	c.entries[id] = p
	return p
}

// Len returns the number of cached personalities.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
