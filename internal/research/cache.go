package research

import (
	"strings"
	"sync"
	"time"

	"github.com/sells-group/prospect-cli/internal/model"
)

// Cache is an in-memory TTL cache of research results keyed by lowercased
// company name. It is the caller-side cache; the researcher itself never
// reads it.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cacheEntry
}

type cacheEntry struct {
	result  *model.ResearchResult
	expires time.Time
}

// NewCache creates a Cache with the given TTL.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

// Get returns a cached result if present and unexpired.
func (c *Cache) Get(name string) (*model.ResearchResult, bool) {
	c.mu.RLock()
	entry, ok := c.entries[cacheKey(name)]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expires) {
		return nil, false
	}
	return entry.result, true
}

// Set stores a result under the company name.
func (c *Cache) Set(name string, result *model.ResearchResult) {
	c.mu.Lock()
	c.entries[cacheKey(name)] = cacheEntry{
		result:  result,
		expires: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
}

// Purge drops expired entries and returns how many were removed.
func (c *Cache) Purge() int {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, entry := range c.entries {
		if now.After(entry.expires) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

func cacheKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
