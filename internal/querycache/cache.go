package querycache

import "sync"

type key struct {
	resource string
	params   string
}

// Cache stores raw response payloads for read queries.
type Cache struct {
	mu      sync.RWMutex
	entries map[key][]byte
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{entries: make(map[key][]byte)}
}

// Get returns the cached payload for (resource, params) when present.
func (c *Cache) Get(resource, params string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	payload, ok := c.entries[key{resource: resource, params: params}]
	if !ok {
		return nil, false
	}
	cp := make([]byte, len(payload))
	copy(cp, payload)
	return cp, true
}

// Set stores a payload for (resource, params).
func (c *Cache) Set(resource, params string, payload []byte) {
	if c == nil {
		return
	}
	cp := make([]byte, len(payload))
	copy(cp, payload)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key{resource: resource, params: params}] = cp
}

// Invalidate drops every entry for the given resources.
func (c *Cache) Invalidate(resources ...string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		for _, resource := range resources {
			if k.resource == resource {
				delete(c.entries, k)
				break
			}
		}
	}
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
