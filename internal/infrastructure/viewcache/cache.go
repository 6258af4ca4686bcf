// Package viewcache keeps rendered GET responses in memory, keyed by view
// path. Writers invalidate a path to force the next read to hit storage.
package viewcache

import (
	"sync"
	"time"
)

type entry struct {
	body    []byte
	expires time.Time
}

// Cache is safe for concurrent use. A zero TTL disables it: Get always
// misses and Set stores nothing.
type Cache struct {
	mu    sync.RWMutex
	ttl   time.Duration
	views map[string]map[string]entry // path -> variant -> entry
	now   func() time.Time
}

// New returns a cache whose entries live for ttl.
func New(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl, views: map[string]map[string]entry{}, now: time.Now}
}

// Get returns the body stored for path and variant, if still fresh.
// variant separates renderings of the same path (caller, query string).
func (c *Cache) Get(path, variant string) ([]byte, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.views[path][variant]
	if !ok || !c.now().Before(e.expires) {
		return nil, false
	}
	return e.body, true
}

// MaxVariants bounds the fresh variants kept per path. When a path is full
// its variants are dropped and the path starts over.
const MaxVariants = 256

// Set stores a copy of body. Expired variants of path are pruned first.
func (c *Cache) Set(path, variant string, body []byte) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	v, ok := c.views[path]
	if !ok {
		v = map[string]entry{}
		c.views[path] = v
	}
	for k, e := range v {
		if !now.Before(e.expires) {
			delete(v, k)
		}
	}
	if _, exists := v[variant]; !exists && len(v) >= MaxVariants {
		v = map[string]entry{}
		c.views[path] = v
	}
	v[variant] = entry{body: append([]byte(nil), body...), expires: now.Add(c.ttl)}
}

// Variants returns the number of variants held for path.
func (c *Cache) Variants(path string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.views[path])
}

// Invalidate drops every variant of the given paths.
func (c *Cache) Invalidate(paths ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range paths {
		delete(c.views, p)
	}
}

// Len returns the number of cached paths.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.views)
}
