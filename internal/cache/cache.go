package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type Item struct {
	Value     interface{}
	ExpiresAt time.Time
}

// Cache is a process-wide TTL map. There is no explicit invalidation;
// entries only age out. The clock is injectable for tests.
type Cache struct {
	mu    sync.RWMutex
	items map[string]Item
	now   func() time.Time
	group singleflight.Group
}

type Option func(*Cache)

// WithClock replaces time.Now, used by tests to step through TTL windows.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

func New(opts ...Option) *Cache {
	c := &Cache{
		items: make(map[string]Item),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	// Cleanup expired items every hour
	go c.cleanupLoop()

	return c
}

func (c *Cache) Set(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = Item{
		Value:     value,
		ExpiresAt: c.now().Add(ttl),
	}
}

func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	item, exists := c.items[key]
	c.mu.RUnlock()

	if !exists {
		return nil, false
	}

	if c.now().After(item.ExpiresAt) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return nil, false
	}

	return item.Value, true
}

// GetOrCompute returns the cached value for key, or runs compute once and
// caches the result for ttl. Concurrent first-callers for the same key
// share a single compute call.
func (c *Cache) GetOrCompute(key string, ttl time.Duration, compute func() interface{}) interface{} {
	if v, ok := c.Get(key); ok {
		return v
	}

	v, _, _ := c.group.Do(key, func() (interface{}, error) {
		// Another caller may have filled the entry while we waited.
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		v := compute()
		c.Set(key, v, ttl)
		return v, nil
	})
	return v
}

// GenerateKey hashes the request parameter tuple into a stable cache key.
func GenerateKey(parts ...string) string {
	h := sha256.New()
	h.Write([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		c.cleanup()
	}
}

func (c *Cache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, item := range c.items {
		if now.After(item.ExpiresAt) {
			delete(c.items, key)
		}
	}
}
