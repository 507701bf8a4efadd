package cache

import (
	"sync"
	"time"
)

type entry struct {
	value      interface{}
	expiration time.Time
}

func (e entry) expired() bool {
	return time.Now().After(e.expiration)
}

// TTLCache is a small in-memory cache with per-entry expiration, used to
// keep statistics aggregation off the hot path.
type TTLCache struct {
	mu       sync.RWMutex
	entries  map[string]entry
	done     chan struct{}
	stopOnce sync.Once
}

func NewTTLCache() *TTLCache {
	c := &TTLCache{
		entries: make(map[string]entry),
		done:    make(chan struct{}),
	}
	go c.cleanupExpired()

	return c
}

// Stop terminates the background cleanup goroutine. The cache stays usable
// afterwards; expired entries are still filtered out on Get.
func (c *TTLCache) Stop() {
	c.stopOnce.Do(func() {
		close(c.done)
	})
}

func (c *TTLCache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, exists := c.entries[key]
	if !exists || e.expired() {
		return nil, false
	}

	return e.value, true
}

func (c *TTLCache) Set(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		value:      value,
		expiration: time.Now().Add(ttl),
	}
}

func (c *TTLCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

func (c *TTLCache) cleanupExpired() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.mu.Lock()
			for key, e := range c.entries {
				if e.expired() {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}
