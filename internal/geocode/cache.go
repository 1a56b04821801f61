package geocode

import (
	"sync"
	"time"

	"pantry-finder/internal/geo"
)

// Cache is a thread-safe TTL cache for geocoding results
type Cache struct {
	items map[string]cacheItem
	mu    sync.RWMutex
	ttl   time.Duration
}

type cacheItem struct {
	coord  geo.Coordinate
	expiry time.Time
}

// NewCache creates a TTL cache. Expired entries are purged hourly.
func NewCache(ttl time.Duration) *Cache {
	c := &Cache{
		items: make(map[string]cacheItem),
		ttl:   ttl,
	}
	go c.cleanup()
	return c
}

// Set stores a coordinate under the given key
func (c *Cache) Set(key string, coord geo.Coordinate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = cacheItem{
		coord:  coord,
		expiry: time.Now().Add(c.ttl),
	}
}

// Get retrieves a cached coordinate, reporting whether it is still live
func (c *Cache) Get(key string) (geo.Coordinate, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, found := c.items[key]
	if !found || time.Now().After(item.expiry) {
		return geo.Coordinate{}, false
	}
	return item.coord, true
}

func (c *Cache) cleanup() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for k, v := range c.items {
			if now.After(v.expiry) {
				delete(c.items, k)
			}
		}
		c.mu.Unlock()
	}
}
