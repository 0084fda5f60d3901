package embedding

import (
	"container/list"
	"sync"
)

// Cache is an LRU cache for embedding vectors keyed by prefixed text.
// A capacity of zero or less disables caching entirely; Get always misses
// and Set is a no-op, so callers never need a nil check.
type Cache struct {
	capacity int
	cache    map[string]*list.Element
	lru      *list.List
	mu       sync.Mutex
}

type cacheEntry struct {
	key   string
	value []float32
}

// NewCache creates a cache holding up to capacity vectors.
func NewCache(capacity int) *Cache {
	return &Cache{
		capacity: capacity,
		cache:    make(map[string]*list.Element),
		lru:      list.New(),
	}
}

// Get returns the cached vector for key if present. The returned slice is
// shared with the cache and must not be mutated.
func (c *Cache) Get(key string) ([]float32, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.cache[key]; ok {
		c.lru.MoveToFront(elem)
		return elem.Value.(*cacheEntry).value, true
	}
	return nil, false
}

// Set stores a copy of the vector for key, evicting the least recently used
// entry when at capacity.
func (c *Cache) Set(key string, value []float32) {
	if c.capacity <= 0 {
		return
	}
	stored := make([]float32, len(value))
	copy(stored, value)

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.cache[key]; ok {
		c.lru.MoveToFront(elem)
		elem.Value.(*cacheEntry).value = stored
		return
	}

	elem := c.lru.PushFront(&cacheEntry{key: key, value: stored})
	c.cache[key] = elem

	if c.lru.Len() > c.capacity {
		oldest := c.lru.Back()
		if oldest != nil {
			c.lru.Remove(oldest)
			delete(c.cache, oldest.Value.(*cacheEntry).key)
		}
	}
}

// Len returns the number of cached vectors.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}
