package cache

import (
	"strings"
	"sync"
	"time"
)

// Entry represents a cached value with its expiry metadata
type Entry struct {
	Value     interface{}
	CreatedAt time.Time
	TTL       time.Duration
}

// Expired reports whether the entry is past its TTL
func (e *Entry) Expired() bool {
	return time.Since(e.CreatedAt) > e.TTL
}

// Cache provides thread-safe caching with per-entry TTL support
type Cache struct {
	data       map[string]*Entry
	mutex      sync.RWMutex
	defaultTTL time.Duration
	hits       int64
	misses     int64
	stopCh     chan struct{}
	stopOnce   sync.Once
}

// Stats holds cache observability counters
type Stats struct {
	Size          int     `json:"size"`
	Hits          int64   `json:"hits"`
	Misses        int64   `json:"misses"`
	HitRate       float64 `json:"hit_rate"`
	TotalRequests int64   `json:"total_requests"`
}

// New creates a new Cache with the given default TTL and starts the
// background sweep goroutine
func New(defaultTTL time.Duration) *Cache {
	c := &Cache{
		data:       make(map[string]*Entry),
		defaultTTL: defaultTTL,
		stopCh:     make(chan struct{}),
	}

	go c.janitor()

	return c
}

// Key builds a cache key from a namespace prefix and arguments. Arguments
// are lowercased so the same logical query always maps to the same key
// (addresses and token names are case-insensitive).
func Key(prefix string, parts ...string) string {
	b := make([]string, 0, len(parts)+1)
	b = append(b, prefix)
	for _, p := range parts {
		b = append(b, strings.ToLower(p))
	}
	return strings.Join(b, ":")
}

// Get retrieves a value if present and not expired. An expired entry is
// treated as absent and evicted as a side effect of the lookup.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mutex.RLock()
	entry, exists := c.data[key]
	c.mutex.RUnlock()

	if !exists {
		c.recordMiss()
		return nil, false
	}

	if entry.Expired() {
		c.mutex.Lock()
		// Re-check under the write lock; a concurrent Set may have
		// replaced the entry.
		if cur, ok := c.data[key]; ok && cur.Expired() {
			delete(c.data, key)
		}
		c.mutex.Unlock()
		c.recordMiss()
		return nil, false
	}

	c.recordHit()
	return entry.Value, true
}

// Set stores a value with the given TTL, overwriting any prior entry for
// the key. A zero or negative TTL uses the cache default.
func (c *Cache) Set(key string, value interface{}, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = &Entry{
		Value:     value,
		CreatedAt: time.Now(),
		TTL:       ttl,
	}
}

// Delete removes a key from the cache
func (c *Cache) Delete(key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
}

// Clear removes all entries and resets the counters
func (c *Cache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data = make(map[string]*Entry)
	c.hits = 0
	c.misses = 0
}

// Size returns the number of entries currently stored, expired or not
func (c *Cache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.data)
}

// CleanupExpired sweeps all currently-expired entries and returns how many
// were removed. Lazy eviction on Get is sufficient for correctness; the
// sweep only bounds memory.
func (c *Cache) CleanupExpired() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	removed := 0
	for key, entry := range c.data {
		if entry.Expired() {
			delete(c.data, key)
			removed++
		}
	}
	return removed
}

// GetStats returns hit/miss counters and the hit rate as a percentage
func (c *Cache) GetStats() Stats {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	total := c.hits + c.misses
	rate := 0.0
	if total > 0 {
		rate = float64(c.hits) / float64(total) * 100
	}

	return Stats{
		Size:          len(c.data),
		Hits:          c.hits,
		Misses:        c.misses,
		HitRate:       rate,
		TotalRequests: total,
	}
}

func (c *Cache) recordHit() {
	c.mutex.Lock()
	c.hits++
	c.mutex.Unlock()
}

func (c *Cache) recordMiss() {
	c.mutex.Lock()
	c.misses++
	c.mutex.Unlock()
}

// janitor runs periodically to remove expired entries
func (c *Cache) janitor() {
	interval := c.defaultTTL
	if interval < time.Minute {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.CleanupExpired()
		case <-c.stopCh:
			return
		}
	}
}

// Stop stops the sweep goroutine
func (c *Cache) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopCh)
	})
}
