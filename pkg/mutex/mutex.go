package mutex

import (
	"sync"
	"time"
)

// KeyedMutex provides per-key locking so concurrent requests for the same
// resource (an address, a transaction hash) serialize while requests for
// different resources proceed in parallel.
type KeyedMutex struct {
	mutexes map[string]*mutexEntry
	mapLock sync.RWMutex
}

type mutexEntry struct {
	mutex      sync.Mutex
	lastAccess time.Time
}

// NewKeyedMutex creates a new keyed mutex manager
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{
		mutexes: make(map[string]*mutexEntry),
	}
}

// Lock acquires the lock for the given key
func (km *KeyedMutex) Lock(key string) {
	km.getOrCreate(key).mutex.Lock()
}

// Unlock releases the lock for the given key
func (km *KeyedMutex) Unlock(key string) {
	km.mapLock.RLock()
	entry, exists := km.mutexes[key]
	km.mapLock.RUnlock()

	if exists {
		entry.mutex.Unlock()
	}
}

func (km *KeyedMutex) getOrCreate(key string) *mutexEntry {
	km.mapLock.RLock()
	entry, exists := km.mutexes[key]
	km.mapLock.RUnlock()

	if exists {
		entry.lastAccess = time.Now()
		return entry
	}

	km.mapLock.Lock()
	defer km.mapLock.Unlock()

	// Double-check; another goroutine may have created it.
	if entry, exists = km.mutexes[key]; exists {
		entry.lastAccess = time.Now()
		return entry
	}

	entry = &mutexEntry{lastAccess: time.Now()}
	km.mutexes[key] = entry
	return entry
}

// Cleanup removes mutex entries that have not been used within maxAge and
// are not currently held. Returns the number of entries removed.
func (km *KeyedMutex) Cleanup(maxAge time.Duration) int {
	km.mapLock.Lock()
	defer km.mapLock.Unlock()

	removed := 0
	cutoff := time.Now().Add(-maxAge)

	for key, entry := range km.mutexes {
		if entry.lastAccess.Before(cutoff) && entry.mutex.TryLock() {
			entry.mutex.Unlock()
			delete(km.mutexes, key)
			removed++
		}
	}

	return removed
}

// Size returns the number of tracked keys
func (km *KeyedMutex) Size() int {
	km.mapLock.RLock()
	defer km.mapLock.RUnlock()

	return len(km.mutexes)
}
