package ratelimiter

import (
	"sync"
	"time"
)

// RequestCounter tracks requests for a client within the current window
type RequestCounter struct {
	Count     int
	ResetTime time.Time
}

// RateLimiter implements a fixed-window rate limiter keyed by client IP
type RateLimiter struct {
	requests map[string]*RequestCounter
	mutex    sync.RWMutex
	limit    int
	window   time.Duration
}

// New creates a rate limiter allowing limit requests per window
func New(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		requests: make(map[string]*RequestCounter),
		limit:    limit,
		window:   window,
	}
}

// IsAllowed reports whether the client may make another request, counting
// this one against the window if so
func (rl *RateLimiter) IsAllowed(clientID string) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := time.Now()
	counter, exists := rl.requests[clientID]

	if !exists || now.After(counter.ResetTime) {
		rl.requests[clientID] = &RequestCounter{
			Count:     1,
			ResetTime: now.Add(rl.window),
		}
		return true
	}

	if counter.Count >= rl.limit {
		return false
	}

	counter.Count++
	return true
}

// GetRequestInfo returns the remaining quota and reset time for a client
// without consuming a request
func (rl *RateLimiter) GetRequestInfo(clientID string) (remaining int, resetTime time.Time) {
	rl.mutex.RLock()
	defer rl.mutex.RUnlock()

	now := time.Now()
	counter, exists := rl.requests[clientID]

	if !exists || now.After(counter.ResetTime) {
		return rl.limit, now.Add(rl.window)
	}

	remaining = rl.limit - counter.Count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, counter.ResetTime
}

// Limit returns the configured per-window request limit
func (rl *RateLimiter) Limit() int {
	return rl.limit
}

// Cleanup removes counters whose window has passed. Returns the number of
// entries removed.
func (rl *RateLimiter) Cleanup() int {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := time.Now()
	removed := 0

	for clientID, counter := range rl.requests {
		if now.After(counter.ResetTime) {
			delete(rl.requests, clientID)
			removed++
		}
	}

	return removed
}
