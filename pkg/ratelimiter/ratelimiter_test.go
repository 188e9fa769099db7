package ratelimiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllowsUnderLimit(t *testing.T) {
	rl := New(3, time.Minute)

	assert.True(t, rl.IsAllowed("client1"))
	assert.True(t, rl.IsAllowed("client1"))
	assert.True(t, rl.IsAllowed("client1"))
	assert.False(t, rl.IsAllowed("client1"))
}

func TestRateLimiterIndependentClients(t *testing.T) {
	rl := New(1, time.Minute)

	assert.True(t, rl.IsAllowed("a"))
	assert.True(t, rl.IsAllowed("b"))
	assert.False(t, rl.IsAllowed("a"))
}

func TestRateLimiterWindowReset(t *testing.T) {
	rl := New(1, 50*time.Millisecond)

	assert.True(t, rl.IsAllowed("client"))
	assert.False(t, rl.IsAllowed("client"))

	time.Sleep(60 * time.Millisecond)

	assert.True(t, rl.IsAllowed("client"))
}

func TestRateLimiterRequestInfo(t *testing.T) {
	rl := New(5, time.Minute)

	rl.IsAllowed("client")
	rl.IsAllowed("client")

	remaining, resetTime := rl.GetRequestInfo("client")
	assert.Equal(t, 3, remaining)
	assert.True(t, resetTime.After(time.Now()))
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := New(1, 10*time.Millisecond)

	rl.IsAllowed("a")
	rl.IsAllowed("b")

	time.Sleep(20 * time.Millisecond)

	removed := rl.Cleanup()
	assert.Equal(t, 2, removed)
}
