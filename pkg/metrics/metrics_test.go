package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCollectorRequestCounts(t *testing.T) {
	c := NewCollector()

	c.RecordRequest()
	c.RecordRequestComplete(10*time.Millisecond, true)

	c.RecordRequest()
	c.RecordRequestComplete(30*time.Millisecond, false)

	m := c.GetMetrics()
	assert.Equal(t, int64(2), m.TotalRequests)
	assert.Equal(t, int64(1), m.SuccessfulRequests)
	assert.Equal(t, int64(1), m.FailedRequests)
	assert.Equal(t, int64(0), m.ActiveRequests)
	assert.Equal(t, 10*time.Millisecond, m.MinResponseTime)
	assert.Equal(t, 30*time.Millisecond, m.MaxResponseTime)
	assert.Equal(t, 20*time.Millisecond, m.AverageResponseTime)
}

func TestCollectorCacheRatio(t *testing.T) {
	c := NewCollector()

	c.RecordCacheHit()
	c.RecordCacheHit()
	c.RecordCacheHit()
	c.RecordCacheMiss()

	assert.InDelta(t, 75.0, c.GetCacheHitRatio(), 0.01)
}

func TestCollectorRPCAndFailover(t *testing.T) {
	c := NewCollector()

	c.RecordRPCCall(100*time.Millisecond, true)
	c.RecordRPCCall(200*time.Millisecond, false)
	c.RecordFailoverSwitch()
	c.RecordBroadcast()

	m := c.GetMetrics()
	assert.Equal(t, int64(2), m.RPCCalls)
	assert.Equal(t, int64(1), m.RPCFailures)
	assert.Equal(t, int64(1), m.FailoverSwitches)
	assert.Equal(t, int64(1), m.TransactionsBroadcast)
	assert.Equal(t, 150*time.Millisecond, m.AverageRPCTime)
}

func TestCollectorSuccessRate(t *testing.T) {
	c := NewCollector()

	assert.Equal(t, 0.0, c.GetSuccessRate())

	for i := 0; i < 4; i++ {
		c.RecordRequest()
		c.RecordRequestComplete(time.Millisecond, i != 0)
	}

	assert.InDelta(t, 75.0, c.GetSuccessRate(), 0.01)
}

func TestCollectorReset(t *testing.T) {
	c := NewCollector()

	c.RecordRequest()
	c.RecordRequestComplete(time.Millisecond, true)
	c.RecordCacheHit()
	c.Reset()

	m := c.GetMetrics()
	assert.Equal(t, int64(0), m.TotalRequests)
	assert.Equal(t, int64(0), m.CacheHits)
	assert.Equal(t, time.Duration(0), m.AverageResponseTime)
}

func TestCollectorConcurrentAccess(t *testing.T) {
	c := NewCollector()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.RecordRequest()
			c.RecordCacheHit()
			c.RecordRPCCall(time.Millisecond, true)
			c.RecordRequestComplete(time.Millisecond, true)
		}()
	}
	wg.Wait()

	m := c.GetMetrics()
	assert.Equal(t, int64(50), m.TotalRequests)
	assert.Equal(t, int64(50), m.SuccessfulRequests)
	assert.Equal(t, int64(50), m.CacheHits)
	assert.Equal(t, int64(50), m.RPCCalls)
	assert.Equal(t, int64(0), m.ActiveRequests)
}
