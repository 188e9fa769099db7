package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics holds performance metrics for the gateway
type Metrics struct {
	// Request metrics
	TotalRequests      int64 `json:"total_requests"`
	SuccessfulRequests int64 `json:"successful_requests"`
	FailedRequests     int64 `json:"failed_requests"`

	// Response time metrics
	AverageResponseTime time.Duration `json:"average_response_time"`
	MinResponseTime     time.Duration `json:"min_response_time"`
	MaxResponseTime     time.Duration `json:"max_response_time"`

	// Cache metrics
	CacheHits   int64 `json:"cache_hits"`
	CacheMisses int64 `json:"cache_misses"`

	// Chain RPC metrics
	RPCCalls         int64         `json:"rpc_calls"`
	RPCFailures      int64         `json:"rpc_failures"`
	FailoverSwitches int64         `json:"failover_switches"`
	AverageRPCTime   time.Duration `json:"average_rpc_time"`

	// Transaction metrics
	TransactionsBroadcast int64 `json:"transactions_broadcast"`

	// Concurrency metrics
	ActiveRequests int64 `json:"active_requests"`

	totalResponseTime time.Duration
	totalRPCTime      time.Duration
	mutex             sync.RWMutex
}

// Collector provides thread-safe metrics collection
type Collector struct {
	metrics   *Metrics
	startTime time.Time
}

// NewCollector creates a new metrics collector
func NewCollector() *Collector {
	return &Collector{
		metrics: &Metrics{
			MinResponseTime: time.Duration(^uint64(0) >> 1),
		},
		startTime: time.Now(),
	}
}

// RecordRequest records a new in-flight request
func (c *Collector) RecordRequest() {
	atomic.AddInt64(&c.metrics.TotalRequests, 1)
	atomic.AddInt64(&c.metrics.ActiveRequests, 1)
}

// RecordRequestComplete records request completion
func (c *Collector) RecordRequestComplete(duration time.Duration, success bool) {
	atomic.AddInt64(&c.metrics.ActiveRequests, -1)

	if success {
		atomic.AddInt64(&c.metrics.SuccessfulRequests, 1)
	} else {
		atomic.AddInt64(&c.metrics.FailedRequests, 1)
	}

	c.metrics.mutex.Lock()
	defer c.metrics.mutex.Unlock()

	c.metrics.totalResponseTime += duration

	if duration < c.metrics.MinResponseTime {
		c.metrics.MinResponseTime = duration
	}
	if duration > c.metrics.MaxResponseTime {
		c.metrics.MaxResponseTime = duration
	}

	total := atomic.LoadInt64(&c.metrics.TotalRequests)
	if total > 0 {
		c.metrics.AverageResponseTime = c.metrics.totalResponseTime / time.Duration(total)
	}
}

// RecordCacheHit records a cache hit
func (c *Collector) RecordCacheHit() {
	atomic.AddInt64(&c.metrics.CacheHits, 1)
}

// RecordCacheMiss records a cache miss
func (c *Collector) RecordCacheMiss() {
	atomic.AddInt64(&c.metrics.CacheMisses, 1)
}

// RecordRPCCall records a chain call through the failover client
func (c *Collector) RecordRPCCall(duration time.Duration, success bool) {
	atomic.AddInt64(&c.metrics.RPCCalls, 1)

	if !success {
		atomic.AddInt64(&c.metrics.RPCFailures, 1)
	}

	c.metrics.mutex.Lock()
	defer c.metrics.mutex.Unlock()

	c.metrics.totalRPCTime += duration

	total := atomic.LoadInt64(&c.metrics.RPCCalls)
	if total > 0 {
		c.metrics.AverageRPCTime = c.metrics.totalRPCTime / time.Duration(total)
	}
}

// RecordFailoverSwitch records the failover client re-homing to a
// fallback endpoint
func (c *Collector) RecordFailoverSwitch() {
	atomic.AddInt64(&c.metrics.FailoverSwitches, 1)
}

// RecordBroadcast records a raw transaction submission
func (c *Collector) RecordBroadcast() {
	atomic.AddInt64(&c.metrics.TransactionsBroadcast, 1)
}

// GetMetrics returns a copy of current metrics
func (c *Collector) GetMetrics() *Metrics {
	c.metrics.mutex.RLock()
	defer c.metrics.mutex.RUnlock()

	return &Metrics{
		TotalRequests:         atomic.LoadInt64(&c.metrics.TotalRequests),
		SuccessfulRequests:    atomic.LoadInt64(&c.metrics.SuccessfulRequests),
		FailedRequests:        atomic.LoadInt64(&c.metrics.FailedRequests),
		AverageResponseTime:   c.metrics.AverageResponseTime,
		MinResponseTime:       c.metrics.MinResponseTime,
		MaxResponseTime:       c.metrics.MaxResponseTime,
		CacheHits:             atomic.LoadInt64(&c.metrics.CacheHits),
		CacheMisses:           atomic.LoadInt64(&c.metrics.CacheMisses),
		RPCCalls:              atomic.LoadInt64(&c.metrics.RPCCalls),
		RPCFailures:           atomic.LoadInt64(&c.metrics.RPCFailures),
		FailoverSwitches:      atomic.LoadInt64(&c.metrics.FailoverSwitches),
		AverageRPCTime:        c.metrics.AverageRPCTime,
		TransactionsBroadcast: atomic.LoadInt64(&c.metrics.TransactionsBroadcast),
		ActiveRequests:        atomic.LoadInt64(&c.metrics.ActiveRequests),
	}
}

// GetUptime returns the uptime since metrics collection started
func (c *Collector) GetUptime() time.Duration {
	return time.Since(c.startTime)
}

// GetCacheHitRatio returns the cache hit ratio as a percentage
func (c *Collector) GetCacheHitRatio() float64 {
	hits := atomic.LoadInt64(&c.metrics.CacheHits)
	misses := atomic.LoadInt64(&c.metrics.CacheMisses)
	total := hits + misses

	if total == 0 {
		return 0.0
	}

	return float64(hits) / float64(total) * 100.0
}

// GetSuccessRate returns the request success rate as a percentage
func (c *Collector) GetSuccessRate() float64 {
	successful := atomic.LoadInt64(&c.metrics.SuccessfulRequests)
	total := atomic.LoadInt64(&c.metrics.TotalRequests)

	if total == 0 {
		return 0.0
	}

	return float64(successful) / float64(total) * 100.0
}

// Reset resets all metrics
func (c *Collector) Reset() {
	c.metrics.mutex.Lock()
	defer c.metrics.mutex.Unlock()

	atomic.StoreInt64(&c.metrics.TotalRequests, 0)
	atomic.StoreInt64(&c.metrics.SuccessfulRequests, 0)
	atomic.StoreInt64(&c.metrics.FailedRequests, 0)
	atomic.StoreInt64(&c.metrics.CacheHits, 0)
	atomic.StoreInt64(&c.metrics.CacheMisses, 0)
	atomic.StoreInt64(&c.metrics.RPCCalls, 0)
	atomic.StoreInt64(&c.metrics.RPCFailures, 0)
	atomic.StoreInt64(&c.metrics.FailoverSwitches, 0)
	atomic.StoreInt64(&c.metrics.TransactionsBroadcast, 0)
	atomic.StoreInt64(&c.metrics.ActiveRequests, 0)

	c.metrics.AverageResponseTime = 0
	c.metrics.MinResponseTime = time.Duration(^uint64(0) >> 1)
	c.metrics.MaxResponseTime = 0
	c.metrics.AverageRPCTime = 0
	c.metrics.totalResponseTime = 0
	c.metrics.totalRPCTime = 0

	c.startTime = time.Now()
}
