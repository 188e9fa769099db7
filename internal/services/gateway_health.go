package services

import (
	"context"

	"github.com/chrisstampar/fx-api/pkg/cache"
)

// Connected reports whether any RPC endpoint responds
func (s *GatewayService) Connected(ctx context.Context) bool {
	return s.failover.Connected(ctx)
}

// RPCStatus reports per-endpoint reachability for the detailed health check
func (s *GatewayService) RPCStatus(ctx context.Context) map[string]bool {
	return s.failover.ProbeAll(ctx)
}

// ActiveEndpoint returns the currently active RPC endpoint URL
func (s *GatewayService) ActiveEndpoint() string {
	return s.failover.ActiveEndpoint()
}

// CacheStats exposes the response cache counters
func (s *GatewayService) CacheStats() cache.Stats {
	return s.cache.GetStats()
}

// Stats aggregates service-level observability counters for the metrics
// endpoint
func (s *GatewayService) Stats() map[string]interface{} {
	return map[string]interface{}{
		"cache":            s.cache.GetStats(),
		"transactions":     s.tracker.Stats(),
		"price_cache_size": s.price.CacheSize(),
		"active_endpoint":  s.failover.ActiveEndpoint(),
		"rpc_endpoints":    s.failover.Endpoints(),
	}
}
