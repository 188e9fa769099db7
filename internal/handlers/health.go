package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chrisstampar/fx-api/internal/models"
	"github.com/chrisstampar/fx-api/internal/services"
	"github.com/chrisstampar/fx-api/pkg/metrics"
)

// HealthHandler serves liveness, readiness and metrics endpoints
type HealthHandler struct {
	service   *services.GatewayService
	collector *metrics.Collector
	version   string
	env       string
}

func NewHealthHandler(service *services.GatewayService, collector *metrics.Collector, version, env string) *HealthHandler {
	return &HealthHandler{service: service, collector: collector, version: version, env: env}
}

// Health is the basic liveness probe
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:  "ok",
		Version: h.version,
	})
}

// Status reports readiness including RPC connectivity
func (h *HealthHandler) Status(c *gin.Context) {
	connected := h.service.Connected(c.Request.Context())
	status := "ok"
	if !connected {
		status = "degraded"
	}

	c.JSON(http.StatusOK, models.StatusResponse{
		Status:       status,
		Version:      h.version,
		Environment:  h.env,
		RPCConnected: connected,
		Components: map[string]interface{}{
			"active_endpoint": h.service.ActiveEndpoint(),
			"cache_size":      h.service.CacheStats().Size,
		},
	})
}

// DetailedHealth probes every RPC endpoint and reports per-component state
func (h *HealthHandler) DetailedHealth(c *gin.Context) {
	probes := h.service.RPCStatus(c.Request.Context())

	anyUp := false
	rpcStatus := make(map[string]interface{}, len(probes))
	for url, up := range probes {
		rpcStatus[url] = up
		if up {
			anyUp = true
		}
	}

	status := "ok"
	if !anyUp {
		status = "unhealthy"
	}

	cacheStats := h.service.CacheStats()
	c.JSON(http.StatusOK, models.DetailedHealthResponse{
		Status:    status,
		Version:   h.version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Components: map[string]interface{}{
			"cache": map[string]interface{}{
				"size":     cacheStats.Size,
				"hit_rate": cacheStats.HitRate,
			},
			"transactions": h.service.Tracker().Stats(),
		},
		RPCStatus: rpcStatus,
		SDKStatus: map[string]interface{}{
			"active_endpoint":  h.service.ActiveEndpoint(),
			"supported_tokens": services.SupportedTokenNames(),
		},
	})
}

// Metrics exposes the service counters
func (h *HealthHandler) Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"uptime_seconds":  h.collector.GetUptime().Seconds(),
		"requests":        h.collector.GetMetrics(),
		"success_rate":    h.collector.GetSuccessRate(),
		"cache_hit_ratio": h.collector.GetCacheHitRatio(),
		"service":         h.service.Stats(),
	})
}

func (h *HealthHandler) registerHealthRoutes(router *gin.Engine) {
	router.GET("/health", h.Health)
	router.GET("/status", h.Status)
	router.GET("/health/detailed", h.DetailedHealth)
	router.GET("/metrics", h.Metrics)
}
