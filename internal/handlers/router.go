package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/chrisstampar/fx-api/internal/config"
	"github.com/chrisstampar/fx-api/internal/middleware"
	"github.com/chrisstampar/fx-api/internal/services"
	"github.com/chrisstampar/fx-api/pkg/metrics"
	"github.com/chrisstampar/fx-api/pkg/ratelimiter"
)

// RateLimiters bundles the per-tier request limiters
type RateLimiters struct {
	Read  *ratelimiter.RateLimiter
	Write *ratelimiter.RateLimiter
}

// NewRouter assembles the gin engine: global middleware, health routes
// at the root and the versioned API under /v1. Read endpoints share one
// limiter, write and batch endpoints a stricter one.
func NewRouter(service *services.GatewayService, collector *metrics.Collector, cfg *config.Config, limiters RateLimiters) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Performance(collector))
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	h := New(service, cfg)
	health := NewHealthHandler(service, collector, cfg.Server.Version, cfg.Server.Environment)
	health.registerHealthRoutes(router)

	readLimit := ratelimiter.Middleware(limiters.Read)
	writeLimit := ratelimiter.Middleware(limiters.Write)

	v1 := router.Group("/v1")

	balances := v1.Group("/balances")
	h.registerBalanceRoutes(balances, readLimit, writeLimit)

	protocol := v1.Group("/protocol")
	h.registerProtocolRoutes(protocol, readLimit, writeLimit)

	v2 := v1.Group("/v2", readLimit)
	h.registerV2Routes(v2)

	convex := v1.Group("/convex", readLimit)
	h.registerConvexRoutes(convex)

	curve := v1.Group("/curve", readLimit)
	h.registerCurveRoutes(curve)

	gauges := v1.Group("/gauges", readLimit)
	h.registerGaugeRoutes(gauges)

	vefxn := v1.Group("/vefxn", readLimit)
	h.registerVeFXNRoutes(vefxn)

	transactions := v1.Group("/transactions", writeLimit)
	h.registerTransactionRoutes(transactions)

	return router
}
