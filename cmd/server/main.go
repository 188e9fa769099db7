package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/chrisstampar/fx-api/internal/config"
	"github.com/chrisstampar/fx-api/internal/handlers"
	"github.com/chrisstampar/fx-api/internal/sdk"
	"github.com/chrisstampar/fx-api/internal/services"
	"github.com/chrisstampar/fx-api/pkg/cache"
	"github.com/chrisstampar/fx-api/pkg/logger"
	"github.com/chrisstampar/fx-api/pkg/metrics"
	"github.com/chrisstampar/fx-api/pkg/ratelimiter"
)

const trackerRetention = 24 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(&logger.Config{
		Level:       cfg.Logging.Level,
		Environment: cfg.Server.Environment,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	log := logger.GetLogger()
	defer log.Sync()

	responseCache := cache.New(cfg.Cache.DefaultTTL)
	defer responseCache.Stop()

	collector := metrics.NewCollector()
	tracker := services.NewTransactionTracker()

	factory := func(ctx context.Context, url string) (sdk.ProtocolClient, error) {
		dialCtx, cancel := context.WithTimeout(ctx, cfg.RPC.Timeout)
		defer cancel()
		return sdk.Dial(dialCtx, url)
	}
	failover, err := services.NewFailoverClient(cfg.RPC.URLs, factory, collector)
	if err != nil {
		log.Fatal("failed to set up RPC failover", zap.Error(err))
	}
	defer failover.Close()

	service := services.NewGatewayService(failover, responseCache, tracker, collector, cfg)

	limiters := handlers.RateLimiters{
		Read:  ratelimiter.New(cfg.RateLimit.ReadPerMinute, cfg.RateLimit.Window),
		Write: ratelimiter.New(cfg.RateLimit.WritePerMinute, cfg.RateLimit.Window),
	}

	router := handlers.NewRouter(service, collector, cfg, limiters)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	stopCleanup := startCleanupLoop(service, limiters)
	defer close(stopCleanup)

	go func() {
		log.Info("starting server",
			zap.String("addr", server.Addr),
			zap.String("environment", cfg.Server.Environment),
			zap.Strings("rpc_endpoints", cfg.RPC.URLs))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}

// startCleanupLoop periodically evicts stale tracker entries, idle
// per-resource locks and expired rate limit windows
func startCleanupLoop(service *services.GatewayService, limiters handlers.RateLimiters) chan struct{} {
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				removed := service.Tracker().Cleanup(trackerRetention)
				locks := service.Locks().Cleanup(time.Hour)
				limiters.Read.Cleanup()
				limiters.Write.Cleanup()
				logger.GetLogger().Debug("cleanup pass complete",
					zap.Int("transactions_removed", removed),
					zap.Int("locks_removed", locks))
			case <-stop:
				return
			}
		}
	}()
	return stop
}
