package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/nba-schedule-service/internal/config"
	"github.com/preston-bernstein/nba-schedule-service/internal/http/middleware"
	"github.com/preston-bernstein/nba-schedule-service/internal/logging"
	"github.com/preston-bernstein/nba-schedule-service/internal/relay"
	"github.com/preston-bernstein/nba-schedule-service/internal/store"
)

var newRedisStore = func(ctx context.Context, cfg store.RedisConfig) (store.ByteStore, error) {
	return store.NewRedisStore(ctx, cfg)
}

// RelayServer runs the CORS relay as its own process.
type RelayServer struct {
	logger        *slog.Logger
	cache         store.ByteStore
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
}

// NewRelay builds the relay server. An unreachable redis falls back to the memory cache.
func NewRelay(ctx context.Context, cfg config.RelayConfig, logger *slog.Logger) *RelayServer {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg.Metrics, logger, nil)
	cache := buildRelayCache(ctx, cfg, logger)

	handler := relay.NewHandler(relay.Options{
		Client:    &http.Client{Timeout: cfg.Timeout},
		UserAgent: cfg.UserAgent,
		Cache:     cache,
		CacheTTL:  cfg.CacheTTL,
		Logger:    logger,
		Metrics:   recorder,
	})
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      middleware.LoggingMiddleware(logger, recorder, handler),
		ReadTimeout:  readTimeout,
		WriteTimeout: cfg.Timeout + writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return &RelayServer{
		logger:        logger,
		cache:         cache,
		httpServer:    netHTTPServer{srv: srv},
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
	}
}

func buildRelayCache(ctx context.Context, cfg config.RelayConfig, logger *slog.Logger) store.ByteStore {
	switch cfg.Cache {
	case config.CacheOff:
		return nil
	case config.CacheRedis:
		rs, err := newRedisStore(ctx, store.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err == nil {
			logging.Info(logger, "relay cache using redis", slog.String("addr", cfg.RedisAddr))
			return rs
		}
		logging.Warn(logger, "redis unavailable, using memory cache", "err", err)
	}
	return store.NewMemoryStore()
}

// Run serves until ctx is canceled.
func (r *RelayServer) Run(ctx context.Context, stop context.CancelFunc) {
	if r.metricsServer != nil {
		launchServer("metrics", r.metricsServer, r.logger, nil)
	}
	launchServer("relay", r.httpServer, r.logger, func(error) {
		if stop != nil {
			stop()
		}
	})

	<-ctx.Done()
	logging.Info(r.logger, "shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	shutdownMetrics(shutdownCtx, r.logger, r.metricsStop, r.metricsServer)
	if err := r.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(r.logger, "graceful shutdown failed", err)
	}
	if r.cache != nil {
		if err := r.cache.Close(); err != nil {
			logging.Warn(r.logger, "relay cache close failed", "err", err)
		}
	}
	logging.Info(r.logger, "shutdown complete")
}

// Handler exposes the HTTP handler (useful for tests).
func (r *RelayServer) Handler() http.Handler {
	return r.httpServer.Handler()
}
