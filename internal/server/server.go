package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/preston-bernstein/nba-schedule-service/internal/config"
	httpserver "github.com/preston-bernstein/nba-schedule-service/internal/http"
	"github.com/preston-bernstein/nba-schedule-service/internal/http/handlers"
	"github.com/preston-bernstein/nba-schedule-service/internal/http/middleware"
	"github.com/preston-bernstein/nba-schedule-service/internal/logging"
	"github.com/preston-bernstein/nba-schedule-service/internal/metrics"
	"github.com/preston-bernstein/nba-schedule-service/internal/poller"
	"github.com/preston-bernstein/nba-schedule-service/internal/providers"
	"github.com/preston-bernstein/nba-schedule-service/internal/providers/fixture"
	"github.com/preston-bernstein/nba-schedule-service/internal/schedule"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	controller    *schedule.Controller
	snapshots     snapshotComponents
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
}

// New constructs a server with the configured provider, snapshots and poller.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServer(cfg, logger, nil, nil)
}

// newServer wires every component. sources and recorder may be injected by tests.
func newServer(cfg config.Config, logger *slog.Logger, sources *schedule.Sources, recorder *metrics.Recorder) *Server {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg.Metrics, logger, recorder)
	loc := providers.LocationOrLocal(cfg.Timezone)

	var src schedule.Sources
	if sources != nil {
		src = *sources
	} else {
		src = newProviderFactory(logger, recorder, loc).build(cfg)
	}

	snaps := buildSnapshots(cfg, src.Historical, loc, logger)
	opts := schedule.Options{
		Sources:   src,
		Snapshots: snaps.store,
		Fallback:  fixture.Games,
		Location:  loc,
		Logger:    logger,
		Metrics:   recorder,
	}
	if snaps.writer != nil {
		opts.Writer = snaps.writer
	}
	ctrl := schedule.NewController(opts)

	plr := poller.New(ctrl, logger, recorder, cfg.PollInterval)
	httpSrv := buildHTTPServer(cfg, ctrl, logger, recorder, plr)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		controller:    ctrl,
		snapshots:     snaps,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		poller:        plr,
		metricsStop:   metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, ctrl *schedule.Controller, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		controller: ctrl,
		httpServer: httpSrv,
		poller:     plr,
	}
}

func buildHTTPServer(cfg config.Config, ctrl *schedule.Controller, logger *slog.Logger, recorder *metrics.Recorder, plr Poller) httpServer {
	var statusFn func() poller.Status
	if plr != nil {
		statusFn = plr.Status
	}

	handler := handlers.NewHandler(ctrl, logger, statusFn)
	router := httpserver.NewRouter(handler)
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
	return netHTTPServer{srv: srv}
}

// Run starts the poller, snapshot backfill and HTTP server, then waits for context
// cancellation to shut down gracefully. The poller's first tick is the initial load.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	go s.watchLoads(ctx)
	go s.snapshots.run(ctx)
	s.poller.Start(ctx)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

// watchLoads marks the poller healthy after successful loads of today that it did not
// run itself, such as a user navigating back to today.
func (s *Server) watchLoads(ctx context.Context) {
	marker, ok := s.poller.(successMarker)
	if !ok || s.controller == nil {
		return
	}
	updates, unsubscribe := s.controller.Subscribe()
	defer unsubscribe()
	for {
		select {
		case <-ctx.Done():
			return
		case state, ok := <-updates:
			if !ok {
				return
			}
			if loadSucceededToday(state, s.controller.Now()) {
				marker.MarkSuccess(state.UpdatedAt)
			}
		}
	}
}

func loadSucceededToday(state schedule.State, now time.Time) bool {
	return !state.Loading && !state.Fallback && !state.UpdatedAt.IsZero() &&
		state.Mode(now) == schedule.ModeToday
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	shutdownMetrics(shutdownCtx, s.logger, s.metricsStop, s.metricsServer)

	if err := s.poller.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop poller", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	logging.Info(s.logger, "shutdown complete")
}

func shutdownMetrics(ctx context.Context, logger *slog.Logger, stop func(context.Context) error, srv httpServer) {
	if stop != nil {
		if err := stop(ctx); err != nil {
			logging.Warn(logger, "metrics shutdown failed", "error", err)
		}
	}
	if srv != nil {
		if err := srv.Shutdown(ctx); err != nil {
			logging.Warn(logger, "metrics server shutdown failed", "error", err)
		}
	}
}

func buildMetrics(cfg config.MetricsConfig, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Enabled,
		Port:         cfg.Port,
		ServiceName:  cfg.ServiceName,
		OtlpEndpoint: cfg.OtlpEndpoint,
		OtlpInsecure: cfg.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

// Controller exposes the schedule controller (useful for tests).
func (s *Server) Controller() *schedule.Controller {
	return s.controller
}
