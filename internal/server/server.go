package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/nba-roster-service/internal/config"
	httpserver "github.com/preston-bernstein/nba-roster-service/internal/http"
	"github.com/preston-bernstein/nba-roster-service/internal/http/handlers"
	"github.com/preston-bernstein/nba-roster-service/internal/http/middleware"
	"github.com/preston-bernstein/nba-roster-service/internal/kv"
	"github.com/preston-bernstein/nba-roster-service/internal/logging"
	"github.com/preston-bernstein/nba-roster-service/internal/metrics"
	"github.com/preston-bernstein/nba-roster-service/internal/roster"
)

var (
	metricsSetup = metrics.Setup
	openSlot     = kv.Open
)

// Server owns the roster store and the HTTP and metrics listeners.
type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	roster        *roster.Store
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
	closeSlot     func() error
}

// New opens the configured storage backend, loads the roster and wires the
// HTTP stack. The context bounds backend construction only.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(ctx, cfg, logger)

	slot, closeSlot, err := openSlot(ctx, cfg.Storage, logger)
	if err != nil {
		if metricsShutdown != nil {
			_ = metricsShutdown(ctx)
		}
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Backend, err)
	}

	store := roster.New(slot, roster.Options{
		Key:      cfg.Storage.Key,
		Backend:  cfg.Storage.Backend,
		Logger:   logger,
		Recorder: recorder,
	})
	store.Load()

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		roster:        store,
		httpServer:    buildHTTPServer(cfg, store, logger, recorder),
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
		closeSlot:     closeSlot,
	}, nil
}

func buildHTTPServer(cfg config.Config, store *roster.Store, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	handler := handlers.NewHandler(store, logger)
	router := httpserver.NewRouter(handler)
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	return netHTTPServer{srv: &http.Server{
		Addr:         cfg.Addr(),
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}}
}

func buildMetrics(ctx context.Context, cfg config.Config, logger *slog.Logger) (*metrics.Recorder, httpServer, func(context.Context) error) {
	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(ctx, recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", handler)
		metricsSrv = netHTTPServer{srv: &http.Server{
			Addr:              cfg.MetricsAddr(),
			Handler:           mux,
			ReadHeaderTimeout: readTimeout,
		}}
	}

	return rec, metricsSrv, shutdown
}

// Run serves until ctx is cancelled or a listener fails, then shuts down
// gracefully. A listener failure is returned.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return s.serve(gctx, "http", s.httpServer) })
	if s.metricsServer != nil {
		g.Go(func() error { return s.serve(gctx, "metrics", s.metricsServer) })
	}
	g.Go(func() error {
		<-gctx.Done()
		logging.Info(s.logger, "shutdown signal received")
		s.gracefulShutdown()
		return nil
	})

	return g.Wait()
}

func (s *Server) serve(ctx context.Context, name string, srv httpServer) error {
	logging.Info(s.logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.Error(s.logger, name+" server failed", err)
		return fmt.Errorf("%s server: %w", name, err)
	}
	// A listener that returns cleanly keeps the group alive until shutdown.
	<-ctx.Done()
	return nil
}

func (s *Server) gracefulShutdown() {
	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.closeSlot != nil {
		if err := s.closeSlot(); err != nil {
			logging.Warn(s.logger, "storage close failed", "error", err)
		}
	}

	logging.Info(s.logger, "shutdown complete", logging.FieldDurationMS, time.Since(start).Milliseconds())
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

// Roster exposes the loaded roster store.
func (s *Server) Roster() *roster.Store {
	return s.roster
}
