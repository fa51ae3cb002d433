package http

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.uber.org/zap"

	"github.com/romansndlr/remix-todos/internal/adapter/database"
	"github.com/romansndlr/remix-todos/internal/adapter/http/routes"
	"github.com/romansndlr/remix-todos/internal/adapter/telemetry"
	"github.com/romansndlr/remix-todos/pkg/config"
)

// NewServer wires storage, telemetry and the router for cfg. The returned
// cleanup releases everything NewServer opened.
func NewServer(ctx context.Context, cfg *config.AppConfig, logger *config.Logger) (*http.Server, *telemetry.Container, func(), error) {
	tel, err := telemetry.NewContainer(ctx, cfg, logger)

	if err != nil {
		return nil, nil, nil, err
	}

	queryLogger := zerolog.New(os.Stderr).With().Timestamp().Str("component", "sql").Logger()

	store, err := database.Open(ctx, cfg.Database, queryLogger, tel.NewTelemetryProbe())

	if err != nil {
		tel.Shutdown(ctx)
		return nil, nil, nil, err
	}

	rateLimitStore, err := config.NewRateLimitStore(cfg.RateLimit)

	if err != nil {
		store.Close()
		tel.Shutdown(ctx)
		return nil, nil, nil, err
	}

	container := NewContainer(store.Todos, tel.NewTelemetryProbe(), tel.AppMetrics, logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := routes.SetupRouterWithConfig(routes.HandlersConfig{
		TodoHandler: container.TodoHandler,
	}, routes.Dependencies{
		Metrics:     tel.AppMetrics,
		Logger:      logger,
		RateLimiter: config.NewRateLimiter(cfg.RateLimit, rateLimitStore, logger.Zap(), tel.AppMetrics),
	}, cfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout.Duration,
		WriteTimeout: cfg.WriteTimeout.Duration,
	}

	cleanup := func() {
		rateLimitStore.Close()
		store.Close()
	}

	return srv, tel, cleanup, nil
}

// StartServerWithConfig serves until SIGINT/SIGTERM, then drains in-flight
// requests within the configured shutdown timeout.
func StartServerWithConfig(cfg *config.AppConfig, logger *config.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, tel, cleanup, err := NewServer(ctx, cfg, logger)

	if err != nil {
		return err
	}

	defer cleanup()

	tel.AppMetrics.StartSystemMetrics(ctx)
	tel.StartMetricsServer()

	logger.Logger.Info("Server starting",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.String("database_driver", cfg.Database.Driver),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.String("rate_limit_backend", cfg.RateLimit.Backend),
		zap.Bool("https_enforced", cfg.EnforceHTTPS))

	serveErr := make(chan error, 1)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			tel.Shutdown(context.Background())
			return err
		}
	case <-ctx.Done():
	}

	logger.Logger.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout.Duration)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error("Server shutdown failed", zap.Error(err))
	}

	if err := tel.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error("Telemetry shutdown failed", zap.Error(err))
	}

	return nil
}
