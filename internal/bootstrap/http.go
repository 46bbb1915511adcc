package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skipflow/skipflow-go/config"
	httpx "github.com/skipflow/skipflow-go/internal/http"
)

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Verifier httpx.TokenVerifier
	Logger   *slog.Logger
}

// StartHTTPServer creates and starts the HTTP server.
// Returns the server instance for graceful shutdown.
func StartHTTPServer(cfg *HTTPServerConfig) *http.Server {
	if cfg == nil {
		return nil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	handler := httpx.NewRouter(httpx.RouterServices{
		Jobs:       cfg.Services.Jobs,
		Swaps:      cfg.Services.Swaps,
		Payments:   cfg.Services.Payments,
		Accounting: cfg.Services.Accounting,
		DriverRuns: cfg.Services.DriverRuns,
		Verifier:   cfg.Verifier,
		Tenants:    cfg.Services.Tenants,
		Logger:     logger,
	})

	return startServer(logger, handler, appCfg.HTTP)
}

func startServer(logger *slog.Logger, handler http.Handler, cfg config.HTTPConfig) *http.Server {
	// Guard against empty addr to avoid listening on Go default
	addr := cfg.Addr
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
		}
	}()

	return server
}

// RunConfig groups dependencies for the blocking run loop.
type RunConfig struct {
	Config *config.AppConfig
	Server *http.Server
	Logger *slog.Logger
}

// RunUntilShutdown blocks until SIGINT or SIGTERM, then gracefully stops the
// HTTP server within the configured shutdown timeout.
func RunUntilShutdown(cfg RunConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	<-quit
	logger.Info("shutting down")

	timeout := 15 * time.Second
	if cfg.Config != nil && cfg.Config.HTTP.ShutdownTimeout > 0 {
		timeout = cfg.Config.HTTP.ShutdownTimeout
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if cfg.Server != nil {
		if err := cfg.Server.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}

	logger.Info("HTTP server stopped")
	return nil
}
