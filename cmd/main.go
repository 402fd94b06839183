package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/okian/medalboard/internal/adapters/http/api"
	"github.com/okian/medalboard/internal/adapters/http/site"
	"github.com/okian/medalboard/internal/adapters/http/swagger"
	service "github.com/okian/medalboard/internal/app"
	"github.com/okian/medalboard/internal/config"
	"github.com/okian/medalboard/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout            = 10 * time.Second
	writeTimeout           = 30 * time.Second
	idleTimeout            = 60 * time.Second
	readHeaderTimeout      = 5 * time.Second
	shutdownTimeout        = 30 * time.Second
	serviceMetricsInterval = 30 * time.Second
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// A missing or malformed dataset is fatal.
	dash := service.New(append(service.FromConfig(cfg), service.WithLogger(log.Named("dashboard")))...)
	if err := dash.Start(ctx); err != nil {
		log.Error(ctx, "failed to start dashboard", logger.Error(err))
		os.Exit(1)
	}
	defer dash.Stop()

	go startServiceMetricsUpdater(ctx, dash)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newRouter(ctx, dash, log.Named("http")),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info(context.Background(), "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "server shutdown failed", logger.Error(err))
	}

	log.Info(shutdownCtx, "server stopped")
}

// newRouter registers the API, the docs and the dashboard page. The page
// catches every remaining GET so it goes last.
func newRouter(ctx context.Context, dash *service.Dashboard, log logger.Logger) *mux.Router {
	router := mux.NewRouter()
	swagger.Register(ctx, router)
	api.NewServer(dash, dash, api.WithLogger(log)).Register(ctx, router)
	site.Register(ctx, router)
	return router
}

// startServiceMetricsUpdater refreshes the dataset gauges until ctx ends.
func startServiceMetricsUpdater(ctx context.Context, dash *service.Dashboard) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateServiceMetrics(dash)
		}
	}
}

// updateServiceMetrics publishes the dataset row counts. GetStats updates
// the gauges as a side effect.
func updateServiceMetrics(dash *service.Dashboard) {
	_ = dash.GetStats()
}
