// API server entry point for Resilience Insights.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/turtacn/Resilience-Insights/internal/config"
	"github.com/turtacn/Resilience-Insights/internal/infrastructure/monitoring/logging"
	httpserver "github.com/turtacn/Resilience-Insights/internal/interfaces/http"
	"github.com/turtacn/Resilience-Insights/internal/interfaces/http/handlers"
	"github.com/turtacn/Resilience-Insights/internal/interfaces/http/middleware"
	"github.com/turtacn/Resilience-Insights/internal/platform"
)

// Build-time variables injected via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

const limiterCleanupInterval = 5 * time.Minute

func main() {
	configPath := flag.String("config", "", "path to configuration file (default: INSIGHTS_* environment only)")
	httpPort := flag.Int("port", 0, "HTTP server port (overrides config)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *httpPort > 0 {
		cfg.Server.Port = *httpPort
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		OutputPaths: cfg.Log.OutputPaths,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetDefault(logger)

	if err := run(cfg, *configPath, logger); err != nil {
		logger.Error("api server exited with error", logging.Err(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, configPath string, logger logging.Logger) error {
	logger.Info("starting resilience insights api server",
		logging.String("version", version),
		logging.String("commit", commit),
		logging.Int("port", cfg.Server.Port),
		logging.String("content_store", cfg.ContentStore.Kind))

	infra, err := platform.Open(cfg, logger)
	if err != nil {
		return fmt.Errorf("infrastructure: %w", err)
	}
	defer func() {
		if err := infra.Close(); err != nil {
			logger.Error("infrastructure shutdown error", logging.Err(err))
		}
	}()

	svc, err := infra.Service()
	if err != nil {
		return fmt.Errorf("insights service: %w", err)
	}

	routerCfg := httpserver.RouterConfig{
		Mode:            cfg.Server.Mode,
		InsightsHandler: handlers.NewInsightsHandler(svc, logger.Named("http"), cfg.Server.MaxBodySize, cfg.Analysis.Debug),
		HealthHandler:   handlers.NewHealthHandler(version, healthObserver(infra), healthCheckers(infra)...),
		CORSOrigins:     cfg.Server.CORSOrigins,
		Logger:          logger,
	}
	if infra.Metrics != nil {
		routerCfg.MetricsHandler = infra.Collector.Handler()
		routerCfg.MetricsPath = cfg.Metrics.Path
		routerCfg.Recorder = infra.Metrics
	}
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewTokenBucketLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, limiterCleanupInterval)
		defer limiter.Stop()
		routerCfg.Limiter = limiter
	}

	srv := httpserver.NewServer(cfg.Server, httpserver.NewRouter(routerCfg), logger)

	if configPath != "" {
		watchConfig(configPath, cfg, logger)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case sig := <-quit:
		logger.Info("received shutdown signal", logging.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	logger.Info("api server stopped")
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.LoadFromEnv()
	}
	return config.Load(path)
}

//Personal.AI order the ending
