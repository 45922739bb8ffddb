// Worker entry point for Resilience Insights: runs analysis requests read
// from Kafka and announces the finished reports.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-multierror"

	"github.com/turtacn/Resilience-Insights/internal/config"
	"github.com/turtacn/Resilience-Insights/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/Resilience-Insights/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Resilience-Insights/internal/interfaces/http/handlers"
	"github.com/turtacn/Resilience-Insights/internal/interfaces/worker"
	"github.com/turtacn/Resilience-Insights/internal/platform"
)

var version = "dev"

const (
	defaultHealthPort = 8081
	defaultJobTimeout = 5 * time.Minute
	maxRetries        = 3
)

func main() {
	configPath := flag.String("config", "", "path to configuration file (default: INSIGHTS_* environment only)")
	workers := flag.Int("workers", 0, "number of consumers in the group (default: kafka.worker_concurrency)")
	healthPort := flag.Int("health-port", defaultHealthPort, "port for /healthz, /readyz and /metrics")
	jobTimeout := flag.Duration("job-timeout", defaultJobTimeout, "upper bound for one analysis job")
	flag.Parse()

	var (
		cfg *config.Config
		err error
	)
	if *configPath == "" {
		cfg, err = config.LoadFromEnv()
	} else {
		cfg, err = config.Load(*configPath)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if !cfg.Kafka.Enabled {
		fmt.Fprintln(os.Stderr, "kafka.enabled must be set for the worker")
		os.Exit(1)
	}
	if *workers > 0 {
		cfg.Kafka.WorkerConcurrency = *workers
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

	if err := run(cfg, *healthPort, *jobTimeout, logger); err != nil {
		logger.Error("worker exited with error", logging.Err(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, healthPort int, jobTimeout time.Duration, logger logging.Logger) error {
	logger.Info("starting resilience insights worker",
		logging.String("version", version),
		logging.Int("consumers", cfg.Kafka.WorkerConcurrency),
		logging.String("topic", cfg.Kafka.RequestTopic))

	infra, err := platform.Open(cfg, logger)
	if err != nil {
		return fmt.Errorf("infrastructure: %w", err)
	}
	defer func() {
		if err := infra.Close(); err != nil {
			logger.Error("infrastructure shutdown error", logging.Err(err))
		}
	}()

	setupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := infra.EnsureTopics(setupCtx); err != nil {
		logger.Warn("failed to ensure kafka topics", logging.Err(err))
	}
	cancel()

	svc, err := infra.Service()
	if err != nil {
		return fmt.Errorf("insights service: %w", err)
	}

	var claims worker.JobClaimer
	if infra.JobLock != nil {
		claims = infra.JobLock
	} else {
		logger.Warn("redis disabled; redelivered requests will be analysed again")
	}
	handler := worker.NewAnalysisHandler(svc, claims, logger, jobTimeout)

	var observer kafka.ConsumeObserver
	if infra.Metrics != nil {
		observer = infra.Metrics
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	consumers := make([]*kafka.Consumer, 0, cfg.Kafka.WorkerConcurrency)
	defer func() {
		var result *multierror.Error
		for _, c := range consumers {
			if err := c.Close(); err != nil {
				result = multierror.Append(result, err)
			}
		}
		if err := result.ErrorOrNil(); err != nil {
			logger.Error("consumer shutdown error", logging.Err(err))
		}
	}()

	for i := 0; i < cfg.Kafka.WorkerConcurrency; i++ {
		c, err := kafka.NewConsumer(kafka.ConsumerConfig{
			Brokers: cfg.Kafka.Brokers,
			GroupID: cfg.Kafka.GroupID,
			Topics:  []string{cfg.Kafka.RequestTopic},
			Retry: kafka.RetryConfig{
				MaxRetries:      maxRetries,
				RetryBackoff:    time.Second,
				MaxRetryBackoff: 30 * time.Second,
				DeadLetterTopic: kafka.TopicDeadLetter,
			},
		}, infra.Producer, observer, logger.Named("kafka.consumer").With(logging.Int("consumer", i)))
		if err != nil {
			return fmt.Errorf("kafka consumer: %w", err)
		}
		c.Subscribe(cfg.Kafka.RequestTopic, handler.Handle)
		if err := c.Start(ctx); err != nil {
			return err
		}
		consumers = append(consumers, c)
	}

	healthSrv := startHealthServer(healthPort, infra, logger)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := healthSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error("health server shutdown error", logging.Err(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("received shutdown signal; waiting for in-flight jobs", logging.String("signal", sig.String()))
	return nil
}

func startHealthServer(port int, infra *platform.Infrastructure, logger logging.Logger) *http.Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	checkers := make([]handlers.HealthChecker, 0)
	for _, p := range infra.Checkers() {
		checkers = append(checkers, handlers.NewChecker(p.Name, p.Check))
	}
	var observer handlers.HealthObserver
	if infra.Metrics != nil {
		observer = infra.Metrics
		engine.GET(infra.Config.Metrics.Path, gin.WrapH(infra.Collector.Handler()))
	}
	handlers.NewHealthHandler(version, observer, checkers...).RegisterRoutes(engine)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("health server listening", logging.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("health server error", logging.Err(err))
		}
	}()
	return srv
}

//Personal.AI order the ending
