// Package platform opens the backends shared by the API server and the
// worker and assembles the insights service on top of them.
package platform

import (
	"context"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/turtacn/Resilience-Insights/internal/application/insights"
	"github.com/turtacn/Resilience-Insights/internal/config"
	"github.com/turtacn/Resilience-Insights/internal/infrastructure/contentstore"
	"github.com/turtacn/Resilience-Insights/internal/infrastructure/database/neo4j"
	"github.com/turtacn/Resilience-Insights/internal/infrastructure/database/neo4j/repositories"
	"github.com/turtacn/Resilience-Insights/internal/infrastructure/database/redis"
	"github.com/turtacn/Resilience-Insights/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/Resilience-Insights/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Resilience-Insights/internal/infrastructure/monitoring/prometheus"
)

const setupTimeout = 15 * time.Second

// Checker is a named readiness probe.
type Checker struct {
	Name  string
	Check func(ctx context.Context) error
}

type closer struct {
	name string
	fn   func() error
}

// Infrastructure holds the opened backends. Optional backends stay nil when
// disabled in config.
type Infrastructure struct {
	Config *config.Config
	Logger logging.Logger

	Store contentstore.Store

	Redis    *redis.Client
	Cache    redis.Cache
	JobLock  *redis.JobLock
	Neo4j    *neo4j.Driver
	Graphs   *repositories.GraphRepository
	Producer *kafka.Producer
	Events   *kafka.ReportPublisher

	Collector prometheus.MetricsCollector
	Metrics   *prometheus.InsightsMetrics

	closers []closer
}

// Open connects every enabled backend. On failure whatever was opened is
// closed again.
func Open(cfg *config.Config, log logging.Logger) (_ *Infrastructure, err error) {
	infra := &Infrastructure{Config: cfg, Logger: log}
	defer func() {
		if err != nil {
			_ = infra.Close()
		}
	}()

	if cfg.Metrics.Enabled {
		infra.Collector, err = prometheus.NewMetricsCollector(prometheus.CollectorConfig{
			Namespace:            cfg.Metrics.Namespace,
			EnableProcessMetrics: true,
			EnableGoMetrics:      true,
		}, log.Named("metrics"))
		if err != nil {
			return nil, err
		}
		infra.Metrics = prometheus.NewInsightsMetrics(infra.Collector)
	}

	if infra.Store, err = contentstore.New(cfg.ContentStore, log); err != nil {
		return nil, err
	}

	if cfg.Redis.Enabled {
		if infra.Redis, err = redis.NewClient(cfg.Redis, log.Named("redis")); err != nil {
			return nil, err
		}
		infra.addCloser("redis", infra.Redis.Close)
		infra.Cache = redis.NewCache(infra.Redis, log.Named("cache"),
			redis.WithPrefix(cfg.Redis.KeyPrefix),
			redis.WithDefaultTTL(cfg.Redis.DefaultTTL))
		infra.JobLock = redis.NewJobLock(infra.Redis, log.Named("joblock"), cfg.Redis.KeyPrefix, 0)
	}

	if cfg.Neo4j.Enabled {
		if infra.Neo4j, err = neo4j.NewDriver(cfg.Neo4j, log.Named("neo4j")); err != nil {
			return nil, err
		}
		drv := infra.Neo4j
		infra.addCloser("neo4j", func() error { return drv.Close(context.Background()) })

		infra.Graphs = repositories.NewGraphRepository(drv, log.Named("graph"), 0)
		ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
		if cerr := infra.Graphs.EnsureConstraints(ctx); cerr != nil {
			log.Warn("failed to ensure graph constraints", logging.Err(cerr))
		}
		cancel()
	}

	if cfg.Kafka.Enabled {
		infra.Producer, err = kafka.NewProducer(kafka.ProducerConfig{
			Brokers:   cfg.Kafka.Brokers,
			BatchSize: cfg.Kafka.BatchSize,
		}, log.Named("kafka.producer"))
		if err != nil {
			return nil, err
		}
		infra.addCloser("kafka producer", infra.Producer.Close)

		var observer kafka.PublishObserver
		if infra.Metrics != nil {
			observer = infra.Metrics
		}
		infra.Events = kafka.NewReportPublisher(infra.Producer, cfg.Kafka.ResultTopic, observer)
	}

	return infra, nil
}

func (i *Infrastructure) addCloser(name string, fn func() error) {
	i.closers = append(i.closers, closer{name: name, fn: fn})
}

// EnsureTopics creates the request, result and dead-letter topics. A no-op
// when Kafka is disabled.
func (i *Infrastructure) EnsureTopics(ctx context.Context) error {
	if !i.Config.Kafka.Enabled {
		return nil
	}
	tm, err := kafka.NewTopicManager(i.Config.Kafka.Brokers, i.Logger.Named("kafka.topics"))
	if err != nil {
		return err
	}
	defer tm.Close()
	return tm.EnsureTopics(ctx, kafka.DefaultTopics(i.Config.Kafka.RequestTopic, i.Config.Kafka.ResultTopic))
}

// Service builds the orchestrator over the opened backends.
func (i *Infrastructure) Service() (insights.Service, error) {
	deps := insights.Deps{Store: i.Store, Logger: i.Logger}
	if i.Cache != nil {
		deps.Cache = i.Cache
	}
	if i.Events != nil {
		deps.Events = i.Events
	}
	if i.Graphs != nil {
		deps.Graphs = i.Graphs
	}
	if i.Metrics != nil {
		deps.Metrics = prometheus.NewAnalysisRecorder(i.Metrics)
	}
	return insights.NewService(insights.ConfigFromSettings(i.Config.Analysis, i.Config.Redis.DefaultTTL), deps)
}

// Checkers returns readiness probes for the content store and every opened
// backend.
func (i *Infrastructure) Checkers() []Checker {
	checks := []Checker{{Name: "content_store", Check: i.Store.Ping}}
	if i.Redis != nil {
		checks = append(checks, Checker{Name: "redis", Check: i.Redis.Ping})
	}
	if i.Neo4j != nil {
		checks = append(checks, Checker{Name: "neo4j", Check: i.Neo4j.HealthCheck})
	}
	return checks
}

// Close releases backends in reverse opening order and reports every
// failure.
func (i *Infrastructure) Close() error {
	var result *multierror.Error
	for k := len(i.closers) - 1; k >= 0; k-- {
		c := i.closers[k]
		if err := c.fn(); err != nil {
			result = multierror.Append(result, err)
			i.Logger.Warn("failed to close backend", logging.String("backend", c.name), logging.Err(err))
		}
	}
	i.closers = nil
	return result.ErrorOrNil()
}

//Personal.AI order the ending
