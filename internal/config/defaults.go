package config

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultServerPort            = 8080
	DefaultServerMode            = "release"
	DefaultServerReadTimeout     = 15 * time.Second
	DefaultServerWriteTimeout    = 60 * time.Second
	DefaultServerShutdownTimeout = 30 * time.Second
	DefaultServerMaxBodySize     = 1 << 20

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultMaxRecords     = 500
	DefaultFetchTimeout   = 10 * time.Second
	DefaultOverallTimeout = 60 * time.Second

	DefaultContentStoreKind    = "file"
	DefaultContentStorePath    = "./data/case_studies.json"
	DefaultContentStoreTimeout = 10 * time.Second

	DefaultRedisAddr      = "localhost:6379"
	DefaultRedisPoolSize  = 10
	DefaultRedisTTL       = 15 * time.Minute
	DefaultRedisKeyPrefix = "insights:"

	DefaultNeo4jURI      = "bolt://localhost:7687"
	DefaultNeo4jDatabase = "neo4j"
	DefaultNeo4jPoolSize = 50

	DefaultKafkaBroker            = "localhost:9092"
	DefaultKafkaGroupID           = "insights-worker"
	DefaultKafkaRequestTopic      = "insights.analysis.requested"
	DefaultKafkaResultTopic       = "insights.report.generated"
	DefaultKafkaBatchSize         = 100
	DefaultKafkaWorkerConcurrency = 2

	DefaultMetricsNamespace = "insights"
	DefaultMetricsPath      = "/metrics"

	DefaultRateLimitRPS   = 5.0
	DefaultRateLimitBurst = 10
)

// ApplyDefaults fills every zero-value field in cfg. Explicit values win.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultServerReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultServerWriteTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultServerShutdownTimeout
	}
	if cfg.Server.MaxBodySize == 0 {
		cfg.Server.MaxBodySize = DefaultServerMaxBodySize
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	// ── Analysis ──────────────────────────────────────────────────────────────
	if cfg.Analysis.MaxRecords == 0 {
		cfg.Analysis.MaxRecords = DefaultMaxRecords
	}
	if cfg.Analysis.FetchTimeout == 0 {
		cfg.Analysis.FetchTimeout = DefaultFetchTimeout
	}
	if cfg.Analysis.OverallTimeout == 0 {
		cfg.Analysis.OverallTimeout = DefaultOverallTimeout
	}

	// ── Content store ─────────────────────────────────────────────────────────
	if cfg.ContentStore.Kind == "" {
		cfg.ContentStore.Kind = DefaultContentStoreKind
	}
	if cfg.ContentStore.Kind == "file" && cfg.ContentStore.Path == "" {
		cfg.ContentStore.Path = DefaultContentStorePath
	}
	if cfg.ContentStore.Timeout == 0 {
		cfg.ContentStore.Timeout = DefaultContentStoreTimeout
	}

	// ── Redis ─────────────────────────────────────────────────────────────────
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.PoolSize == 0 {
		cfg.Redis.PoolSize = DefaultRedisPoolSize
	}
	if cfg.Redis.DefaultTTL == 0 {
		cfg.Redis.DefaultTTL = DefaultRedisTTL
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = DefaultRedisKeyPrefix
	}

	// ── Neo4j ─────────────────────────────────────────────────────────────────
	if cfg.Neo4j.URI == "" {
		cfg.Neo4j.URI = DefaultNeo4jURI
	}
	if cfg.Neo4j.Database == "" {
		cfg.Neo4j.Database = DefaultNeo4jDatabase
	}
	if cfg.Neo4j.MaxConnectionPoolSize == 0 {
		cfg.Neo4j.MaxConnectionPoolSize = DefaultNeo4jPoolSize
	}

	// ── Kafka ─────────────────────────────────────────────────────────────────
	if len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Brokers = []string{DefaultKafkaBroker}
	}
	if cfg.Kafka.GroupID == "" {
		cfg.Kafka.GroupID = DefaultKafkaGroupID
	}
	if cfg.Kafka.RequestTopic == "" {
		cfg.Kafka.RequestTopic = DefaultKafkaRequestTopic
	}
	if cfg.Kafka.ResultTopic == "" {
		cfg.Kafka.ResultTopic = DefaultKafkaResultTopic
	}
	if cfg.Kafka.BatchSize == 0 {
		cfg.Kafka.BatchSize = DefaultKafkaBatchSize
	}
	if cfg.Kafka.WorkerConcurrency == 0 {
		cfg.Kafka.WorkerConcurrency = DefaultKafkaWorkerConcurrency
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}

	// ── Rate limit ────────────────────────────────────────────────────────────
	if cfg.RateLimit.RequestsPerSecond == 0 {
		cfg.RateLimit.RequestsPerSecond = DefaultRateLimitRPS
	}
	if cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = DefaultRateLimitBurst
	}
}

//Personal.AI order the ending
