// Package config defines all configuration structures for the insights
// service. No I/O or parsing logic lives in this file, only data types and
// validation.
package config

import (
	"fmt"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	MaxBodySize     int64         `mapstructure:"max_body_size"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// CORSOrigins enables CORS for the listed origins. Empty disables it.
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level       string   `mapstructure:"level"`
	Format      string   `mapstructure:"format"` // "json" | "console"
	OutputPaths []string `mapstructure:"output_paths"`
}

// AnalysisConfig holds engine tunables applied to every run unless a request
// overrides them.
type AnalysisConfig struct {
	// MaxRecords caps the corpus fetched from the content store.
	MaxRecords int `mapstructure:"max_records"`

	// ClusterCount overrides the derived k. Zero means derive from corpus size.
	ClusterCount int `mapstructure:"cluster_count"`

	// Seed feeds the k-means seeding RNG. Zero means time-based.
	Seed int64 `mapstructure:"seed"`

	FetchTimeout   time.Duration `mapstructure:"fetch_timeout"`
	OverallTimeout time.Duration `mapstructure:"overall_timeout"`

	// Debug exposes raw error internals in failure results.
	Debug bool `mapstructure:"debug"`
}

// ContentStoreConfig selects and parameterises the record source.
type ContentStoreConfig struct {
	Kind    string        `mapstructure:"kind"` // "http" | "file"
	URL     string        `mapstructure:"url"`
	Path    string        `mapstructure:"path"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// RedisConfig holds report-cache connection parameters.
type RedisConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`

	// Addrs lists sentinel or cluster seed nodes. Takes precedence over Addr.
	Addrs      []string `mapstructure:"addrs"`
	MasterName string   `mapstructure:"master_name"`

	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	DefaultTTL   time.Duration `mapstructure:"default_ttl"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// Neo4jConfig holds knowledge-graph export connection parameters.
type Neo4jConfig struct {
	Enabled               bool          `mapstructure:"enabled"`
	URI                   string        `mapstructure:"uri"`
	User                  string        `mapstructure:"user"`
	Password              string        `mapstructure:"password"`
	Database              string        `mapstructure:"database"`
	MaxConnectionPoolSize int           `mapstructure:"max_connection_pool_size"`
	ConnectionTimeout     time.Duration `mapstructure:"connection_timeout"`
}

// KafkaConfig holds analysis-request / report-event parameters.
type KafkaConfig struct {
	Enabled           bool     `mapstructure:"enabled"`
	Brokers           []string `mapstructure:"brokers"`
	GroupID           string   `mapstructure:"group_id"`
	RequestTopic      string   `mapstructure:"request_topic"`
	ResultTopic       string   `mapstructure:"result_topic"`
	BatchSize         int      `mapstructure:"batch_size"`
	WorkerConcurrency int      `mapstructure:"worker_concurrency"`
}

// MetricsConfig holds Prometheus exposition settings.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
	Path      string `mapstructure:"path"`
}

// RateLimitConfig holds the HTTP token-bucket settings.
type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// Config is the root configuration object.
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Log          LogConfig          `mapstructure:"log"`
	Analysis     AnalysisConfig     `mapstructure:"analysis"`
	ContentStore ContentStoreConfig `mapstructure:"content_store"`
	Redis        RedisConfig        `mapstructure:"redis"`
	Neo4j        Neo4jConfig        `mapstructure:"neo4j"`
	Kafka        KafkaConfig        `mapstructure:"kafka"`
	Metrics      MetricsConfig      `mapstructure:"metrics"`
	RateLimit    RateLimitConfig    `mapstructure:"rate_limit"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of a defaulted Config and returns the
// first problem found. Optional backends are only checked when enabled.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	if c.Analysis.MaxRecords < 1 {
		return fmt.Errorf("config: analysis.max_records must be ≥ 1, got %d", c.Analysis.MaxRecords)
	}
	if c.Analysis.ClusterCount < 0 {
		return fmt.Errorf("config: analysis.cluster_count must be ≥ 0, got %d", c.Analysis.ClusterCount)
	}
	if c.Analysis.FetchTimeout <= 0 {
		return fmt.Errorf("config: analysis.fetch_timeout must be positive")
	}
	if c.Analysis.OverallTimeout <= 0 {
		return fmt.Errorf("config: analysis.overall_timeout must be positive")
	}

	switch c.ContentStore.Kind {
	case "http":
		if c.ContentStore.URL == "" {
			return fmt.Errorf("config: content_store.url is required for kind http")
		}
	case "file":
		if c.ContentStore.Path == "" {
			return fmt.Errorf("config: content_store.path is required for kind file")
		}
	default:
		return fmt.Errorf("config: content_store.kind %q is invalid; expected http|file", c.ContentStore.Kind)
	}

	if c.Redis.Enabled {
		if c.Redis.Addr == "" && len(c.Redis.Addrs) == 0 {
			return fmt.Errorf("config: redis.addr or redis.addrs is required")
		}
		if c.Redis.DB < 0 {
			return fmt.Errorf("config: redis.db must be ≥ 0, got %d", c.Redis.DB)
		}
	}

	if c.Neo4j.Enabled && c.Neo4j.URI == "" {
		return fmt.Errorf("config: neo4j.uri is required")
	}

	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("config: kafka.brokers must contain at least one broker address")
		}
		if c.Kafka.GroupID == "" {
			return fmt.Errorf("config: kafka.group_id is required")
		}
		if c.Kafka.WorkerConcurrency < 1 {
			return fmt.Errorf("config: kafka.worker_concurrency must be ≥ 1, got %d", c.Kafka.WorkerConcurrency)
		}
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst < 1) {
		return fmt.Errorf("config: rate_limit requires requests_per_second > 0 and burst ≥ 1")
	}

	return nil
}

//Personal.AI order the ending
