package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/Resilience-Insights/internal/config"
)

// validConfig returns a Config that passes Validate().
func validConfig() *config.Config {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	return cfg
}

func TestConfig_Validate_ValidConfig(t *testing.T) {
	t.Parallel()
	assert.NoError(t, validConfig().Validate())
}

func TestConfig_Validate_InvalidServerPort(t *testing.T) {
	t.Parallel()
	for _, p := range []int{-1, 65536, 100000} {
		p := p
		t.Run("", func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			cfg.Server.Port = p
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "server.port")
		})
	}
}

func TestConfig_Validate_InvalidServerMode(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Server.Mode = "chaos"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.mode")
}

func TestConfig_Validate_InvalidLogLevel(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Log.Level = "verbose"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.level")
}

func TestConfig_Validate_InvalidLogFormat(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Log.Format = "xml"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.format")
}

func TestConfig_Validate_MaxRecords(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Analysis.MaxRecords = -5
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "analysis.max_records")
}

func TestConfig_Validate_NegativeClusterCount(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Analysis.ClusterCount = -1
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "analysis.cluster_count")
}

func TestConfig_Validate_ContentStore(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.ContentStore.Kind = "ftp"
	require.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.ContentStore.Kind = "http"
	cfg.ContentStore.URL = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content_store.url")

	cfg.ContentStore.URL = "http://content.local/api/case-studies"
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_OptionalBackendsOnlyWhenEnabled(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Redis.Addr = ""
	cfg.Kafka.Brokers = nil
	cfg.Neo4j.URI = ""
	assert.NoError(t, cfg.Validate())

	cfg.Redis.Enabled = true
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis.addr")

	cfg.Redis.Enabled = false
	cfg.Kafka.Enabled = true
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kafka.brokers")

	cfg.Kafka.Enabled = false
	cfg.Neo4j.Enabled = true
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "neo4j.uri")
}

func TestApplyDefaults_EmptyConfig(t *testing.T) {
	t.Parallel()
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)

	assert.Equal(t, config.DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, config.DefaultMaxRecords, cfg.Analysis.MaxRecords)
	assert.Equal(t, config.DefaultFetchTimeout, cfg.Analysis.FetchTimeout)
	assert.Equal(t, config.DefaultContentStorePath, cfg.ContentStore.Path)
	assert.Equal(t, []string{config.DefaultKafkaBroker}, cfg.Kafka.Brokers)
	assert.Equal(t, config.DefaultKafkaRequestTopic, cfg.Kafka.RequestTopic)
	assert.Equal(t, config.DefaultMetricsNamespace, cfg.Metrics.Namespace)
	assert.Zero(t, cfg.Analysis.ClusterCount, "cluster count stays derived")
}

func TestApplyDefaults_PreservesExplicitValues(t *testing.T) {
	t.Parallel()
	cfg := &config.Config{}
	cfg.Server.Port = 9999
	cfg.Analysis.ClusterCount = 5
	cfg.ContentStore.Kind = "http"
	config.ApplyDefaults(cfg)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Analysis.ClusterCount)
	assert.Empty(t, cfg.ContentStore.Path, "file path default only applies to kind file")
}

func TestApplyDefaults_Nil(t *testing.T) {
	t.Parallel()
	assert.NotPanics(t, func() { config.ApplyDefaults(nil) })
}

//Personal.AI order the ending
