package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfigYAML = `
server:
  port: 9090
  mode: debug
log:
  level: debug
  format: console
analysis:
  max_records: 250
  cluster_count: 4
  seed: 42
  fetch_timeout: 3s
  overall_timeout: 20s
content_store:
  kind: http
  url: http://content.local/api/case-studies
  timeout: 5s
redis:
  enabled: true
  addr: redis:6379
kafka:
  enabled: true
  brokers: ["kafka-1:9092", "kafka-2:9092"]
  group_id: insights-test
`

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FromFile_ValidConfig(t *testing.T) {
	cfg, err := Load(createTempConfigFile(t, validConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 250, cfg.Analysis.MaxRecords)
	assert.Equal(t, 4, cfg.Analysis.ClusterCount)
	assert.Equal(t, int64(42), cfg.Analysis.Seed)
	assert.Equal(t, 3*time.Second, cfg.Analysis.FetchTimeout)
	assert.Equal(t, "http", cfg.ContentStore.Kind)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, DefaultKafkaResultTopic, cfg.Kafka.ResultTopic)
}

func TestLoad_FromFile_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_FromFile_InvalidYAML(t *testing.T) {
	_, err := Load(createTempConfigFile(t, "server: [unclosed"))
	require.Error(t, err)
}

func TestLoad_FromFile_ValidationFailure(t *testing.T) {
	_, err := Load(createTempConfigFile(t, "server:\n  mode: chaos\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("INSIGHTS_ANALYSIS_MAX_RECORDS", "123")
	t.Setenv("INSIGHTS_SERVER_PORT", "7070")

	cfg, err := Load(createTempConfigFile(t, validConfigYAML))
	require.NoError(t, err)
	assert.Equal(t, 123, cfg.Analysis.MaxRecords)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoadFromEnv_NoFile(t *testing.T) {
	t.Setenv("INSIGHTS_CONTENT_STORE_KIND", "http")
	t.Setenv("INSIGHTS_CONTENT_STORE_URL", "http://store.local/records")
	t.Setenv("INSIGHTS_ANALYSIS_FETCH_TIMEOUT", "2s")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "http://store.local/records", cfg.ContentStore.URL)
	assert.Equal(t, 2*time.Second, cfg.Analysis.FetchTimeout)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
}

func TestMustLoad_Success(t *testing.T) {
	assert.NotPanics(t, func() {
		cfg := MustLoad(createTempConfigFile(t, validConfigYAML))
		assert.NotNil(t, cfg)
	})
}

func TestMustLoad_Panic(t *testing.T) {
	assert.Panics(t, func() { MustLoad("/definitely/not/here.yaml") })
}

func TestWatch_MissingFile(t *testing.T) {
	err := Watch(filepath.Join(t.TempDir(), "missing.yaml"), func(*Config) {}, nil)
	assert.Error(t, err)
}

//Personal.AI order the ending
