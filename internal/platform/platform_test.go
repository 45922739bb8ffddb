package platform

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/Resilience-Insights/internal/application/insights"
	"github.com/turtacn/Resilience-Insights/internal/config"
	"github.com/turtacn/Resilience-Insights/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Resilience-Insights/pkg/errors"
)

const corpus = `[
  {"id":"a","title":"Flood clinics","description":"Mobile clinics during floods","dimensions":["Health Systems"],"keywords":["flooding"]},
  {"id":"b","title":"Grain reserves","description":"Grain reserves buffered drought","dimensions":["Food Security"],"keywords":["drought"]}
]`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	p := filepath.Join(t.TempDir(), "cs.json")
	require.NoError(t, os.WriteFile(p, []byte(corpus), 0o600))

	cfg := &config.Config{}
	cfg.ContentStore.Kind = "file"
	cfg.ContentStore.Path = p
	config.ApplyDefaults(cfg)
	return cfg
}

func TestOpen_MinimalConfig(t *testing.T) {
	infra, err := Open(testConfig(t), logging.NewNopLogger())
	require.NoError(t, err)
	defer infra.Close()

	assert.Nil(t, infra.Redis)
	assert.Nil(t, infra.Neo4j)
	assert.Nil(t, infra.Producer)
	assert.Nil(t, infra.Metrics)

	checks := infra.Checkers()
	require.Len(t, checks, 1)
	assert.Equal(t, "content_store", checks[0].Name)
	assert.NoError(t, checks[0].Check(context.Background()))

	svc, err := infra.Service()
	require.NoError(t, err)
	resp, err := svc.FindSimilar(context.Background(), insights.SimilarRequest{TargetID: "a"})
	require.NoError(t, err)
	assert.Len(t, resp.Matches, 1)

	assert.NoError(t, infra.EnsureTopics(context.Background()))
}

func TestOpen_WithRedisAndMetrics(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.Redis.Enabled = true
	cfg.Redis.Addr = mr.Addr()
	cfg.Metrics.Enabled = true

	infra, err := Open(cfg, logging.NewNopLogger())
	require.NoError(t, err)

	require.NotNil(t, infra.Cache)
	require.NotNil(t, infra.JobLock)
	require.NotNil(t, infra.Metrics)
	assert.Len(t, infra.Checkers(), 2)

	svc, err := infra.Service()
	require.NoError(t, err)
	res := svc.Analyze(context.Background(), insights.Options{AnalysisType: insights.AnalysisThemes})
	require.True(t, res.Success, res.Error)

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.Contains(t, keys[0], cfg.Redis.KeyPrefix)

	require.NoError(t, infra.Close())
	assert.Error(t, infra.Redis.Ping(context.Background()))
}

func TestOpen_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := testConfig(t)
	cfg.Redis.Enabled = true
	cfg.Redis.Addr = addr

	_, err := Open(cfg, logging.NewNopLogger())
	require.Error(t, err)
}

func TestOpen_UnknownStoreKind(t *testing.T) {
	cfg := testConfig(t)
	cfg.ContentStore.Kind = "s3"

	_, err := Open(cfg, logging.NewNopLogger())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeBadRequest))
}

func TestClose_ReverseOrderAndAggregated(t *testing.T) {
	infra := &Infrastructure{Logger: logging.NewNopLogger()}
	var order []string
	closeAs := func(name string, err error) func() error {
		return func() error {
			order = append(order, name)
			return err
		}
	}
	infra.addCloser("first", closeAs("first", errors.New(errors.ErrCodeInternal, "first failed")))
	infra.addCloser("second", closeAs("second", nil))
	infra.addCloser("third", closeAs("third", errors.New(errors.ErrCodeInternal, "third failed")))

	err := infra.Close()

	require.Error(t, err)
	assert.Equal(t, []string{"third", "second", "first"}, order)
	assert.Contains(t, err.Error(), "first failed")
	assert.Contains(t, err.Error(), "third failed")
	assert.NoError(t, infra.Close())
}

//Personal.AI order the ending
