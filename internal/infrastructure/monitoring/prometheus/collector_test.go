package prometheus

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/Resilience-Insights/internal/infrastructure/monitoring/logging"
	pkgerrors "github.com/turtacn/Resilience-Insights/pkg/errors"
)

func newTestCollector(t *testing.T) MetricsCollector {
	t.Helper()
	c, err := NewMetricsCollector(CollectorConfig{Namespace: "test", Subsystem: "unit"}, logging.NewNopLogger())
	require.NoError(t, err)
	return c
}

func scrape(t *testing.T, c MetricsCollector) string {
	t.Helper()
	w := httptest.NewRecorder()
	c.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestNewMetricsCollector_RequiresNamespace(t *testing.T) {
	_, err := NewMetricsCollector(CollectorConfig{}, logging.NewNopLogger())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.ErrCodeBadRequest, pkgerrors.GetCode(err))
}

func TestNewMetricsCollector_ProcessMetrics(t *testing.T) {
	c, err := NewMetricsCollector(CollectorConfig{Namespace: "test", EnableProcessMetrics: true}, logging.NewNopLogger())
	require.NoError(t, err)

	assert.Contains(t, scrape(t, c), "test_process_")
}

func TestRegisterCounter(t *testing.T) {
	c := newTestCollector(t)
	vec := c.RegisterCounter("jobs_total", "jobs", "kind")

	vec.WithLabelValues("a").Inc()
	vec.WithLabelValues("a").Add(2)

	assert.Contains(t, scrape(t, c), `test_unit_jobs_total{kind="a"} 3`)
}

func TestRegisterGauge(t *testing.T) {
	c := newTestCollector(t)
	vec := c.RegisterGauge("depth", "depth", "queue")

	vec.WithLabelValues("q").Set(5)
	vec.WithLabelValues("q").Dec()

	assert.Contains(t, scrape(t, c), `test_unit_depth{queue="q"} 4`)
}

func TestRegisterHistogram_DefaultBuckets(t *testing.T) {
	c := newTestCollector(t)
	vec := c.RegisterHistogram("latency_seconds", "latency", nil, "op")

	vec.WithLabelValues("read").Observe(0.2)

	out := scrape(t, c)
	assert.Contains(t, out, `test_unit_latency_seconds_bucket{op="read",le="0.25"} 1`)
	assert.Contains(t, out, `test_unit_latency_seconds_count{op="read"} 1`)
}

func TestRegister_DuplicateNameReturnsSameVector(t *testing.T) {
	c := newTestCollector(t)
	first := c.RegisterCounter("dup_total", "dup", "k")
	second := c.RegisterCounter("dup_total", "dup", "k")

	first.WithLabelValues("x").Inc()
	second.WithLabelValues("x").Inc()

	assert.Contains(t, scrape(t, c), `test_unit_dup_total{k="x"} 2`)
}

func TestRegister_TypeMismatchIsNoop(t *testing.T) {
	c := newTestCollector(t)
	c.RegisterCounter("clash", "clash")

	g := c.RegisterGauge("clash", "clash")
	assert.NotPanics(t, func() { g.WithLabelValues().Set(3) })
}

//Personal.AI order the ending
