package prometheus

import (
	"strconv"
	"time"

	"github.com/turtacn/Resilience-Insights/internal/application/insights"
)

// InsightsMetrics groups every series the service exports.
type InsightsMetrics struct {
	// HTTP
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec

	// Analysis
	AnalysisRunsTotal  CounterVec
	AnalysisDuration   HistogramVec
	StageDuration      HistogramVec
	ReportCacheLookups CounterVec

	// Messaging
	EventsPublishedTotal  CounterVec
	MessagesConsumedTotal CounterVec

	// Health
	HealthCheckStatus GaugeVec
}

var (
	DefaultHTTPDurationBuckets     = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	DefaultAnalysisDurationBuckets = []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60}
)

// NewInsightsMetrics registers the series on collector.
func NewInsightsMetrics(collector MetricsCollector) *InsightsMetrics {
	m := &InsightsMetrics{}

	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "path", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "path")
	m.HTTPActiveRequests = collector.RegisterGauge("http_active_requests", "In-flight HTTP requests", "method")

	m.AnalysisRunsTotal = collector.RegisterCounter("analysis_runs_total", "Analysis runs by type and outcome", "type", "status")
	m.AnalysisDuration = collector.RegisterHistogram("analysis_duration_seconds", "End-to-end analysis duration", DefaultAnalysisDurationBuckets, "type")
	m.StageDuration = collector.RegisterHistogram("analysis_stage_duration_seconds", "Per-stage analysis duration", DefaultAnalysisDurationBuckets, "stage", "status")
	m.ReportCacheLookups = collector.RegisterCounter("report_cache_lookups_total", "Report cache lookups", "result")

	m.EventsPublishedTotal = collector.RegisterCounter("events_published_total", "Events written to the broker", "topic", "status")
	m.MessagesConsumedTotal = collector.RegisterCounter("messages_consumed_total", "Messages handled by the worker", "topic", "status")

	m.HealthCheckStatus = collector.RegisterGauge("health_check_status", "Health check status (1=up, 0=down)", "component")

	return m
}

func statusLabel(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}

// RecordHTTPRequest counts one served request.
func (m *InsightsMetrics) RecordHTTPRequest(method, path string, statusCode int, d time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

func (m *InsightsMetrics) RecordEventPublished(topic string, ok bool) {
	m.EventsPublishedTotal.WithLabelValues(topic, statusLabel(ok)).Inc()
}

func (m *InsightsMetrics) RecordMessageConsumed(topic string, ok bool) {
	m.MessagesConsumedTotal.WithLabelValues(topic, statusLabel(ok)).Inc()
}

func (m *InsightsMetrics) SetHealth(component string, up bool) {
	v := 0.0
	if up {
		v = 1
	}
	m.HealthCheckStatus.WithLabelValues(component).Set(v)
}

// ─────────────────────────────────────────────────────────────────────────────
// insights.Metrics
// ─────────────────────────────────────────────────────────────────────────────

// AnalysisRecorder feeds analysis telemetry into InsightsMetrics.
type AnalysisRecorder struct {
	m *InsightsMetrics
}

var _ insights.Metrics = (*AnalysisRecorder)(nil)

func NewAnalysisRecorder(m *InsightsMetrics) *AnalysisRecorder {
	return &AnalysisRecorder{m: m}
}

func (r *AnalysisRecorder) ObserveStage(stage insights.StageName, status insights.StageStatus, d time.Duration) {
	r.m.StageDuration.WithLabelValues(string(stage), string(status)).Observe(d.Seconds())
}

func (r *AnalysisRecorder) RecordAnalysis(t insights.AnalysisType, success bool, d time.Duration) {
	r.m.AnalysisRunsTotal.WithLabelValues(string(t), statusLabel(success)).Inc()
	r.m.AnalysisDuration.WithLabelValues(string(t)).Observe(d.Seconds())
}

func (r *AnalysisRecorder) RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.m.ReportCacheLookups.WithLabelValues(result).Inc()
}

//Personal.AI order the ending
