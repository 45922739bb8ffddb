package insights

import (
	"context"
	"time"

	"github.com/turtacn/Resilience-Insights/internal/intelligence/knowledgegraph"
)

// ReportCache stores finished results keyed by request options.
// Get returns an error carrying errors.ErrCodeNotFound on a miss.
type ReportCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// ReportGeneratedEvent announces a finished report.
type ReportGeneratedEvent struct {
	ReportID         string        `json:"reportId"`
	AnalysisType     AnalysisType  `json:"analysisType"`
	TotalCaseStudies int           `json:"totalCaseStudies"`
	Summary          Summary       `json:"summary"`
	Stages           []StageReport `json:"stages"`
	GeneratedAt      time.Time     `json:"generatedAt"`
}

// EventPublisher delivers report events to downstream consumers.
type EventPublisher interface {
	PublishReportGenerated(ctx context.Context, evt *ReportGeneratedEvent) error
}

// GraphExporter persists a knowledge graph to an external graph store.
type GraphExporter interface {
	SaveGraph(ctx context.Context, g *knowledgegraph.Graph) error
}

// Metrics receives run telemetry.
type Metrics interface {
	ObserveStage(stage StageName, status StageStatus, d time.Duration)
	RecordAnalysis(analysisType AnalysisType, success bool, d time.Duration)
	RecordCacheLookup(hit bool)
}

type noopMetrics struct{}

func (noopMetrics) ObserveStage(StageName, StageStatus, time.Duration) {}
func (noopMetrics) RecordAnalysis(AnalysisType, bool, time.Duration)   {}
func (noopMetrics) RecordCacheLookup(bool)                             {}

//Personal.AI order the ending
