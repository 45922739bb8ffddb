// Package insights orchestrates one analysis run over a case-study corpus:
// it fetches a snapshot from the content store, runs the theme, pattern,
// outcome and cluster stages concurrently, builds the knowledge graph and
// assembles the report, recommendations and visualization payload.
package insights

import (
	"strings"
	"time"

	"github.com/turtacn/Resilience-Insights/internal/intelligence/clustering"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/common"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/knowledgegraph"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/outcomes"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/patterns"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/textmining"
	"github.com/turtacn/Resilience-Insights/pkg/errors"
)

// AnalysisType selects which stages a run executes.
type AnalysisType string

const (
	AnalysisFull     AnalysisType = "full"
	AnalysisThemes   AnalysisType = "themes"
	AnalysisPatterns AnalysisType = "patterns"
	AnalysisOutcomes AnalysisType = "outcomes"
	AnalysisGraph    AnalysisType = "graph"
)

// AnalysisTypes lists every supported analysis type.
var AnalysisTypes = []AnalysisType{AnalysisFull, AnalysisThemes, AnalysisPatterns, AnalysisOutcomes, AnalysisGraph}

// ParseAnalysisType normalises s. The empty string selects AnalysisFull.
func ParseAnalysisType(s string) (AnalysisType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return AnalysisFull, nil
	}
	for _, t := range AnalysisTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", errors.New(errors.ErrCodeAnalysisTypeInvalid, "unsupported analysis type").
		WithDetail("analysisType=" + s)
}

// Options configure one analysis request. Zero values fall back to the
// service configuration.
type Options struct {
	MaxRecords   int          `json:"maxRecords,omitempty"`
	ClusterCount int          `json:"clusterCount,omitempty"`
	AnalysisType AnalysisType `json:"analysisType,omitempty"`

	// Seed fixes the cluster seeding source for this request.
	Seed *int64 `json:"seed,omitempty"`
}

// Normalize validates o and fills the analysis type.
func (o Options) Normalize() (Options, error) {
	if o.MaxRecords < 0 {
		return o, errors.InputError("maxRecords must not be negative")
	}
	if o.ClusterCount < 0 {
		return o, errors.InputError("clusterCount must not be negative")
	}
	t, err := ParseAnalysisType(string(o.AnalysisType))
	if err != nil {
		return o, err
	}
	o.AnalysisType = t
	return o, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Stages
// ─────────────────────────────────────────────────────────────────────────────

// StageName identifies one unit of work inside a run.
type StageName string

const (
	StageTheme   StageName = "theme"
	StagePattern StageName = "pattern"
	StageOutcome StageName = "outcome"
	StageCluster StageName = "cluster"
	StageGraph   StageName = "graph"
)

// stageOrder is the reporting order of stages.
var stageOrder = []StageName{StageTheme, StagePattern, StageOutcome, StageCluster, StageGraph}

// StageStatus is the final state of a stage.
type StageStatus string

const (
	StageCompleted StageStatus = "completed"
	StageFailed    StageStatus = "failed"
	StageSkipped   StageStatus = "skipped"
	StageTimedOut  StageStatus = "timed-out"
)

// StageReport records how a stage ended.
type StageReport struct {
	Name       StageName   `json:"name"`
	Status     StageStatus `json:"status"`
	DurationMs int64       `json:"durationMs"`
	Error      string      `json:"error,omitempty"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Report
// ─────────────────────────────────────────────────────────────────────────────

// ThematicAnalysis is the output of the theme stage.
type ThematicAnalysis struct {
	TopThemes          []textmining.ThemeScore              `json:"topThemes"`
	DocumentKeywords   map[string][]textmining.KeywordScore `json:"documentKeywords"`
	DimensionFrequency []common.Count                       `json:"dimensionFrequency"`
	KeywordFrequency   []common.Count                       `json:"keywordFrequency"`
}

// OutcomeAnalysis is the output of the outcome stage.
type OutcomeAnalysis struct {
	Aggregate           outcomes.Aggregate   `json:"aggregate"`
	Trends              outcomes.TrendResult `json:"trends"`
	RecordsWithOutcomes int                  `json:"recordsWithOutcomes"`
	SkippedMetrics      int                  `json:"skippedMetrics"`
}

// Summary is the executive view of a report.
type Summary struct {
	TotalCaseStudies   int      `json:"totalCaseStudies"`
	TopThemes          []string `json:"topThemes"`
	AverageImprovement float64  `json:"averageImprovement"`
	ClusterCount       int      `json:"clusterCount"`
	EmergingThemeCount int      `json:"emergingThemeCount"`
	KeyImplications    []string `json:"keyImplications"`
}

// RecommendationType classifies a recommendation.
type RecommendationType string

const (
	RecommendResearchGap   RecommendationType = "research-gap"
	RecommendEmergingFocus RecommendationType = "emerging-focus"
	RecommendBestPractice  RecommendationType = "best-practice"
	RecommendMethodology   RecommendationType = "methodology"
)

// Priority ranks recommendations.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// Recommendation is one actionable finding.
type Recommendation struct {
	Type        RecommendationType `json:"type"`
	Priority    Priority           `json:"priority"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Items       []string           `json:"items,omitempty"`
}

// Metadata describes the run that produced a report.
type Metadata struct {
	TotalCaseStudies int          `json:"totalCaseStudies"`
	AnalysisDate     time.Time    `json:"analysisDate"`
	AnalysisType     AnalysisType `json:"analysisType"`
	DurationMs       int64        `json:"durationMs"`
	Partial          bool         `json:"partial,omitempty"`
}

// Report is the complete result of an analysis run. Analyses of stages that
// did not complete are nil.
type Report struct {
	ReportID         string             `json:"reportId"`
	Summary          Summary            `json:"summary"`
	ThematicAnalysis *ThematicAnalysis  `json:"thematicAnalysis"`
	PatternAnalysis  *patterns.Result   `json:"patternAnalysis"`
	OutcomeAnalysis  *OutcomeAnalysis   `json:"outcomeAnalysis"`
	ClusterAnalysis  *clustering.Result `json:"clusterAnalysis"`
	Recommendations  []Recommendation   `json:"recommendations"`
	Metadata         Metadata           `json:"metadata"`
	Stages           []StageReport      `json:"stages"`
}

// Stage returns the report of the named stage.
func (r *Report) Stage(name StageName) (StageReport, bool) {
	for _, s := range r.Stages {
		if s.Name == name {
			return s, true
		}
	}
	return StageReport{}, false
}

// Result is the failure-safe envelope returned to callers. On failure only
// Success, Error and Code are set.
type Result struct {
	Success       bool               `json:"success"`
	Error         string             `json:"error,omitempty"`
	Code          errors.ErrorCode   `json:"code,omitempty"`
	Report        *Report            `json:"report,omitempty"`
	Visualization *VisualizationData `json:"visualization,omitempty"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Similarity and graph requests
// ─────────────────────────────────────────────────────────────────────────────

// SimilarRequest asks for the nearest neighbours of one case study.
type SimilarRequest struct {
	TargetID   string `json:"targetId"`
	TopN       int    `json:"topN,omitempty"`
	MaxRecords int    `json:"maxRecords,omitempty"`
}

// GraphRequest asks for the knowledge graph of the corpus.
type GraphRequest struct {
	MaxRecords int     `json:"maxRecords,omitempty"`
	Full       bool    `json:"full,omitempty"`
	Threshold  float64 `json:"threshold,omitempty"`
	Export     bool    `json:"export,omitempty"`
}

// GraphResponse carries a graph and its statistics.
type GraphResponse struct {
	Graph    *knowledgegraph.Graph `json:"graph"`
	Stats    knowledgegraph.Stats  `json:"stats"`
	Exported bool                  `json:"exported"`
}

//Personal.AI order the ending
