package client

import (
	"context"
	"time"

	"github.com/goccy/go-json"
)

// ─────────────────────────────────────────────────────────────────────────────
// Requests
// ─────────────────────────────────────────────────────────────────────────────

// AnalyzeRequest mirrors the analyze endpoint body. Zero values select the
// server defaults.
type AnalyzeRequest struct {
	MaxRecords   int    `json:"maxRecords,omitempty"`
	ClusterCount int    `json:"clusterCount,omitempty"`
	AnalysisType string `json:"analysisType,omitempty"`
	Seed         *int64 `json:"seed,omitempty"`
}

type SimilarRequest struct {
	TargetID   string `json:"targetId"`
	TopN       int    `json:"topN,omitempty"`
	MaxRecords int    `json:"maxRecords,omitempty"`
}

type GraphRequest struct {
	MaxRecords int     `json:"maxRecords,omitempty"`
	Full       bool    `json:"full,omitempty"`
	Threshold  float64 `json:"threshold,omitempty"`
	Export     bool    `json:"export,omitempty"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Responses
// ─────────────────────────────────────────────────────────────────────────────

type Stage struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	DurationMs int64  `json:"durationMs"`
	Error      string `json:"error,omitempty"`
}

type Summary struct {
	TotalCaseStudies   int      `json:"totalCaseStudies"`
	TopThemes          []string `json:"topThemes"`
	AverageImprovement float64  `json:"averageImprovement"`
	ClusterCount       int      `json:"clusterCount"`
	EmergingThemeCount int      `json:"emergingThemeCount"`
	KeyImplications    []string `json:"keyImplications"`
}

type Recommendation struct {
	Type        string   `json:"type"`
	Priority    string   `json:"priority"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Items       []string `json:"items,omitempty"`
}

type Metadata struct {
	TotalCaseStudies int       `json:"totalCaseStudies"`
	AnalysisDate     time.Time `json:"analysisDate"`
	AnalysisType     string    `json:"analysisType"`
	DurationMs       int64     `json:"durationMs"`
	Partial          bool      `json:"partial,omitempty"`
}

// Report keeps the summary fields typed. The per-stage analyses are left as
// raw JSON.
type Report struct {
	ReportID         string           `json:"reportId"`
	Summary          Summary          `json:"summary"`
	Recommendations  []Recommendation `json:"recommendations"`
	Metadata         Metadata         `json:"metadata"`
	Stages           []Stage          `json:"stages"`
	ThematicAnalysis json.RawMessage  `json:"thematicAnalysis,omitempty"`
	PatternAnalysis  json.RawMessage  `json:"patternAnalysis,omitempty"`
	OutcomeAnalysis  json.RawMessage  `json:"outcomeAnalysis,omitempty"`
	ClusterAnalysis  json.RawMessage  `json:"clusterAnalysis,omitempty"`
}

type AnalysisResult struct {
	Success       bool            `json:"success"`
	Report        *Report         `json:"report,omitempty"`
	Visualization json.RawMessage `json:"visualization,omitempty"`
}

type Match struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

type SimilarResponse struct {
	TargetID         string  `json:"targetId"`
	Matches          []Match `json:"matches"`
	TotalCaseStudies int     `json:"totalCaseStudies"`
}

type Node struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Label string `json:"label"`
}

type Edge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Type   string  `json:"type"`
	Weight float64 `json:"weight"`
}

type Centrality struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type GraphStats struct {
	NodeCount        int            `json:"nodeCount"`
	EdgeCount        int            `json:"edgeCount"`
	NodesByType      map[string]int `json:"nodesByType"`
	EdgesByType      map[string]int `json:"edgesByType"`
	Density          float64        `json:"density"`
	AverageDegree    float64        `json:"averageDegree"`
	Components       int            `json:"components"`
	LargestComponent int            `json:"largestComponent"`
	TopCaseStudies   []Centrality   `json:"topCaseStudies"`
	TopKeywords      []Centrality   `json:"topKeywords"`
}

type GraphResponse struct {
	Graph struct {
		Nodes []Node `json:"nodes"`
		Edges []Edge `json:"edges"`
	} `json:"graph"`
	Stats    GraphStats `json:"stats"`
	Exported bool       `json:"exported"`
}

// Readiness is the body of /readyz.
type Readiness struct {
	Status     string                     `json:"status"`
	Components map[string]ComponentStatus `json:"components,omitempty"`
}

type ComponentStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Calls
// ─────────────────────────────────────────────────────────────────────────────

// Analyze runs an analysis. A failed analysis comes back as *APIError whose
// Code is the server's error code.
func (c *Client) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalysisResult, error) {
	var res AnalysisResult
	if err := c.post(ctx, "/api/v1/insights/analyze", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) FindSimilar(ctx context.Context, req SimilarRequest) (*SimilarResponse, error) {
	var res SimilarResponse
	if err := c.post(ctx, "/api/v1/insights/similar", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) BuildGraph(ctx context.Context, req GraphRequest) (*GraphResponse, error) {
	var res GraphResponse
	if err := c.post(ctx, "/api/v1/insights/graph", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Ready calls /readyz. A server that is up but not ready returns *APIError
// with status 503.
func (c *Client) Ready(ctx context.Context) (*Readiness, error) {
	var res Readiness
	if err := c.get(ctx, "/readyz", &res); err != nil {
		return nil, err
	}
	return &res, nil
}

//Personal.AI order the ending
