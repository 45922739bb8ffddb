package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/Resilience-Insights/internal/application/insights"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/knowledgegraph"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/similarity"
	"github.com/turtacn/Resilience-Insights/pkg/errors"
)

const corpus = `[
  {"id":"cs-1","title":"Flood clinics","description":"Mobile clinics kept health services running during floods",
   "methodology":"survey and interview","outcomes":"Access improved by 30%","dimensions":["Health Systems"],
   "keywords":["flooding","health"],"country":"Bangladesh","date":"2019-05-01"},
  {"id":"cs-2","title":"Grain reserves","description":"Community grain reserves buffered drought shocks",
   "methodology":"case study","outcomes":"Food insecurity reduced by 20%","dimensions":["Food Security"],
   "keywords":["drought","food"],"country":"Kenya","date":"2020-03-01"},
  {"id":"cs-3","title":"Flood warnings","description":"SMS warnings reached villages before floods",
   "methodology":"survey","outcomes":"Losses fell by 15%","dimensions":["Infrastructure"],
   "keywords":["flooding","early warning"],"country":"India","date":"2021-07-01"}
]`

func corpusFile(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "case_studies.json")
	require.NoError(t, os.WriteFile(p, []byte(corpus), 0o600))
	return p
}

// ─────────────────────────────────────────────────────────────────────────────
// analyze
// ─────────────────────────────────────────────────────────────────────────────

func TestAnalyze_PassesFlagsToService(t *testing.T) {
	isolate(t)
	svc := new(mockService)
	svc.On("Analyze", mock.Anything, mock.MatchedBy(func(o insights.Options) bool {
		return o.MaxRecords == 50 && o.ClusterCount == 3 && o.AnalysisType == insights.AnalysisThemes &&
			o.Seed != nil && *o.Seed == 7
	})).Return(&insights.Result{Success: true, Report: &insights.Report{ReportID: "r-1"}})

	var source string
	out, _, err := run(t, NewRootCommand(stubBuilder(svc, &source)),
		"analyze", "--source", "corpus.json", "--max-records", "50", "--clusters", "3", "--type", "themes", "--seed", "7")

	require.NoError(t, err)
	assert.Equal(t, "corpus.json", source)
	assert.Contains(t, out, "Report r-1")
	svc.AssertExpectations(t)
}

func TestAnalyze_SeedUnsetWhenFlagAbsent(t *testing.T) {
	isolate(t)
	svc := new(mockService)
	svc.On("Analyze", mock.Anything, mock.MatchedBy(func(o insights.Options) bool {
		return o.Seed == nil && o.AnalysisType == insights.AnalysisFull
	})).Return(&insights.Result{Success: true, Report: &insights.Report{ReportID: "r-2"}})

	_, _, err := run(t, NewRootCommand(stubBuilder(svc, nil)), "analyze")
	require.NoError(t, err)
	svc.AssertExpectations(t)
}

func TestAnalyze_UnknownTypeNeverReachesService(t *testing.T) {
	isolate(t)
	svc := new(mockService)

	_, _, err := run(t, NewRootCommand(stubBuilder(svc, nil)), "analyze", "--type", "everything")

	require.Error(t, err)
	assert.Equal(t, 2, ExitCode(err))
	svc.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
}

func TestAnalyze_FailedResultIsPrintedAndReturned(t *testing.T) {
	isolate(t)
	svc := new(mockService)
	svc.On("Analyze", mock.Anything, mock.Anything).Return(&insights.Result{
		Success: false, Error: "corpus is empty", Code: errors.ErrCodeInputInvalid,
	})

	out, _, err := run(t, NewRootCommand(stubBuilder(svc, nil)), "analyze")

	require.Error(t, err)
	assert.True(t, errors.IsInputError(err))
	assert.Contains(t, out, "corpus is empty")
	assert.Equal(t, 2, ExitCode(err))
}

func TestAnalyze_EndToEndFromFile(t *testing.T) {
	isolate(t)
	out, _, err := run(t, NewRootCommand(nil),
		"analyze", "--source", corpusFile(t), "--type", "themes", "-o", "json")
	require.NoError(t, err)

	var res insights.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Success)
	require.NotNil(t, res.Report)
	assert.Equal(t, 3, res.Report.Metadata.TotalCaseStudies)
	assert.Equal(t, insights.AnalysisThemes, res.Report.Metadata.AnalysisType)
}

// ─────────────────────────────────────────────────────────────────────────────
// similar / graph
// ─────────────────────────────────────────────────────────────────────────────

func TestSimilar_RequiresTarget(t *testing.T) {
	isolate(t)
	_, _, err := run(t, NewRootCommand(stubBuilder(new(mockService), nil)), "similar")
	require.Error(t, err)
}

func TestSimilar_PrintsRankedTable(t *testing.T) {
	isolate(t)
	svc := new(mockService)
	svc.On("FindSimilar", mock.Anything, insights.SimilarRequest{TargetID: "cs-1", TopN: 2}).
		Return(&insights.SimilarResponse{
			TargetID:         "cs-1",
			TotalCaseStudies: 3,
			Matches: []similarity.Match{
				{ID: "cs-3", Title: "Flood warnings", Score: 0.61},
				{ID: "cs-2", Title: "Grain reserves", Score: 0.12},
			},
		}, nil)

	out, _, err := run(t, NewRootCommand(stubBuilder(svc, nil)), "similar", "--target", "cs-1", "--top", "2")

	require.NoError(t, err)
	assert.Contains(t, out, "Case studies similar to cs-1")
	assert.Contains(t, out, "1     cs-3  0.6100  Flood warnings")
	svc.AssertExpectations(t)
}

func TestSimilar_ServiceErrorIsReturned(t *testing.T) {
	isolate(t)
	svc := new(mockService)
	svc.On("FindSimilar", mock.Anything, mock.Anything).
		Return(nil, errors.New(errors.ErrCodeCaseStudyNotFound, "case study not found"))

	_, _, err := run(t, NewRootCommand(stubBuilder(svc, nil)), "similar", "--target", "nope")

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeCaseStudyNotFound))
	assert.Equal(t, 1, ExitCode(err))
}

func TestSimilar_EndToEndFromFile(t *testing.T) {
	isolate(t)
	out, _, err := run(t, NewRootCommand(nil),
		"similar", "--source", corpusFile(t), "--target", "cs-1", "-o", "json")
	require.NoError(t, err)

	var resp insights.SimilarResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "cs-1", resp.TargetID)
	assert.Equal(t, 3, resp.TotalCaseStudies)
	assert.Len(t, resp.Matches, 2)
}

func TestGraph_PassesFlags(t *testing.T) {
	isolate(t)
	svc := new(mockService)
	svc.On("BuildGraph", mock.Anything, insights.GraphRequest{Full: true, Threshold: 0.3, Export: true}).
		Return(&insights.GraphResponse{
			Stats:    knowledgegraph.Stats{NodeCount: 4, EdgeCount: 3, Components: 1, LargestComponent: 4},
			Exported: true,
		}, nil)

	out, _, err := run(t, NewRootCommand(stubBuilder(svc, nil)), "graph", "--full", "--threshold", "0.3", "--export")

	require.NoError(t, err)
	assert.Contains(t, out, "Nodes: 4  Edges: 3")
	assert.Contains(t, out, "Exported to Neo4j.")
	svc.AssertExpectations(t)
}

//Personal.AI order the ending
