package knowledgegraph

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/Resilience-Insights/internal/domain/casestudy"
)

func fixture() []casestudy.Record {
	return []casestudy.Record{
		{ID: "a", Title: "Clinic access", Description: "Mobile clinics expanded rural access",
			Dimensions: []string{"Healthcare Systems", "Healthcare Systems"}, Keywords: []string{"clinics"}, Country: "Kenya"},
		{ID: "b", Title: "Clinic staffing", Description: "Mobile clinics recruited nurses",
			Dimensions: []string{"Healthcare Systems"}, Keywords: []string{"clinics"}, Country: "Kenya"},
		{ID: "c", Title: "Council reform", Description: "Village councils adopted budgets",
			Dimensions: []string{"Governance"}, Keywords: []string{"councils"}, Country: "Peru"},
	}
}

func identical(n int) []casestudy.Record {
	rs := make([]casestudy.Record, n)
	for i := range rs {
		rs[i] = casestudy.Record{ID: fmt.Sprintf("r%d", i), Dimensions: []string{"Governance"}, Keywords: []string{"councils"}}
	}
	return rs
}

func TestBuild(t *testing.T) {
	g, err := Build(context.Background(), fixture(), Options{})
	require.NoError(t, err)

	assert.Len(t, g.NodesOf(NodeCaseStudy), 3)
	assert.Len(t, g.NodesOf(NodeDimension), 2)
	assert.NotEmpty(t, g.NodesOf(NodeKeyword))

	assert.Len(t, g.EdgesOf(EdgeHasDimension), 3, "repeated labels link once")
	assert.Len(t, g.EdgesOf(EdgeHasKeyword), 15)
	for _, e := range g.EdgesOf(EdgeHasKeyword) {
		assert.Equal(t, HasKeywordWeight, e.Weight)
	}

	sim := g.EdgesOf(EdgeSimilarTo)
	require.Len(t, sim, 1)
	assert.Equal(t, Edge{Source: "case:a", Target: "case:b", Type: EdgeSimilarTo, Weight: 1}, sim[0])

	n, ok := g.Node(CaseStudyNodeID("c"))
	require.True(t, ok)
	assert.Equal(t, "Council reform", n.Label)
	_, ok = g.Node("case:missing")
	assert.False(t, ok)
}

func TestBuild_FallsBackToKeywordLabels(t *testing.T) {
	rs := []casestudy.Record{{ID: "x", Keywords: []string{"Flood Barriers", "flood barriers", "levees"}}}
	g, err := Build(context.Background(), rs, Options{})
	require.NoError(t, err)

	kws := g.NodesOf(NodeKeyword)
	require.Len(t, kws, 2)
	assert.Equal(t, "kw:flood barriers", kws[0].ID)
}

func TestBuild_TopNeighboursApproximateFullMatrix(t *testing.T) {
	rs := identical(5)

	approx, err := Build(context.Background(), rs, Options{})
	require.NoError(t, err)
	full, err := Build(context.Background(), rs, Options{FullSimilarity: true})
	require.NoError(t, err)

	assert.Len(t, approx.EdgesOf(EdgeSimilarTo), 9)
	assert.Len(t, full.EdgesOf(EdgeSimilarTo), 10)
}

func TestFullSimilarityEdges_Threshold(t *testing.T) {
	edges, err := FullSimilarityEdges(context.Background(), fixture(), nil, 0.5)
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, "case:a", edges[0].Source)

	none, err := FullSimilarityEdges(context.Background(), fixture(), nil, 1)
	require.NoError(t, err)
	assert.Empty(t, none, "threshold is exclusive")
}

func TestFullSimilarityEdges_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := FullSimilarityEdges(ctx, identical(4), nil, 0.5)
	assert.Error(t, err)
}

// ─────────────────────────────────────────────────────────────────────────────
// Components & stats
// ─────────────────────────────────────────────────────────────────────────────

func handGraph() *Graph {
	return &Graph{
		Nodes: []Node{
			{ID: "case:A", Type: NodeCaseStudy, Label: "A"},
			{ID: "case:B", Type: NodeCaseStudy, Label: "B"},
			{ID: "case:C", Type: NodeCaseStudy, Label: "C"},
			{ID: "dim:D", Type: NodeDimension, Label: "D"},
		},
		Edges: []Edge{
			{Source: "case:A", Target: "dim:D", Type: EdgeHasDimension, Weight: 1},
			{Source: "case:B", Target: "dim:D", Type: EdgeHasDimension, Weight: 1},
			{Source: "case:A", Target: "case:B", Type: EdgeSimilarTo, Weight: 0.8},
		},
	}
}

func TestConnectedComponents(t *testing.T) {
	comps := ConnectedComponents(handGraph())
	assert.Equal(t, [][]string{{"case:A", "case:B", "dim:D"}, {"case:C"}}, comps)
	assert.Empty(t, ConnectedComponents(&Graph{}))
}

func TestConnectedComponents_LongChain(t *testing.T) {
	const n = 100000
	g := &Graph{}
	for i := 0; i < n; i++ {
		g.Nodes = append(g.Nodes, Node{ID: fmt.Sprintf("n%d", i)})
		if i > 0 {
			g.Edges = append(g.Edges, Edge{Source: fmt.Sprintf("n%d", i-1), Target: fmt.Sprintf("n%d", i)})
		}
	}
	comps := ConnectedComponents(g)
	require.Len(t, comps, 1)
	assert.Len(t, comps[0], n)
}

func TestComputeStats(t *testing.T) {
	s := ComputeStats(handGraph())

	assert.Equal(t, 4, s.NodeCount)
	assert.Equal(t, 3, s.EdgeCount)
	assert.Equal(t, 3, s.NodesByType[NodeCaseStudy])
	assert.Equal(t, 2, s.EdgesByType[EdgeHasDimension])
	assert.Equal(t, 0.5, s.Density)
	assert.Equal(t, 1.5, s.AverageDegree)
	assert.Equal(t, 2, s.Components)
	assert.Equal(t, 3, s.LargestComponent)

	require.Len(t, s.TopCaseStudies, 3)
	assert.Equal(t, "case:C", s.TopCaseStudies[2].ID, "the isolated case study ranks last")
	assert.Empty(t, s.TopKeywords)

	total := 0.0
	for _, v := range s.PageRank {
		total += v
	}
	assert.InDelta(t, 1.0, total, 1e-3)
}

func TestComputeStats_Empty(t *testing.T) {
	s := ComputeStats(&Graph{})
	assert.Zero(t, s.NodeCount)
	assert.Zero(t, s.Density)
	assert.NotNil(t, s.TopCaseStudies)
}

func TestComputeStats_BuiltGraph(t *testing.T) {
	g, err := Build(context.Background(), fixture(), Options{})
	require.NoError(t, err)
	s := ComputeStats(g)

	assert.Equal(t, 2, s.Components)
	assert.Len(t, s.TopCaseStudies, 3)
	assert.Len(t, s.TopKeywords, 5)
}

//Personal.AI order the ending
