package knowledgegraph

import (
	"sort"

	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/turtacn/Resilience-Insights/internal/intelligence/common"
)

const (
	pageRankDamping   = 0.85
	pageRankTolerance = 1e-6
	topCentralNodes   = 5
)

// Centrality is a node ranked by PageRank.
type Centrality struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Stats summarises a graph.
type Stats struct {
	NodeCount        int                `json:"nodeCount"`
	EdgeCount        int                `json:"edgeCount"`
	NodesByType      map[NodeType]int   `json:"nodesByType"`
	EdgesByType      map[EdgeType]int   `json:"edgesByType"`
	Density          float64            `json:"density"`
	AverageDegree    float64            `json:"averageDegree"`
	Components       int                `json:"components"`
	LargestComponent int                `json:"largestComponent"`
	TopCaseStudies   []Centrality       `json:"topCaseStudies"`
	TopKeywords      []Centrality       `json:"topKeywords"`
	PageRank         map[string]float64 `json:"-"`
}

// ComputeStats counts nodes and edges, measures density and connectivity and
// ranks case studies and keywords by PageRank. Edges are treated as
// undirected: each contributes an arc in both directions.
func ComputeStats(g *Graph) Stats {
	s := Stats{
		NodeCount:      len(g.Nodes),
		EdgeCount:      len(g.Edges),
		NodesByType:    map[NodeType]int{},
		EdgesByType:    map[EdgeType]int{},
		TopCaseStudies: []Centrality{},
		TopKeywords:    []Centrality{},
		PageRank:       map[string]float64{},
	}
	for _, n := range g.Nodes {
		s.NodesByType[n.Type]++
	}
	for _, e := range g.Edges {
		s.EdgesByType[e.Type]++
	}
	if n := float64(len(g.Nodes)); n > 1 {
		s.Density = common.Round(2*float64(len(g.Edges))/(n*(n-1)), 4)
	}
	if len(g.Nodes) > 0 {
		s.AverageDegree = common.Round(2*float64(len(g.Edges))/float64(len(g.Nodes)), 2)
	}

	comps := ConnectedComponents(g)
	s.Components = len(comps)
	if len(comps) > 0 {
		s.LargestComponent = len(comps[0])
	}
	if len(g.Nodes) == 0 {
		return s
	}

	dg := simple.NewDirectedGraph()
	nodeID := make(map[string]int64, len(g.Nodes))
	idToNode := make(map[int64]Node, len(g.Nodes))
	for _, n := range g.Nodes {
		gn := dg.NewNode()
		dg.AddNode(gn)
		nodeID[n.ID] = gn.ID()
		idToNode[gn.ID()] = n
	}
	for _, e := range g.Edges {
		u, okU := nodeID[e.Source]
		v, okV := nodeID[e.Target]
		if !okU || !okV || u == v {
			continue
		}
		dg.SetEdge(dg.NewEdge(dg.Node(u), dg.Node(v)))
		dg.SetEdge(dg.NewEdge(dg.Node(v), dg.Node(u)))
	}

	var cases, keywords []Centrality
	for id, score := range network.PageRank(dg, pageRankDamping, pageRankTolerance) {
		n := idToNode[id]
		s.PageRank[n.ID] = score
		c := Centrality{ID: n.ID, Label: n.Label, Score: common.Round(score, 6)}
		switch n.Type {
		case NodeCaseStudy:
			cases = append(cases, c)
		case NodeKeyword:
			keywords = append(keywords, c)
		}
	}
	s.TopCaseStudies = rankCentrality(cases)
	s.TopKeywords = rankCentrality(keywords)
	return s
}

func rankCentrality(cs []Centrality) []Centrality {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].Score != cs[j].Score {
			return cs[i].Score > cs[j].Score
		}
		return cs[i].ID < cs[j].ID
	})
	if len(cs) > topCentralNodes {
		cs = cs[:topCentralNodes]
	}
	if cs == nil {
		return []Centrality{}
	}
	return cs
}

//Personal.AI order the ending
