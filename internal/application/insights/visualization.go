package insights

import (
	"github.com/turtacn/Resilience-Insights/internal/intelligence/common"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/knowledgegraph"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/outcomes"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/similarity"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/textmining"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/vectorizer"
)

// VisualizationData is the rendering payload that accompanies a report.
// Sections whose stage did not complete are empty.
type VisualizationData struct {
	ThemeBubble            []textmining.ThemeScore `json:"themeBubble"`
	OutcomeTrend           []outcomes.YearAverage  `json:"outcomeTrend"`
	GeographicDistribution GeographicDistribution  `json:"geographicDistribution"`
	MethodologyRadar       []RadarAxis             `json:"methodologyRadar"`
	ClusterNetwork         ClusterNetwork          `json:"clusterNetwork"`
	KnowledgeGraph         *KnowledgeGraphView     `json:"knowledgeGraph,omitempty"`
}

// GeographicDistribution holds country and region counts.
type GeographicDistribution struct {
	Countries []common.Count `json:"countries"`
	Regions   []common.Count `json:"regions"`
}

// RadarAxis is one method of the methodology radar. Every vocabulary method
// is present, unused ones with a zero count.
type RadarAxis struct {
	Method     string  `json:"method"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// ClusterNode is one cluster in the cluster network.
type ClusterNode struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
	Size  int    `json:"size"`
}

// ClusterLink joins two clusters whose centroids are similar.
type ClusterLink struct {
	Source int     `json:"source"`
	Target int     `json:"target"`
	Weight float64 `json:"weight"`
}

// ClusterNetwork is the cluster overview graph.
type ClusterNetwork struct {
	Nodes []ClusterNode `json:"nodes"`
	Links []ClusterLink `json:"links"`
}

// KnowledgeGraphView pairs the graph with its statistics.
type KnowledgeGraphView struct {
	Graph *knowledgegraph.Graph `json:"graph"`
	Stats knowledgegraph.Stats  `json:"stats"`
}

func buildVisualization(run *analysisRun) *VisualizationData {
	v := &VisualizationData{
		ThemeBubble:  []textmining.ThemeScore{},
		OutcomeTrend: []outcomes.YearAverage{},
		GeographicDistribution: GeographicDistribution{
			Countries: []common.Count{},
			Regions:   []common.Count{},
		},
		MethodologyRadar: []RadarAxis{},
		ClusterNetwork:   ClusterNetwork{Nodes: []ClusterNode{}, Links: []ClusterLink{}},
	}
	if run.themes != nil {
		v.ThemeBubble = run.themes.analysis.TopThemes
	}
	if run.outcome != nil && run.outcome.Trends.Yearly != nil {
		v.OutcomeTrend = run.outcome.Trends.Yearly
	}
	if run.pattern != nil {
		v.GeographicDistribution = GeographicDistribution{
			Countries: run.pattern.Geographic.Countries,
			Regions:   run.pattern.Geographic.Regions,
		}
		v.MethodologyRadar = methodologyRadar(run.pattern.Methodological.Methods)
	}
	if run.cluster != nil {
		v.ClusterNetwork = clusterNetwork(run)
	}
	if run.graph != nil && run.stats != nil {
		v.KnowledgeGraph = &KnowledgeGraphView{Graph: run.graph, Stats: *run.stats}
	}
	return v
}

func methodologyRadar(methods []common.Count) []RadarAxis {
	byName := make(map[string]common.Count, len(methods))
	for _, m := range methods {
		byName[m.Name] = m
	}
	axes := make([]RadarAxis, 0, len(vectorizer.MethodVocabulary))
	for _, name := range vectorizer.MethodVocabulary {
		c := byName[name]
		axes = append(axes, RadarAxis{Method: name, Count: c.Count, Percentage: c.Percentage})
	}
	return axes
}

// clusterNetwork links every pair of non-empty clusters whose centroid
// cosine is positive.
func clusterNetwork(run *analysisRun) ClusterNetwork {
	net := ClusterNetwork{Nodes: []ClusterNode{}, Links: []ClusterLink{}}
	clusters := run.cluster.Clusters
	for _, c := range clusters {
		if c.Size == 0 {
			continue
		}
		net.Nodes = append(net.Nodes, ClusterNode{ID: c.ID, Label: c.Label, Size: c.Size})
	}
	for i := 0; i < len(clusters); i++ {
		if clusters[i].Size == 0 {
			continue
		}
		for j := i + 1; j < len(clusters); j++ {
			if clusters[j].Size == 0 {
				continue
			}
			w := common.Round(similarity.Cosine(clusters[i].Centroid, clusters[j].Centroid), 4)
			if w > 0 {
				net.Links = append(net.Links, ClusterLink{Source: clusters[i].ID, Target: clusters[j].ID, Weight: w})
			}
		}
	}
	return net
}

//Personal.AI order the ending
