// Package knowledgegraph links case studies, resilience dimensions and
// keywords into a graph, with similarity edges between case studies.
package knowledgegraph

import (
	"strings"
)

// NodeType classifies graph nodes.
type NodeType string

const (
	NodeCaseStudy NodeType = "case-study"
	NodeDimension NodeType = "dimension"
	NodeKeyword   NodeType = "keyword"
)

// EdgeType classifies graph edges.
type EdgeType string

const (
	EdgeHasDimension EdgeType = "has-dimension"
	EdgeHasKeyword   EdgeType = "has-keyword"
	EdgeSimilarTo    EdgeType = "similar-to"
)

// Fixed edge weights.
const (
	HasDimensionWeight = 1.0
	HasKeywordWeight   = 0.5
)

// Node is a graph vertex. IDs are namespaced by type.
type Node struct {
	ID    string   `json:"id"`
	Type  NodeType `json:"type"`
	Label string   `json:"label"`
}

// Edge is an undirected link stored source → target.
type Edge struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Type   EdgeType `json:"type"`
	Weight float64  `json:"weight"`
}

// Graph is an immutable node/edge list once built.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// CaseStudyNodeID namespaces a record id.
func CaseStudyNodeID(id string) string { return "case:" + id }

// DimensionNodeID namespaces a dimension label.
func DimensionNodeID(name string) string { return "dim:" + name }

// KeywordNodeID namespaces a keyword.
func KeywordNodeID(term string) string { return "kw:" + strings.ToLower(term) }

// Node returns the node with id.
func (g *Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// NodesOf returns the nodes of one type, in insertion order.
func (g *Graph) NodesOf(t NodeType) []Node {
	var out []Node
	for _, n := range g.Nodes {
		if n.Type == t {
			out = append(out, n)
		}
	}
	return out
}

// EdgesOf returns the edges of one type, in insertion order.
func (g *Graph) EdgesOf(t EdgeType) []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// adjacency returns undirected neighbour lists keyed by node id.
func (g *Graph) adjacency() map[string][]string {
	adj := make(map[string][]string, len(g.Nodes))
	for _, e := range g.Edges {
		adj[e.Source] = append(adj[e.Source], e.Target)
		adj[e.Target] = append(adj[e.Target], e.Source)
	}
	return adj
}

//Personal.AI order the ending
