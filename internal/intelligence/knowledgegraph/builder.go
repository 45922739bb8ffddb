package knowledgegraph

import (
	"context"

	"github.com/turtacn/Resilience-Insights/internal/domain/casestudy"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/common"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/similarity"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/textmining"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/vectorizer"
)

const (
	DefaultKeywordsPerRecord   = 5
	DefaultNeighborsPerRecord  = 3
	DefaultSimilarityThreshold = 0.5
)

// Options tune graph construction. Zero values select the defaults.
type Options struct {
	KeywordsPerRecord   int
	NeighborsPerRecord  int
	SimilarityThreshold float64

	// FullSimilarity links every pair above the threshold instead of the
	// top neighbours of each record.
	FullSimilarity bool
}

func (o Options) withDefaults() Options {
	if o.KeywordsPerRecord <= 0 {
		o.KeywordsPerRecord = DefaultKeywordsPerRecord
	}
	if o.NeighborsPerRecord <= 0 {
		o.NeighborsPerRecord = DefaultNeighborsPerRecord
	}
	if o.SimilarityThreshold <= 0 {
		o.SimilarityThreshold = DefaultSimilarityThreshold
	}
	return o
}

// Build indexes records and builds their graph.
func Build(ctx context.Context, records []casestudy.Record, opts Options) (*Graph, error) {
	docs := make([]string, len(records))
	for i, r := range records {
		docs[i] = r.Text()
	}
	return BuildFrom(ctx, records, textmining.NewCorpus(docs), similarity.NewEngine(records), opts)
}

// BuildFrom builds the graph from a precomputed term corpus and similarity
// engine, both in record order.
//
// Every record becomes a case-study node linked to one shared node per
// dimension (weight 1) and per top keyword (weight 0.5). Records whose text
// yields no keyword fall back to their keyword labels. Similarity edges link
// each record to its nearest neighbours scoring above the threshold; a pair
// found from both ends is linked once.
func BuildFrom(ctx context.Context, records []casestudy.Record, corpus *textmining.Corpus, engine *similarity.Engine, opts Options) (*Graph, error) {
	opts = opts.withDefaults()
	g := &Graph{Nodes: []Node{}, Edges: []Edge{}}
	seen := map[string]struct{}{}
	addNode := func(n Node) {
		if _, ok := seen[n.ID]; ok {
			return
		}
		seen[n.ID] = struct{}{}
		g.Nodes = append(g.Nodes, n)
	}

	for i, r := range records {
		caseID := CaseStudyNodeID(r.ID)
		addNode(Node{ID: caseID, Type: NodeCaseStudy, Label: r.Title})

		linkedDims := map[string]struct{}{}
		for _, d := range r.Dimensions {
			if _, dup := linkedDims[d]; dup || d == "" {
				continue
			}
			linkedDims[d] = struct{}{}
			dimID := DimensionNodeID(d)
			addNode(Node{ID: dimID, Type: NodeDimension, Label: d})
			g.Edges = append(g.Edges, Edge{Source: caseID, Target: dimID, Type: EdgeHasDimension, Weight: HasDimensionWeight})
		}

		for _, term := range recordKeywords(r, corpus, i, opts.KeywordsPerRecord) {
			kwID := KeywordNodeID(term)
			addNode(Node{ID: kwID, Type: NodeKeyword, Label: term})
			g.Edges = append(g.Edges, Edge{Source: caseID, Target: kwID, Type: EdgeHasKeyword, Weight: HasKeywordWeight})
		}
	}

	var (
		similar []Edge
		err     error
	)
	if opts.FullSimilarity {
		similar, err = FullSimilarityEdges(ctx, records, engine, opts.SimilarityThreshold)
		if err != nil {
			return nil, err
		}
	} else {
		similar = neighbourEdges(records, engine, opts)
	}
	g.Edges = append(g.Edges, similar...)
	return g, nil
}

func recordKeywords(r casestudy.Record, corpus *textmining.Corpus, i, topN int) []string {
	var terms []string
	dup := map[string]struct{}{}
	if corpus != nil && i < corpus.Size() {
		for _, k := range corpus.DocumentKeywords(i, topN) {
			terms = append(terms, k.Term)
			dup[k.Term] = struct{}{}
		}
	}
	if len(terms) > 0 {
		return terms
	}
	for _, kw := range r.Keywords {
		kw = vectorizer.NormalizeKeyword(kw)
		if _, ok := dup[kw]; ok || kw == "" {
			continue
		}
		dup[kw] = struct{}{}
		terms = append(terms, kw)
		if len(terms) == topN {
			break
		}
	}
	return terms
}

func neighbourEdges(records []casestudy.Record, engine *similarity.Engine, opts Options) []Edge {
	var out []Edge
	linked := map[[2]string]struct{}{}
	for i, r := range records {
		for _, m := range engine.Neighbors(i, opts.NeighborsPerRecord, opts.SimilarityThreshold) {
			key := pairKey(r.ID, m.ID)
			if _, ok := linked[key]; ok {
				continue
			}
			linked[key] = struct{}{}
			out = append(out, Edge{
				Source: CaseStudyNodeID(r.ID),
				Target: CaseStudyNodeID(m.ID),
				Type:   EdgeSimilarTo,
				Weight: common.Round(m.Score, 4),
			})
		}
	}
	return out
}

// FullSimilarityEdges links every record pair whose similarity is strictly
// above threshold, using the exact pairwise matrix.
func FullSimilarityEdges(ctx context.Context, records []casestudy.Record, engine *similarity.Engine, threshold float64) ([]Edge, error) {
	if engine == nil {
		engine = similarity.NewEngine(records)
	}
	m, err := engine.PairwiseMatrix(ctx)
	if err != nil {
		return nil, err
	}
	out := []Edge{}
	for i := range records {
		for j := i + 1; j < len(records); j++ {
			if m[i][j] > threshold {
				out = append(out, Edge{
					Source: CaseStudyNodeID(records[i].ID),
					Target: CaseStudyNodeID(records[j].ID),
					Type:   EdgeSimilarTo,
					Weight: common.Round(m[i][j], 4),
				})
			}
		}
	}
	return out, nil
}

func pairKey(a, b string) [2]string {
	if b < a {
		a, b = b, a
	}
	return [2]string{a, b}
}

//Personal.AI order the ending
