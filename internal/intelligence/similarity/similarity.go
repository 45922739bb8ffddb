// Package similarity scores case-study pairs by combining cosine similarity of
// their feature vectors with Jaccard similarity of their dimension sets, and
// answers nearest-neighbour queries over a corpus.
package similarity

import (
	"context"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/turtacn/Resilience-Insights/internal/domain/casestudy"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/vectorizer"
	"github.com/turtacn/Resilience-Insights/pkg/errors"
)

// Score weights.
const (
	CosineWeight  = 0.7
	JaccardWeight = 0.3
)

// Match is one ranked neighbour.
type Match struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// Cosine returns the cosine of the angle between a and b, or 0 when either
// has zero magnitude.
func Cosine(a, b vectorizer.FeatureVector) float64 {
	var na, nb float64
	for _, x := range a {
		na += x * x
	}
	for _, x := range b {
		nb += x * x
	}
	den := math.Sqrt(na * nb)
	if na == 0 || nb == 0 || den == 0 {
		return 0
	}
	c := a.Dot(b) / den
	if c > 1 {
		return 1
	}
	return c
}

// Jaccard returns |a ∩ b| / |a ∪ b|. Two empty sets score 0.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

// CaseSimilarity = 0.7·cosine(vec(a), vec(b)) + 0.3·jaccard(dims(a), dims(b)).
func CaseSimilarity(a, b casestudy.Record) float64 {
	return combine(vectorizer.Vectorize(a), vectorizer.Vectorize(b), a.DimensionSet(), b.DimensionSet())
}

func combine(va, vb vectorizer.FeatureVector, da, db map[string]struct{}) float64 {
	return CosineWeight*Cosine(va, vb) + JaccardWeight*Jaccard(da, db)
}

// FindSimilar ranks corpus by similarity to target, excluding target itself,
// and returns the topN best matches.
func FindSimilar(target casestudy.Record, corpus []casestudy.Record, topN int) []Match {
	vt := vectorizer.Vectorize(target)
	dt := target.DimensionSet()
	matches := make([]Match, 0, len(corpus))
	for _, r := range corpus {
		if r.ID == target.ID {
			continue
		}
		matches = append(matches, Match{
			ID:    r.ID,
			Title: r.Title,
			Score: combine(vt, vectorizer.Vectorize(r), dt, r.DimensionSet()),
		})
	}
	return topMatches(matches, topN)
}

func topMatches(matches []Match, topN int) []Match {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if topN > 0 && len(matches) > topN {
		matches = matches[:topN]
	}
	return matches
}

// ─────────────────────────────────────────────────────────────────────────────
// Engine
// ─────────────────────────────────────────────────────────────────────────────

// Engine caches vectors and dimension sets of one corpus snapshot so that
// repeated queries do not re-vectorize. Read-only after construction.
type Engine struct {
	records []casestudy.Record
	vectors []vectorizer.FeatureVector
	dims    []map[string]struct{}
	index   map[string]int
}

// NewEngine indexes records.
func NewEngine(records []casestudy.Record) *Engine {
	e := &Engine{
		records: records,
		vectors: vectorizer.VectorizeAll(records),
		dims:    make([]map[string]struct{}, len(records)),
		index:   make(map[string]int, len(records)),
	}
	for i, r := range records {
		e.dims[i] = r.DimensionSet()
		e.index[r.ID] = i
	}
	return e
}

// Len is the corpus size.
func (e *Engine) Len() int { return len(e.records) }

// Vectors exposes the cached vectors in corpus order.
func (e *Engine) Vectors() []vectorizer.FeatureVector { return e.vectors }

// Similarity scores records i and j.
func (e *Engine) Similarity(i, j int) float64 {
	return combine(e.vectors[i], e.vectors[j], e.dims[i], e.dims[j])
}

// Neighbors returns up to topN records most similar to record i whose score
// is strictly above minScore.
func (e *Engine) Neighbors(i, topN int, minScore float64) []Match {
	matches := make([]Match, 0, len(e.records))
	for j, r := range e.records {
		if j == i {
			continue
		}
		if s := e.Similarity(i, j); s > minScore {
			matches = append(matches, Match{ID: r.ID, Title: r.Title, Score: s})
		}
	}
	return topMatches(matches, topN)
}

// FindSimilar looks up targetID and ranks the rest of the corpus against it.
func (e *Engine) FindSimilar(targetID string, topN int) ([]Match, error) {
	i, ok := e.index[targetID]
	if !ok {
		return nil, errors.New(errors.ErrCodeCaseStudyNotFound, "case study not found").WithDetail("id=" + targetID)
	}
	return e.Neighbors(i, topN, math.Inf(-1)), nil
}

// PairwiseMatrix computes the full symmetric similarity matrix with a unit
// diagonal. Rows are spread across a bounded worker pool.
func (e *Engine) PairwiseMatrix(ctx context.Context) ([][]float64, error) {
	n := len(e.records)
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		m[i][i] = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for j := i + 1; j < n; j++ {
				s := e.Similarity(i, j)
				m[i][j] = s
				m[j][i] = s
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeTimeout, "pairwise similarity interrupted")
	}
	return m, nil
}

//Personal.AI order the ending
