package similarity

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/turtacn/Resilience-Insights/internal/domain/casestudy"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/vectorizer"
	"github.com/turtacn/Resilience-Insights/pkg/errors"
)

func set(items ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, s := range items {
		m[s] = struct{}{}
	}
	return m
}

func threeRecords() []casestudy.Record {
	return []casestudy.Record{
		{ID: "1", Title: "Clinic network", Dimensions: []string{"Healthcare Systems"}, Country: "Kenya"},
		{ID: "2", Title: "Mobile health", Dimensions: []string{"Healthcare Systems"}, Country: "Uganda"},
		{ID: "3", Title: "Local councils", Dimensions: []string{"Governance"}, Country: "Peru"},
	}
}

func TestCosine(t *testing.T) {
	a := vectorizer.FeatureVector{"dim:A": 1, "kw:x": 1}
	b := vectorizer.FeatureVector{"dim:A": 1}
	assert.InDelta(t, 1/1.4142135623730951, Cosine(a, b), 1e-12)
	assert.Equal(t, 1.0, Cosine(a, a))
	assert.Equal(t, 0.0, Cosine(a, vectorizer.FeatureVector{}))
	assert.Equal(t, 0.0, Cosine(vectorizer.FeatureVector{"q": 1}, b))
}

func TestJaccard(t *testing.T) {
	assert.InDelta(t, 1.0/3.0, Jaccard(set("A", "B"), set("B", "C")), 1e-12)
	assert.Equal(t, 1.0, Jaccard(set("A"), set("A")))
	assert.Equal(t, 0.0, Jaccard(set(), set()))
	assert.Equal(t, 0.0, Jaccard(set("A"), set()))
}

func TestCaseSimilarity_SelfIsOne(t *testing.T) {
	r := casestudy.Record{ID: "a", Dimensions: []string{"Governance", "Infrastructure"}, Keywords: []string{"roads"}, Country: "Nepal"}
	assert.Equal(t, 1.0, CaseSimilarity(r, r))
}

func TestFindSimilar_SharedDimensionRanksFirst(t *testing.T) {
	rs := threeRecords()
	got := FindSimilar(rs[0], rs, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "2", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
	assert.Greater(t, got[0].Score, got[1].Score)
}

func TestFindSimilar_ExcludesTarget(t *testing.T) {
	rs := threeRecords()
	for _, m := range FindSimilar(rs[1], rs, 10) {
		assert.NotEqual(t, "2", m.ID)
	}
}

func TestEngine_FindSimilarMatchesStateless(t *testing.T) {
	rs := threeRecords()
	e := NewEngine(rs)
	got, err := e.FindSimilar("1", 2)
	require.NoError(t, err)
	assert.Equal(t, FindSimilar(rs[0], rs, 2), got)

	_, err = e.FindSimilar("missing", 2)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeCaseStudyNotFound))
}

func TestEngine_NeighborsThreshold(t *testing.T) {
	e := NewEngine(threeRecords())
	n := e.Neighbors(0, 3, 0.5)
	require.Len(t, n, 1)
	assert.Equal(t, "2", n[0].ID)
}

func TestEngine_PairwiseMatrix(t *testing.T) {
	rs := threeRecords()
	e := NewEngine(rs)
	m, err := e.PairwiseMatrix(context.Background())
	require.NoError(t, err)
	require.Len(t, m, 3)
	for i := range m {
		assert.Equal(t, 1.0, m[i][i])
		for j := range m {
			assert.Equal(t, m[i][j], m[j][i])
			if i != j {
				assert.InDelta(t, CaseSimilarity(rs[i], rs[j]), m[i][j], 1e-12)
			}
		}
	}
}

func TestEngine_PairwiseMatrixCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewEngine(threeRecords()).PairwiseMatrix(ctx)
	assert.Error(t, err)
}

func genVector() *rapid.Generator[vectorizer.FeatureVector] {
	keys := []string{"dim:A", "dim:B", "kw:x", "kw:y", "geo:K", "year:2020", "method:survey"}
	return rapid.Custom(func(t *rapid.T) vectorizer.FeatureVector {
		v := vectorizer.FeatureVector{}
		for _, k := range rapid.SliceOfN(rapid.SampledFrom(keys), 0, len(keys)).Draw(t, "keys") {
			v[k] = rapid.Float64Range(0, 5).Draw(t, "w")
		}
		return v
	})
}

func TestCosine_Property_SymmetricAndBounded(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := genVector().Draw(rt, "a")
		b := genVector().Draw(rt, "b")
		ab, ba := Cosine(a, b), Cosine(b, a)
		if math.Abs(ab-ba) > 1e-12 {
			rt.Fatalf("cosine not symmetric: %v vs %v", ab, ba)
		}
		if ab < 0 || ab > 1 {
			rt.Fatalf("cosine out of range: %v", ab)
		}
		if a.Magnitude() > 1e-6 {
			if self := Cosine(a, a); self < 1-1e-9 {
				rt.Fatalf("cosine(v, v) = %v", self)
			}
		}
	})
}

//Personal.AI order the ending
