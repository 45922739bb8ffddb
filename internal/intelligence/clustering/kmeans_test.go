package clustering

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/turtacn/Resilience-Insights/internal/domain/casestudy"
	"github.com/turtacn/Resilience-Insights/pkg/errors"
)

func at(y int) *time.Time {
	ts := time.Date(y, time.June, 1, 0, 0, 0, 0, time.UTC)
	return &ts
}

// twoGroups returns health records followed by governance records with no
// overlapping features.
func twoGroups(perGroup int) []casestudy.Record {
	var rs []casestudy.Record
	for i := 0; i < perGroup; i++ {
		rs = append(rs, casestudy.Record{
			ID:          fmt.Sprintf("h%d", i),
			Dimensions:  []string{"Healthcare Systems"},
			Keywords:    []string{"clinics"},
			Methodology: "household survey",
			Country:     "Kenya",
		})
	}
	for i := 0; i < perGroup; i++ {
		rs = append(rs, casestudy.Record{
			ID:          fmt.Sprintf("g%d", i),
			Dimensions:  []string{"Governance"},
			Keywords:    []string{"councils"},
			Methodology: "ethnographic fieldwork",
			Country:     "Peru",
		})
	}
	return rs
}

func TestDefaultK(t *testing.T) {
	cases := map[int]int{0: 3, 5: 3, 29: 3, 40: 4, 80: 8, 1000: 8}
	for n, want := range cases {
		assert.Equal(t, want, DefaultK(n), "n=%d", n)
	}
}

func TestRun_EmptyCorpus(t *testing.T) {
	_, err := Run(nil, Config{})
	require.Error(t, err)
	assert.True(t, errors.IsInputError(err))
}

func TestRun_SeparatesDisjointGroups(t *testing.T) {
	rs := twoGroups(5)
	res, err := Run(rs, Config{K: 2, Rand: rand.New(rand.NewSource(7))})
	require.NoError(t, err)

	require.Len(t, res.Clusters, 2)
	assert.True(t, res.Converged)
	assert.Equal(t, len(rs), res.TotalSize())

	// every health record shares a cluster, every governance record the other
	hc := res.Assignments["h0"]
	gc := res.Assignments["g0"]
	assert.NotEqual(t, hc, gc)
	for _, r := range rs {
		if r.ID[0] == 'h' {
			assert.Equal(t, hc, res.Assignments[r.ID])
		} else {
			assert.Equal(t, gc, res.Assignments[r.ID])
		}
	}

	health := res.Clusters[hc].Characteristics
	require.NotEmpty(t, health.TopDimensions)
	assert.Equal(t, "Healthcare Systems", health.TopDimensions[0].Name)
	assert.Equal(t, 100.0, health.TopDimensions[0].Percentage)
	assert.Equal(t, "survey", health.TopMethods[0].Name)
	assert.Equal(t, "clinics", health.TopKeywords[0].Name)
	assert.Equal(t, "Healthcare Systems / clinics", res.Clusters[hc].Label)
}

func TestCharacterize_CountsAndYearRange(t *testing.T) {
	members := []casestudy.Record{
		{ID: "a", Dimensions: []string{"Governance", "Infrastructure"}, Keywords: []string{"Roads", "roads"}, Country: "Nepal", Date: at(2019)},
		{ID: "b", Dimensions: []string{"Governance"}, Keywords: []string{"bridges"}, Country: "Nepal", Date: at(2016)},
		{ID: "c", Dimensions: []string{"Governance"}, Methodology: "Qualitative interviews", Country: "India", Date: at(2021)},
		{ID: "d", Dimensions: []string{"Infrastructure"}},
	}
	ch := Characterize(members)

	require.Len(t, ch.TopDimensions, 2)
	assert.Equal(t, "Governance", ch.TopDimensions[0].Name)
	assert.Equal(t, 3, ch.TopDimensions[0].Count)
	assert.Equal(t, 75.0, ch.TopDimensions[0].Percentage)
	assert.Equal(t, "Nepal", ch.TopCountries[0].Name)
	assert.Equal(t, 50.0, ch.TopCountries[0].Percentage)
	assert.Equal(t, 1, ch.TopKeywords[1].Count, "duplicate keyword labels count once per record")
	assert.Equal(t, []string{"interview", "qualitative"}, []string{ch.TopMethods[0].Name, ch.TopMethods[1].Name})
	assert.Equal(t, &YearRange{Min: 2016, Max: 2021}, ch.YearRange)
}

func TestRun_SeededRunsAreReproducible(t *testing.T) {
	rs := twoGroups(6)
	a, err := Run(rs, Config{K: 3, Rand: rand.New(rand.NewSource(42))})
	require.NoError(t, err)
	b, err := Run(rs, Config{K: 3, Rand: rand.New(rand.NewSource(42))})
	require.NoError(t, err)
	assert.Equal(t, a.Assignments, b.Assignments)
}

func TestRun_KAboveCorpusSizeDegrades(t *testing.T) {
	rs := twoGroups(1)
	res, err := Run(rs, Config{K: 5, Rand: rand.New(rand.NewSource(1))})
	require.NoError(t, err)

	require.Len(t, res.Clusters, 5)
	assert.Equal(t, 2, res.TotalSize())
	assert.NotEmpty(t, res.Warnings)

	empty := 0
	for _, c := range res.Clusters {
		if c.Size == 0 {
			empty++
			assert.Empty(t, c.Members)
		}
	}
	assert.Equal(t, 3, empty)
}

func TestRun_DefaultKUsed(t *testing.T) {
	res, err := Run(twoGroups(10), Config{Rand: rand.New(rand.NewSource(3))})
	require.NoError(t, err)
	assert.Equal(t, 3, res.K)
	assert.Len(t, res.Clusters, 3)
}

func TestRun_IterationCapRespected(t *testing.T) {
	res, err := Run(twoGroups(4), Config{K: 2, MaxIterations: 1, Rand: rand.New(rand.NewSource(9))})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Iterations)
}

func TestRunVectors_LengthMismatch(t *testing.T) {
	_, err := RunVectors(twoGroups(1), nil, Config{})
	assert.Error(t, err)
}

func TestCharacterize_Empty(t *testing.T) {
	ch := Characterize(nil)
	assert.Empty(t, ch.TopDimensions)
	assert.Nil(t, ch.YearRange)
	assert.Equal(t, "Cluster 3", ch.label(2))
}

func TestRun_Property_PartitionsCorpus(t *testing.T) {
	dims := []string{"Healthcare Systems", "Governance", "Infrastructure", "Social Cohesion"}
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 25).Draw(rt, "n")
		k := rapid.IntRange(1, 12).Draw(rt, "k")
		rs := make([]casestudy.Record, n)
		for i := range rs {
			rs[i] = casestudy.Record{
				ID:         fmt.Sprintf("r%d", i),
				Dimensions: rapid.SliceOfN(rapid.SampledFrom(dims), 0, 3).Draw(rt, "dims"),
			}
		}
		res, err := Run(rs, Config{K: k, Rand: rand.New(rand.NewSource(int64(n*31 + k)))})
		if err != nil {
			rt.Fatalf("unexpected error: %v", err)
		}
		if res.TotalSize() != n {
			rt.Fatalf("cluster sizes sum to %d, corpus has %d", res.TotalSize(), n)
		}
		if len(res.Clusters) != k {
			rt.Fatalf("expected %d clusters, got %d", k, len(res.Clusters))
		}
		if len(res.Assignments) != n {
			rt.Fatalf("expected %d assignments, got %d", n, len(res.Assignments))
		}
	})
}

//Personal.AI order the ending
