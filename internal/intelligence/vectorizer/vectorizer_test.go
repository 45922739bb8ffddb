package vectorizer

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/turtacn/Resilience-Insights/internal/domain/casestudy"
)

func sampleRecord() casestudy.Record {
	d := time.Date(2021, time.May, 4, 0, 0, 0, 0, time.UTC)
	return casestudy.Record{
		ID:          "cs-1",
		Dimensions:  []string{"Healthcare Systems", "Governance"},
		Keywords:    []string{" Vaccination ", "trust"},
		Methodology: "A Mixed methods design combining a household survey and key-informant interviews.",
		Country:     "Kenya",
		Date:        &d,
	}
}

func TestVectorize_EmitsNamespacedPresenceFeatures(t *testing.T) {
	v := Vectorize(sampleRecord())

	assert.Equal(t, FeatureVector{
		"dim:Healthcare Systems": 1,
		"dim:Governance":         1,
		"kw:vaccination":         1,
		"kw:trust":               1,
		"method:mixed-methods":   1,
		"method:survey":          1,
		"method:interview":       1,
		"geo:Kenya":              1,
		"year:2021":              1,
	}, v)
}

func TestVectorize_Deterministic(t *testing.T) {
	r := sampleRecord()
	assert.True(t, Vectorize(r).Equal(Vectorize(r)))
	assert.Equal(t, Vectorize(r).Keys(), Vectorize(r).Keys())
}

func TestVectorize_OptionalFieldsOmitted(t *testing.T) {
	v := Vectorize(casestudy.Record{ID: "x", Dimensions: []string{"Governance", ""}})
	assert.Equal(t, FeatureVector{"dim:Governance": 1}, v)
	assert.Empty(t, Vectorize(casestudy.Record{ID: "empty"}))
}

func TestDetectMethods(t *testing.T) {
	assert.Equal(t, []string{"qualitative", "ethnographic"}, DetectMethods("Qualitative ethnography of market traders"))
	assert.Equal(t, []string{"quantitative"}, DetectMethods("quantitative panel"))
	assert.Nil(t, DetectMethods(""))
	assert.Empty(t, DetectMethods("desk review"))
}

func TestFeatureVector_Algebra(t *testing.T) {
	a := FeatureVector{"x": 1, "y": 2}
	b := FeatureVector{"y": 3, "z": 4}

	assert.Equal(t, 6.0, a.Dot(b))
	assert.Equal(t, a.Dot(b), b.Dot(a))
	assert.InDelta(t, math.Sqrt(5), a.Magnitude(), 1e-12)
	assert.Equal(t, []string{"x", "y"}, a.Keys())

	c := a.Clone()
	c["x"] = 9
	assert.Equal(t, 1.0, a["x"])
}

func TestMean(t *testing.T) {
	m := Mean([]FeatureVector{{"a": 1, "b": 1}, {"a": 1}})
	assert.Equal(t, FeatureVector{"a": 1, "b": 0.5}, m)
	assert.Empty(t, Mean(nil))
}

//Personal.AI order the ending
