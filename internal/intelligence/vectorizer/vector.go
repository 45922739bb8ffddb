// Package vectorizer turns case-study records into sparse, namespaced feature
// vectors consumed by the similarity and clustering engines.
package vectorizer

import (
	"math"
	"sort"
)

// Feature key namespaces.
const (
	PrefixDimension = "dim:"
	PrefixKeyword   = "kw:"
	PrefixMethod    = "method:"
	PrefixGeo       = "geo:"
	PrefixYear      = "year:"
)

// FeatureVector is a sparse mapping from namespaced feature key to a
// non-negative weight.
type FeatureVector map[string]float64

// Dot returns the dot product over the union of keys.
func (v FeatureVector) Dot(w FeatureVector) float64 {
	small, large := v, w
	if len(small) > len(large) {
		small, large = large, small
	}
	var sum float64
	for k, a := range small {
		if b, ok := large[k]; ok {
			sum += a * b
		}
	}
	return sum
}

// Magnitude returns the Euclidean norm.
func (v FeatureVector) Magnitude() float64 {
	var sum float64
	for _, a := range v {
		sum += a * a
	}
	return math.Sqrt(sum)
}

// Keys returns the feature keys in sorted order.
func (v FeatureVector) Keys() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns an independent copy.
func (v FeatureVector) Clone() FeatureVector {
	out := make(FeatureVector, len(v))
	for k, a := range v {
		out[k] = a
	}
	return out
}

// Equal reports whether both vectors hold the same keys and weights.
func (v FeatureVector) Equal(w FeatureVector) bool {
	if len(v) != len(w) {
		return false
	}
	for k, a := range v {
		if b, ok := w[k]; !ok || a != b {
			return false
		}
	}
	return true
}

// Mean returns the feature-wise mean of vectors. Features absent from a
// vector count as zero. An empty input yields an empty vector.
func Mean(vectors []FeatureVector) FeatureVector {
	out := make(FeatureVector)
	if len(vectors) == 0 {
		return out
	}
	for _, v := range vectors {
		for k, a := range v {
			out[k] += a
		}
	}
	n := float64(len(vectors))
	for k := range out {
		out[k] /= n
	}
	return out
}

//Personal.AI order the ending
