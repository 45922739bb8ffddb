// Package clustering partitions case studies with k-means over sparse
// feature vectors, using cosine distance, and characterises each cluster.
//
// Quirk kept on purpose: a cluster that receives no members in an iteration
// keeps its previous centroid instead of being reseeded. Clusters beyond the
// corpus size start with an empty centroid and stay empty.
package clustering

import (
	"math/rand"
	"time"

	"github.com/turtacn/Resilience-Insights/internal/domain/casestudy"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/similarity"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/vectorizer"
	"github.com/turtacn/Resilience-Insights/pkg/errors"
)

const (
	DefaultMaxIterations        = 100
	DefaultConvergenceThreshold = 0.01

	minAutoK = 3
	maxAutoK = 8
)

// DefaultK derives k from the corpus size: clamp(n/10, 3, 8).
func DefaultK(n int) int {
	k := n / 10
	if k < minAutoK {
		return minAutoK
	}
	if k > maxAutoK {
		return maxAutoK
	}
	return k
}

// Config parameterises a run. Zero values select the defaults.
type Config struct {
	K             int
	MaxIterations int
	Threshold     float64

	// Rand drives centroid seeding. Inject a seeded source for reproducible
	// runs. nil uses a time-seeded source.
	Rand *rand.Rand
}

// Cluster is one k-means partition.
type Cluster struct {
	ID              int                      `json:"id"`
	Label           string                   `json:"label"`
	Members         []string                 `json:"members"`
	Size            int                      `json:"size"`
	Centroid        vectorizer.FeatureVector `json:"centroid,omitempty"`
	Characteristics Characteristics          `json:"characteristics"`
}

// Result is the outcome of one clustering run.
type Result struct {
	K           int            `json:"k"`
	Iterations  int            `json:"iterations"`
	Converged   bool           `json:"converged"`
	Clusters    []Cluster      `json:"clusters"`
	Assignments map[string]int `json:"assignments"`
	Warnings    []string       `json:"warnings,omitempty"`
}

// TotalSize sums cluster sizes. Equal to the corpus size for every run.
func (r *Result) TotalSize() int {
	total := 0
	for _, c := range r.Clusters {
		total += c.Size
	}
	return total
}

// Run clusters records. Only an empty corpus is an error; k ≥ n degrades to
// singleton and empty clusters with a warning.
func Run(records []casestudy.Record, cfg Config) (*Result, error) {
	if len(records) == 0 {
		return nil, errors.InputError("cannot cluster an empty corpus")
	}
	return runVectors(records, vectorizer.VectorizeAll(records), cfg), nil
}

// RunVectors is Run with vectors already computed (corpus order).
func RunVectors(records []casestudy.Record, vectors []vectorizer.FeatureVector, cfg Config) (*Result, error) {
	if len(records) == 0 {
		return nil, errors.InputError("cannot cluster an empty corpus")
	}
	if len(vectors) != len(records) {
		return nil, errors.InvalidParam("vector count does not match record count")
	}
	return runVectors(records, vectors, cfg), nil
}

func runVectors(records []casestudy.Record, vectors []vectorizer.FeatureVector, cfg Config) *Result {
	n := len(vectors)
	k := cfg.K
	if k <= 0 {
		k = DefaultK(n)
	}
	maxIter := cfg.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}
	threshold := cfg.Threshold
	if threshold <= 0 {
		threshold = DefaultConvergenceThreshold
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	res := &Result{K: k}
	if k >= n {
		res.Warnings = append(res.Warnings,
			errors.ClusteringError("cluster count is not below corpus size; some clusters are singletons or empty").Error())
	}

	centroids := seed(vectors, k, rng)
	assign := make([]int, n)

	for iter := 1; iter <= maxIter; iter++ {
		res.Iterations = iter
		for i, v := range vectors {
			assign[i] = nearest(v, centroids)
		}

		members := make([][]vectorizer.FeatureVector, k)
		for i, c := range assign {
			members[c] = append(members[c], vectors[i])
		}

		movement := 0.0
		for c := range centroids {
			if len(members[c]) == 0 {
				continue
			}
			next := vectorizer.Mean(members[c])
			if m := distance(centroids[c], next); m > movement {
				movement = m
			}
			centroids[c] = next
		}
		if movement < threshold {
			res.Converged = true
			break
		}
	}

	res.Assignments = make(map[string]int, n)
	grouped := make([][]casestudy.Record, k)
	for i, c := range assign {
		grouped[c] = append(grouped[c], records[i])
		res.Assignments[records[i].ID] = c
	}

	res.Clusters = make([]Cluster, k)
	for c := 0; c < k; c++ {
		ids := make([]string, len(grouped[c]))
		for i, r := range grouped[c] {
			ids[i] = r.ID
		}
		ch := Characterize(grouped[c])
		res.Clusters[c] = Cluster{
			ID:              c,
			Label:           ch.label(c),
			Members:         ids,
			Size:            len(ids),
			Centroid:        centroids[c],
			Characteristics: ch,
		}
	}
	return res
}

// seed picks min(k, n) distinct vectors without replacement as initial
// centroids. Remaining centroids start empty.
func seed(vectors []vectorizer.FeatureVector, k int, rng *rand.Rand) []vectorizer.FeatureVector {
	centroids := make([]vectorizer.FeatureVector, k)
	perm := rng.Perm(len(vectors))
	for c := range centroids {
		if c < len(perm) {
			centroids[c] = vectors[perm[c]].Clone()
		} else {
			centroids[c] = vectorizer.FeatureVector{}
		}
	}
	return centroids
}

// nearest returns the centroid index minimising 1 − cosine. Ties go to the
// lower index.
func nearest(v vectorizer.FeatureVector, centroids []vectorizer.FeatureVector) int {
	best, bestDist := 0, 2.0
	for c, centroid := range centroids {
		if d := 1 - similarity.Cosine(v, centroid); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// distance is the cosine distance between successive centroids. Two empty
// centroids have not moved.
func distance(a, b vectorizer.FeatureVector) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	return 1 - similarity.Cosine(a, b)
}

//Personal.AI order the ending
