package patterns

import (
	"sort"

	"github.com/turtacn/Resilience-Insights/internal/domain/casestudy"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/common"
)

const pairSeparator = " + "

// DimensionalPattern describes how resilience dimensions are tagged and
// combined.
type DimensionalPattern struct {
	Frequency                 []common.Count `json:"frequency"`
	Combinations              []common.Count `json:"combinations"`
	AverageDimensionsPerStudy float64        `json:"averageDimensionsPerStudy"`
}

// PairKey names an unordered dimension pair as "A + B" with A < B.
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + pairSeparator + b
}

// Dimensional counts dimension frequency and every co-occurring pair within a
// record. The average is total distinct tags per record divided by the
// record count.
func Dimensional(records []casestudy.Record) DimensionalPattern {
	freq, pairs := common.Counter{}, common.Counter{}
	tags := 0
	for _, r := range records {
		set := r.DimensionSet()
		dims := make([]string, 0, len(set))
		for d := range set {
			dims = append(dims, d)
		}
		sort.Strings(dims)
		tags += len(dims)
		for i, a := range dims {
			freq.Add(a)
			for _, b := range dims[i+1:] {
				pairs.Add(PairKey(a, b))
			}
		}
	}

	dp := DimensionalPattern{
		Frequency:    freq.Top(0, len(records)),
		Combinations: pairs.Top(0, len(records)),
	}
	if len(records) > 0 {
		dp.AverageDimensionsPerStudy = common.Round(float64(tags)/float64(len(records)), 2)
	}
	return dp
}

//Personal.AI order the ending
