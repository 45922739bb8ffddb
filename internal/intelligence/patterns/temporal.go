package patterns

import (
	"sort"

	"github.com/turtacn/Resilience-Insights/internal/domain/casestudy"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/common"
)

// emergingRatio is the latest-over-prior multiplier a dimension must exceed
// to count as an emerging topic.
const emergingRatio = 1.5

// YearCount is the number of records dated in one year.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// TemporalPattern describes how the corpus is spread over time.
type TemporalPattern struct {
	YearlyCounts   []YearCount `json:"yearlyCounts"`
	FirstYear      int         `json:"firstYear,omitempty"`
	LastYear       int         `json:"lastYear,omitempty"`
	GrowthRate     float64     `json:"growthRate"`
	PeakYear       int         `json:"peakYear,omitempty"`
	EmergingTopics []string    `json:"emergingTopics"`
	UndatedCount   int         `json:"undatedCount"`
}

// Temporal buckets records by calendar year. The growth rate compares the
// last year against the first; the peak year is the earliest year with the
// highest count. Emerging topics are dimensions whose count in the latest
// year exceeds 1.5× their count in the year before it.
func Temporal(records []casestudy.Record) TemporalPattern {
	counts := map[int]int{}
	dimsByYear := map[int]common.Counter{}
	tp := TemporalPattern{EmergingTopics: []string{}, YearlyCounts: []YearCount{}}

	for _, r := range records {
		y, ok := r.Year()
		if !ok {
			tp.UndatedCount++
			continue
		}
		counts[y]++
		if dimsByYear[y] == nil {
			dimsByYear[y] = common.Counter{}
		}
		for d := range r.DimensionSet() {
			dimsByYear[y].Add(d)
		}
	}
	if len(counts) == 0 {
		return tp
	}

	years := make([]int, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	sort.Ints(years)

	for _, y := range years {
		tp.YearlyCounts = append(tp.YearlyCounts, YearCount{Year: y, Count: counts[y]})
		if counts[y] > counts[tp.PeakYear] || tp.PeakYear == 0 {
			tp.PeakYear = y
		}
	}
	tp.FirstYear, tp.LastYear = years[0], years[len(years)-1]
	first, last := counts[tp.FirstYear], counts[tp.LastYear]
	tp.GrowthRate = common.Round(float64(last-first)/float64(first)*100, 2)

	if len(years) < 2 {
		return tp
	}
	latest, prior := dimsByYear[tp.LastYear], dimsByYear[years[len(years)-2]]
	for dim, n := range latest {
		if float64(n) > emergingRatio*float64(prior[dim]) {
			tp.EmergingTopics = append(tp.EmergingTopics, dim)
		}
	}
	sort.Strings(tp.EmergingTopics)
	return tp
}

//Personal.AI order the ending
