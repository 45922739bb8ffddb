package outcomes

import (
	"math"
	"sort"

	"github.com/turtacn/Resilience-Insights/internal/domain/casestudy"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/common"
)

// Trend labels.
const (
	TrendImproving        = "improving"
	TrendDeclining        = "declining"
	TrendStable           = "stable"
	TrendInsufficientData = "insufficient-data"
)

const (
	trendWindow    = 3
	trendThreshold = 10.0
)

// YearAverage is the mean improvement reported by records of one year.
type YearAverage struct {
	Year    int     `json:"year"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// TrendResult is the improvement trajectory of a corpus.
type TrendResult struct {
	Trend         string        `json:"trend"`
	Yearly        []YearAverage `json:"yearly"`
	EarlyMean     float64       `json:"earlyMean"`
	LateMean      float64       `json:"lateMean"`
	ChangePercent float64       `json:"changePercent"`
}

// TrackOutcomeTrends buckets increase-direction percentages by record year.
// The trend compares the mean of the latest three yearly averages with the
// mean of the earliest three. A relative difference above 10% is improving
// or declining, anything else stable. Fewer than two distinct years is
// insufficient data.
func TrackOutcomeTrends(records []casestudy.Record) TrendResult {
	return TrendsFrom(StandardizeOutcomes(records))
}

// TrendsFrom computes trends from already standardised outcomes.
func TrendsFrom(s Standardized) TrendResult {
	byYear := map[int][]float64{}
	for _, m := range s.Improvements() {
		if m.Year == 0 {
			continue
		}
		byYear[m.Year] = append(byYear[m.Year], m.Value)
	}

	tr := TrendResult{Trend: TrendInsufficientData, Yearly: []YearAverage{}}
	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	averages := make([]float64, len(years))
	for i, y := range years {
		averages[i] = mean(byYear[y])
		tr.Yearly = append(tr.Yearly, YearAverage{Year: y, Average: common.Round(averages[i], 2), Count: len(byYear[y])})
	}
	if len(years) < 2 {
		return tr
	}

	w := trendWindow
	if w > len(averages) {
		w = len(averages)
	}
	early, late := mean(averages[:w]), mean(averages[len(averages)-w:])
	tr.EarlyMean, tr.LateMean = common.Round(early, 2), common.Round(late, 2)

	var change float64
	switch {
	case early != 0:
		change = (late - early) / math.Abs(early) * 100
	case late > 0:
		change = math.Inf(1)
	case late < 0:
		change = math.Inf(-1)
	}
	switch {
	case change > trendThreshold:
		tr.Trend = TrendImproving
	case change < -trendThreshold:
		tr.Trend = TrendDeclining
	default:
		tr.Trend = TrendStable
	}
	if !math.IsInf(change, 0) {
		tr.ChangePercent = common.Round(change, 2)
	}
	return tr
}

//Personal.AI order the ending
