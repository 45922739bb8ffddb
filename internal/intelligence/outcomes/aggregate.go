package outcomes

import (
	"sort"

	"github.com/turtacn/Resilience-Insights/internal/intelligence/common"
)

const topPerformers = 5

// ValueRange is the min–max span of improvement values.
type ValueRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Performer is one of the strongest reported improvements.
type Performer struct {
	RecordID string  `json:"recordId"`
	Title    string  `json:"title,omitempty"`
	Value    float64 `json:"value"`
	Text     string  `json:"text"`
}

// Aggregate summarises standardised outcomes.
type Aggregate struct {
	TotalMetrics         int            `json:"totalMetrics"`
	MetricsByType        []common.Count `json:"metricsByType"`
	ImprovementCount     int            `json:"improvementCount"`
	AverageImprovement   float64        `json:"averageImprovement"`
	MedianImprovement    float64        `json:"medianImprovement"`
	Range                *ValueRange    `json:"range,omitempty"`
	CategoryDistribution []common.Count `json:"categoryDistribution"`
	ImpactDistribution   []common.Count `json:"impactDistribution"`
	TopPerformers        []Performer    `json:"topPerformers"`
	QualitativeCount     int            `json:"qualitativeCount"`
}

// Improvements returns the increase-direction percentage metrics.
func (s Standardized) Improvements() []RecordMetric {
	var out []RecordMetric
	for _, m := range s.ByType[MetricPercentage] {
		if m.Direction == DirectionIncrease {
			out = append(out, m)
		}
	}
	return out
}

// AggregateOutcomes computes the mean, median and range of increase-direction
// percentages, category and impact distributions, and the top-5 performers by
// value.
func AggregateOutcomes(s Standardized) Aggregate {
	all := s.All()
	agg := Aggregate{
		TotalMetrics:     len(all),
		QualitativeCount: len(s.Qualitative),
		TopPerformers:    []Performer{},
	}

	byType, categories, impacts := common.Counter{}, common.Counter{}, common.Counter{}
	for _, m := range all {
		byType.Add(string(m.Type))
		categories.Add(m.Category)
	}
	for _, q := range s.Qualitative {
		categories.Add(q.Category)
	}
	for _, im := range s.Impacts {
		impacts.Add(im.Type)
	}
	agg.MetricsByType = byType.Top(0, len(all))
	agg.CategoryDistribution = categories.Top(0, categories.Total())
	agg.ImpactDistribution = impacts.Top(0, len(s.Impacts))

	improvements := s.Improvements()
	agg.ImprovementCount = len(improvements)
	if len(improvements) == 0 {
		return agg
	}

	values := make([]float64, len(improvements))
	for i, m := range improvements {
		values[i] = m.Value
	}
	agg.AverageImprovement = common.Round(mean(values), 2)
	agg.MedianImprovement = common.Round(median(values), 2)
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	agg.Range = &ValueRange{Min: sorted[0], Max: sorted[len(sorted)-1]}

	ranked := append([]RecordMetric(nil), improvements...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Value != ranked[j].Value {
			return ranked[i].Value > ranked[j].Value
		}
		return ranked[i].RecordID < ranked[j].RecordID
	})
	if len(ranked) > topPerformers {
		ranked = ranked[:topPerformers]
	}
	for _, m := range ranked {
		agg.TopPerformers = append(agg.TopPerformers, Performer{RecordID: m.RecordID, Title: m.Title, Value: m.Value, Text: m.Text})
	}
	return agg
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	s := append([]float64(nil), values...)
	sort.Float64s(s)
	mid := len(s) / 2
	if len(s)%2 == 0 {
		return (s[mid-1] + s[mid]) / 2
	}
	return s[mid]
}

//Personal.AI order the ending
