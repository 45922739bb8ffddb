package outcomes

import (
	"github.com/turtacn/Resilience-Insights/internal/domain/casestudy"
)

// RecordMetric is a metric with the record it came from.
type RecordMetric struct {
	Metric
	RecordID string `json:"recordId"`
	Title    string `json:"title,omitempty"`
	Year     int    `json:"year,omitempty"`
}

// RecordQualitative is a qualitative outcome with its record.
type RecordQualitative struct {
	QualitativeOutcome
	RecordID string `json:"recordId"`
}

// RecordImpact is an impact with its record.
type RecordImpact struct {
	Impact
	RecordID string `json:"recordId"`
}

// Standardized holds the outcomes of a whole corpus, metrics bucketed by type.
type Standardized struct {
	ByType              map[MetricType][]RecordMetric `json:"byType"`
	Qualitative         []RecordQualitative           `json:"qualitative"`
	Impacts             []RecordImpact                `json:"impacts"`
	RecordsWithOutcomes int                           `json:"recordsWithOutcomes"`
	Skipped             int                           `json:"skipped"`
}

// All returns the metrics of every type, in MetricTypes order.
func (s Standardized) All() []RecordMetric {
	var out []RecordMetric
	for _, t := range MetricTypes {
		out = append(out, s.ByType[t]...)
	}
	return out
}

// StandardizeOutcomes runs extraction over every record's outcome text and
// buckets the results, keeping record provenance.
func StandardizeOutcomes(records []casestudy.Record) Standardized {
	s := Standardized{
		ByType:      make(map[MetricType][]RecordMetric, len(MetricTypes)),
		Qualitative: []RecordQualitative{},
		Impacts:     []RecordImpact{},
	}
	for _, t := range MetricTypes {
		s.ByType[t] = []RecordMetric{}
	}

	for _, r := range records {
		o := ExtractOutcomes(r.OutcomeText())
		s.Skipped += o.Skipped
		if o.Empty() {
			continue
		}
		s.RecordsWithOutcomes++
		year, _ := r.Year()
		for _, m := range o.Metrics() {
			s.ByType[m.Type] = append(s.ByType[m.Type], RecordMetric{Metric: m, RecordID: r.ID, Title: r.Title, Year: year})
		}
		for _, q := range o.Qualitative {
			s.Qualitative = append(s.Qualitative, RecordQualitative{QualitativeOutcome: q, RecordID: r.ID})
		}
		for _, im := range o.Impacts {
			s.Impacts = append(s.Impacts, RecordImpact{Impact: im, RecordID: r.ID})
		}
	}
	return s
}

//Personal.AI order the ending
