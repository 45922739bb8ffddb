package outcomes

import (
	"regexp"
	"strings"

	"github.com/turtacn/Resilience-Insights/internal/intelligence/textmining"
)

// QuantitativeOutcome is a qualifying sentence that carries at least one
// metric.
type QuantitativeOutcome struct {
	Text     string   `json:"text"`
	Category string   `json:"category"`
	Metrics  []Metric `json:"metrics"`
}

// QualitativeOutcome is a qualifying sentence without metrics.
type QualitativeOutcome struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

// Impact is a qualifying sentence that names an impact.
type Impact struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

// Outcomes is everything extracted from one narrative.
type Outcomes struct {
	Quantitative []QuantitativeOutcome `json:"quantitative"`
	Qualitative  []QualitativeOutcome  `json:"qualitative"`
	Impacts      []Impact              `json:"impacts"`
	Skipped      int                   `json:"skipped"`
}

// Empty reports whether nothing was extracted.
func (o Outcomes) Empty() bool {
	return len(o.Quantitative) == 0 && len(o.Qualitative) == 0 && len(o.Impacts) == 0
}

// A sentence ends at terminal punctuation followed by whitespace or the end
// of text, so decimals such as "4.2" stay intact.
var sentenceBoundary = regexp.MustCompile(`[.!?]+(?:\s+|$)|\n+`)

// SplitSentences splits text into trimmed, non-empty sentences.
func SplitSentences(text string) []string {
	var out []string
	for _, s := range sentenceBoundary.Split(text, -1) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ExtractOutcomes splits text into sentences and keeps those that mention an
// outcome verb or an impact noun. Sentences with metrics are quantitative,
// the rest qualitative. Sentences naming an impact are also classified as
// impacts. Unparseable metric units are skipped and counted.
func ExtractOutcomes(text string) Outcomes {
	o := Outcomes{
		Quantitative: []QuantitativeOutcome{},
		Qualitative:  []QualitativeOutcome{},
		Impacts:      []Impact{},
	}
	for _, sentence := range SplitSentences(text) {
		tokens := textmining.Tokenize(sentence)
		if !qualifies(tokens) {
			continue
		}
		category := categorize(tokens)
		metrics, skipped := extractMetrics(sentence)
		o.Skipped += skipped

		if len(metrics) > 0 {
			for i := range metrics {
				metrics[i].Category = category
			}
			o.Quantitative = append(o.Quantitative, QuantitativeOutcome{Text: sentence, Category: category, Metrics: metrics})
		} else {
			o.Qualitative = append(o.Qualitative, QualitativeOutcome{Text: sentence, Category: category})
		}
		if mentionsImpact(tokens) {
			o.Impacts = append(o.Impacts, Impact{Text: sentence, Type: ClassifyImpact(sentence)})
		}
	}
	return o
}

// Metrics flattens the metrics of every quantitative outcome.
func (o Outcomes) Metrics() []Metric {
	var out []Metric
	for _, q := range o.Quantitative {
		out = append(out, q.Metrics...)
	}
	return out
}

//Personal.AI order the ending
