package insights

import (
	"fmt"
	"sort"
	"strings"

	"github.com/turtacn/Resilience-Insights/internal/domain/casestudy"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/common"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/outcomes"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/vectorizer"
)

const (
	summaryThemeCount = 5

	broadDiversity  = 10
	narrowDiversity = 3

	manyClusters = 5
	fewClusters  = 2

	minDistinctMethods = 3
)

// buildSummary composes the executive summary from whatever stages finished.
func buildSummary(run *analysisRun) Summary {
	s := Summary{
		TotalCaseStudies: len(run.records),
		TopThemes:        []string{},
		KeyImplications:  []string{},
	}
	if run.themes != nil {
		for i, t := range run.themes.analysis.TopThemes {
			if i == summaryThemeCount {
				break
			}
			s.TopThemes = append(s.TopThemes, t.Term)
		}
	}
	if run.outcome != nil {
		s.AverageImprovement = run.outcome.Aggregate.AverageImprovement
	}
	if run.cluster != nil {
		s.ClusterCount = nonEmptyClusters(run)
	}
	if run.pattern != nil {
		s.EmergingThemeCount = len(run.pattern.EmergingThemes)
	}
	s.KeyImplications = implications(run)
	return s
}

func nonEmptyClusters(run *analysisRun) int {
	n := 0
	for _, c := range run.cluster.Clusters {
		if c.Size > 0 {
			n++
		}
	}
	return n
}

// implications derives qualitative statements from the outcome trend,
// geographic diversity and cluster count.
func implications(run *analysisRun) []string {
	out := []string{}
	if run.outcome != nil {
		switch run.outcome.Trends.Trend {
		case outcomes.TrendImproving:
			out = append(out, fmt.Sprintf("Reported improvements are rising over time (%+.1f%% between the earliest and latest years).",
				run.outcome.Trends.ChangePercent))
		case outcomes.TrendDeclining:
			out = append(out, fmt.Sprintf("Reported improvements are falling over time (%+.1f%% between the earliest and latest years); recent interventions warrant review.",
				run.outcome.Trends.ChangePercent))
		case outcomes.TrendStable:
			out = append(out, "Reported improvements are stable over time.")
		}
	}
	if run.pattern != nil {
		d := run.pattern.Geographic.Diversity
		switch {
		case d >= broadDiversity:
			out = append(out, fmt.Sprintf("Evidence spans %d countries, supporting transfer of findings across contexts.", d))
		case d > 0 && d < narrowDiversity:
			out = append(out, fmt.Sprintf("Evidence is concentrated in %d %s; findings may not generalise.", d, plural(d, "country", "countries")))
		}
	}
	if run.cluster != nil {
		n := nonEmptyClusters(run)
		switch {
		case n >= manyClusters:
			out = append(out, fmt.Sprintf("Case studies fall into %d distinct approaches, indicating varied resilience strategies.", n))
		case n > 0 && n <= fewClusters:
			out = append(out, fmt.Sprintf("Case studies converge on %d %s.", n, plural(n, "approach", "approaches")))
		}
	}
	return out
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// ─────────────────────────────────────────────────────────────────────────────
// Recommendations
// ─────────────────────────────────────────────────────────────────────────────

// buildRecommendations emits research-gap, emerging-focus, best-practice and
// methodology recommendations, high priority first.
func buildRecommendations(run *analysisRun) []Recommendation {
	recs := []Recommendation{}

	if freq, ok := dimensionFrequency(run); ok {
		present := make(map[string]struct{}, len(freq))
		for _, c := range freq {
			present[c.Name] = struct{}{}
		}
		var missing []string
		for _, d := range casestudy.CanonicalDimensions {
			if _, ok := present[d]; !ok {
				missing = append(missing, d)
			}
		}
		if len(missing) > 0 {
			recs = append(recs, Recommendation{
				Type:        RecommendResearchGap,
				Priority:    PriorityHigh,
				Title:       "Address under-researched resilience dimensions",
				Description: fmt.Sprintf("%d canonical %s no case study coverage.", len(missing), plural(len(missing), "dimension has", "dimensions have")),
				Items:       missing,
			})
		}
	}

	if run.pattern != nil && len(run.pattern.EmergingThemes) > 0 {
		items := make([]string, 0, len(run.pattern.EmergingThemes))
		for _, t := range run.pattern.EmergingThemes {
			items = append(items, fmt.Sprintf("%s (%s, growth %s)", t.Theme, t.Kind, t.Growth))
		}
		recs = append(recs, Recommendation{
			Type:        RecommendEmergingFocus,
			Priority:    PriorityMedium,
			Title:       "Prioritise emerging themes",
			Description: "These themes appear markedly more often in recent case studies.",
			Items:       items,
		})
	}

	if run.outcome != nil && len(run.outcome.Aggregate.TopPerformers) > 0 {
		items := make([]string, 0, len(run.outcome.Aggregate.TopPerformers))
		for _, p := range run.outcome.Aggregate.TopPerformers {
			name := p.Title
			if name == "" {
				name = p.RecordID
			}
			items = append(items, fmt.Sprintf("%s: %.1f%% improvement", name, p.Value))
		}
		recs = append(recs, Recommendation{
			Type:        RecommendBestPractice,
			Priority:    PriorityMedium,
			Title:       "Replicate the strongest interventions",
			Description: "These case studies report the largest measured improvements.",
			Items:       items,
		})
	}

	if run.pattern != nil && run.pattern.Methodological.DistinctMethods < minDistinctMethods {
		used := make(map[string]struct{})
		for _, m := range run.pattern.Methodological.Methods {
			used[m.Name] = struct{}{}
		}
		var unused []string
		for _, m := range vectorizer.MethodVocabulary {
			if _, ok := used[m]; !ok {
				unused = append(unused, m)
			}
		}
		recs = append(recs, Recommendation{
			Type:     RecommendMethodology,
			Priority: PriorityLow,
			Title:    "Diversify research methods",
			Description: fmt.Sprintf("Only %d distinct %s detected; consider %s.",
				run.pattern.Methodological.DistinctMethods,
				plural(run.pattern.Methodological.DistinctMethods, "method was", "methods were"),
				strings.Join(unused, ", ")),
			Items: unused,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Priority.rank() < recs[j].Priority.rank() })
	return recs
}

// dimensionFrequency prefers the pattern stage table and falls back to the
// theme stage.
func dimensionFrequency(run *analysisRun) ([]common.Count, bool) {
	if run.pattern != nil {
		return run.pattern.Dimensional.Frequency, true
	}
	if run.themes != nil {
		return run.themes.analysis.DimensionFrequency, true
	}
	return nil, false
}

//Personal.AI order the ending
