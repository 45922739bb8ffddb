// Package outcomes mines quantitative metrics and qualitative outcome
// statements from case-study narratives, standardises them across a corpus
// and tracks improvement trends over time.
package outcomes

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/turtacn/Resilience-Insights/internal/intelligence/common"
	"github.com/turtacn/Resilience-Insights/pkg/errors"
)

// MetricType is the pattern family a metric was extracted by.
type MetricType string

const (
	MetricPercentage MetricType = "percentage"
	MetricChange     MetricType = "change"
	MetricMultiplier MetricType = "multiplier"
	MetricScore      MetricType = "score"
)

// MetricTypes lists every family in reporting order.
var MetricTypes = []MetricType{MetricPercentage, MetricChange, MetricMultiplier, MetricScore}

// Metric is one number mined from text.
//
// Value carries the headline figure: the percentage, the endline of a change,
// the multiplier, or a score as a percentage of its scale. Change metrics
// also fill Baseline, Endline, Change and PercentChange.
type Metric struct {
	Type          MetricType `json:"type"`
	Text          string     `json:"text"`
	Value         float64    `json:"value"`
	Baseline      float64    `json:"baseline,omitempty"`
	Endline       float64    `json:"endline,omitempty"`
	Change        float64    `json:"change,omitempty"`
	PercentChange float64    `json:"percentChange,omitempty"`
	Direction     Direction  `json:"direction"`
	Category      string     `json:"category,omitempty"`

	offset int
}

const number = `(\d+(?:\.\d+)?)`

var (
	// "declined by 4.2%", "dropped sharply by 30%", "rose by 12 percent"
	percentByPattern = regexp.MustCompile(`(?i)\b((?:[a-z]+\s+){0,2}[a-z]+)\s+by\s+(?:about\s+|approximately\s+|nearly\s+|almost\s+|over\s+)?` + number + `\s*(?:%|percent\b)`)
	// "a 30% increase", "a 30% sharp increase", "12 percent reduction"
	percentLeadPattern = regexp.MustCompile(`(?i)` + number + `\s*(?:%|percent\b)((?:\s+[a-z]+){1,3})`)
	// "reduced from 100 to 50", "rose from 12% to 30%"
	changePattern = regexp.MustCompile(`(?i)\b([a-z]+)\s+from\s+` + number + `\s*(?:%|percent\b)?\s+to\s+` + number + `\s*(?:%|percent\b)?`)
	// "3-fold", "2.5x", "4 times higher"
	multiplierPattern = regexp.MustCompile(`(?i)(?:\b([a-z]+)\s+(?:by\s+)?(?:an?\s+)?)?` + number + `\s*(-?fold|x|times)\b(?:\s+([a-z]+))?`)
	// "score of 7/10", "scores of 3.5 / 5"
	scorePattern = regexp.MustCompile(`(?i)\bscores?\s+of\s+` + number + `\s*/\s*` + number)

	wordPattern = regexp.MustCompile(`[A-Za-z]+`)
)

// Words after a leading percentage that end the phrase describing it, as in
// "45% of households".
var leadStops = map[string]bool{
	"of": true, "in": true, "to": true, "for": true, "from": true,
	"among": true, "by": true, "with": true, "at": true, "on": true,
}

// firstDirection finds the first word of phrase that carries a direction.
// start and end are byte offsets into phrase; ok is false when no word does.
// Scanning stops at a word in stops.
func firstDirection(phrase string, stops map[string]bool) (dir Direction, start, end int, ok bool) {
	for _, loc := range wordPattern.FindAllStringIndex(phrase, -1) {
		w := phrase[loc[0]:loc[1]]
		if stops[strings.ToLower(w)] {
			break
		}
		if d := DirectionOf(w); d != DirectionNeutral {
			return d, loc[0], loc[1], true
		}
	}
	return DirectionNeutral, 0, 0, false
}

type span struct{ start, end int }

func (s span) overlaps(o span) bool { return s.start < o.end && o.start < s.end }

// ExtractMetrics returns every metric found in text, in text order. Units
// that cannot be parsed are skipped.
func ExtractMetrics(text string) []Metric {
	ms, _ := extractMetrics(text)
	return ms
}

// extractMetrics also reports how many matched units were skipped because
// their numbers could not be used.
func extractMetrics(text string) ([]Metric, int) {
	if strings.TrimSpace(text) == "" {
		return []Metric{}, 0
	}
	var (
		out     []Metric
		taken   []span
		skipped int
	)
	claim := func(s span) bool {
		for _, t := range taken {
			if t.overlaps(s) {
				return false
			}
		}
		taken = append(taken, s)
		return true
	}
	keep := func(m Metric, err error) {
		if err != nil {
			skipped++
			return
		}
		out = append(out, m)
	}

	// Change and score spans contain numbers the looser families would
	// otherwise pick up, so they claim their spans first.
	for _, loc := range changePattern.FindAllStringSubmatchIndex(text, -1) {
		if claim(span{loc[0], loc[1]}) {
			keep(changeMetric(text, loc))
		}
	}
	for _, loc := range scorePattern.FindAllStringSubmatchIndex(text, -1) {
		if claim(span{loc[0], loc[1]}) {
			keep(scoreMetric(text, loc))
		}
	}
	for _, loc := range percentByPattern.FindAllStringSubmatchIndex(text, -1) {
		if claim(span{loc[4], loc[1]}) {
			keep(percentByMetric(text, loc))
		}
	}
	for _, loc := range percentLeadPattern.FindAllStringSubmatchIndex(text, -1) {
		dir, _, end, ok := firstDirection(group(text, loc, 2), leadStops)
		if !ok {
			continue
		}
		if claim(span{loc[2], loc[3]}) {
			keep(percentMetric(text, loc[0], loc[4]+end, group(text, loc, 1), dir))
		}
	}
	for _, loc := range multiplierPattern.FindAllStringSubmatchIndex(text, -1) {
		m, ok, err := multiplierMetric(text, loc)
		if !ok {
			continue
		}
		if claim(span{loc[4], loc[5]}) {
			keep(m, err)
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].offset < out[j].offset })
	if out == nil {
		out = []Metric{}
	}
	return out, skipped
}

func group(text string, loc []int, i int) string {
	if loc[2*i] < 0 {
		return ""
	}
	return text[loc[2*i]:loc[2*i+1]]
}

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, errors.ExtractionError("unparseable metric value").WithDetail("value=" + s)
	}
	return v, nil
}

// percentByMetric handles "<phrase> by N%". The phrase holds up to three
// words; the first one with a direction starts the metric's text. Without one
// the text starts at the word before "by".
func percentByMetric(text string, loc []int) (Metric, error) {
	phrase := group(text, loc, 1)
	dir, start, _, ok := firstDirection(phrase, nil)
	if !ok {
		words := wordPattern.FindAllStringIndex(phrase, -1)
		start = words[len(words)-1][0]
	}
	return percentMetric(text, loc[2]+start, loc[1], group(text, loc, 2), dir)
}

func percentMetric(text string, start, end int, value string, dir Direction) (Metric, error) {
	v, err := parseNumber(value)
	if err != nil {
		return Metric{}, err
	}
	return Metric{
		Type:      MetricPercentage,
		Text:      strings.TrimSpace(text[start:end]),
		Value:     v,
		Direction: dir,
		offset:    start,
	}, nil
}

func changeMetric(text string, loc []int) (Metric, error) {
	from, err := parseNumber(group(text, loc, 2))
	if err != nil {
		return Metric{}, err
	}
	to, err := parseNumber(group(text, loc, 3))
	if err != nil {
		return Metric{}, err
	}
	m := Metric{
		Type:      MetricChange,
		Text:      strings.TrimSpace(text[loc[0]:loc[1]]),
		Value:     to,
		Baseline:  from,
		Endline:   to,
		Change:    common.Round(to-from, 4),
		Direction: DirectionOf(group(text, loc, 1)),
		offset:    loc[0],
	}
	if from != 0 {
		m.PercentChange = common.Round((to-from)/from*100, 2)
	}
	if m.Direction == DirectionNeutral {
		switch {
		case to > from:
			m.Direction = DirectionIncrease
		case to < from:
			m.Direction = DirectionDecrease
		}
	}
	return m, nil
}

// multiplierMetric builds a multiplier metric. "N times" counts only next to
// a direction word or a comparative, so "met 3 times a week" is not a
// multiplier. The words around the figure join the text only when they
// give it a direction.
func multiplierMetric(text string, loc []int) (Metric, bool, error) {
	trailing := group(text, loc, 4)
	trailDir := DirectionOf(trailing)
	if trailDir == DirectionNeutral {
		trailDir = comparativeDirection(trailing)
	}
	dir := DirectionOf(group(text, loc, 1))
	if strings.EqualFold(group(text, loc, 3), "times") && trailDir == DirectionNeutral && dir == DirectionNeutral {
		return Metric{}, false, nil
	}

	start, end := loc[4], loc[7]
	if dir != DirectionNeutral {
		start = loc[0]
	} else {
		dir = trailDir
	}
	if trailDir != DirectionNeutral {
		end = loc[9]
	}

	v, err := parseNumber(group(text, loc, 2))
	if err != nil {
		return Metric{}, true, err
	}
	return Metric{
		Type:      MetricMultiplier,
		Text:      strings.TrimSpace(text[start:end]),
		Value:     v,
		Direction: dir,
		offset:    start,
	}, true, nil
}

func scoreMetric(text string, loc []int) (Metric, error) {
	got, err := parseNumber(group(text, loc, 1))
	if err != nil {
		return Metric{}, err
	}
	scale, err := parseNumber(group(text, loc, 2))
	if err != nil {
		return Metric{}, err
	}
	if scale == 0 {
		return Metric{}, errors.ExtractionError("score scale is zero").WithDetail("text=" + text[loc[0]:loc[1]])
	}
	return Metric{
		Type:      MetricScore,
		Text:      strings.TrimSpace(text[loc[0]:loc[1]]),
		Value:     common.Round(got/scale*100, 2),
		Baseline:  got,
		Endline:   scale,
		Direction: DirectionNeutral,
		offset:    loc[0],
	}, nil
}

//Personal.AI order the ending
