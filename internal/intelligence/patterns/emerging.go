package patterns

import (
	"sort"
	"strconv"

	"github.com/turtacn/Resilience-Insights/internal/domain/casestudy"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/common"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/vectorizer"
	"github.com/turtacn/Resilience-Insights/pkg/errors"
)

const (
	minRecentCount = 3

	ThemeKeyword   = "keyword"
	ThemeDimension = "dimension"
)

// Growth is the recent-over-early frequency ratio of a theme. A theme absent
// from the early window has no finite ratio and is marked New.
type Growth struct {
	Factor float64
	New    bool
}

// MarshalJSON renders the factor as a number, or "new".
func (g Growth) MarshalJSON() ([]byte, error) {
	if g.New {
		return []byte(`"new"`), nil
	}
	return strconv.AppendFloat(nil, g.Factor, 'f', -1, 64), nil
}

// UnmarshalJSON accepts the forms written by MarshalJSON.
func (g *Growth) UnmarshalJSON(data []byte) error {
	if string(data) == `"new"` {
		*g = Growth{New: true}
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "invalid growth factor")
	}
	*g = Growth{Factor: f}
	return nil
}

func (g Growth) String() string {
	if g.New {
		return "new"
	}
	return strconv.FormatFloat(g.Factor, 'f', 2, 64) + "x"
}

// EmergingTheme is a keyword or dimension that is markedly more frequent in
// the recent half of the dated corpus.
type EmergingTheme struct {
	Theme           string  `json:"theme"`
	Kind            string  `json:"kind"`
	EarlyCount      int     `json:"earlyCount"`
	RecentCount     int     `json:"recentCount"`
	EarlyFrequency  float64 `json:"earlyFrequency"`
	RecentFrequency float64 `json:"recentFrequency"`
	Growth          Growth  `json:"growth"`
}

// EmergingThemes orders dated records chronologically and splits them into an
// early and a recent half (the recent half takes the odd record). A theme
// emerges when its recent frequency exceeds 1.5× its early frequency and it
// appears in at least three recent records. Frequencies are normalised by
// half size. Results are ranked by recent count, then theme.
func EmergingThemes(records []casestudy.Record) []EmergingTheme {
	dated := make([]casestudy.Record, 0, len(records))
	for _, r := range records {
		if r.HasDate() {
			dated = append(dated, r)
		}
	}
	out := []EmergingTheme{}
	if len(dated) < 2 {
		return out
	}
	sort.SliceStable(dated, func(i, j int) bool { return dated[i].Date.Before(*dated[j].Date) })

	half := len(dated) / 2
	early, recent := dated[:half], dated[half:]

	for _, kind := range []string{ThemeKeyword, ThemeDimension} {
		ec, rc := themeCounts(early, kind), themeCounts(recent, kind)
		for theme, n := range rc {
			if n < minRecentCount {
				continue
			}
			ef := float64(ec[theme]) / float64(len(early))
			rf := float64(n) / float64(len(recent))
			if rf <= emergingRatio*ef {
				continue
			}
			t := EmergingTheme{
				Theme:           theme,
				Kind:            kind,
				EarlyCount:      ec[theme],
				RecentCount:     n,
				EarlyFrequency:  common.Round(ef, 4),
				RecentFrequency: common.Round(rf, 4),
			}
			if ec[theme] == 0 {
				t.Growth = Growth{New: true}
			} else {
				t.Growth = Growth{Factor: common.Round(rf/ef, 2)}
			}
			out = append(out, t)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].RecentCount != out[j].RecentCount {
			return out[i].RecentCount > out[j].RecentCount
		}
		if out[i].Theme != out[j].Theme {
			return out[i].Theme < out[j].Theme
		}
		return out[i].Kind < out[j].Kind
	})
	return out
}

// themeCounts counts, per theme, the records mentioning it at least once.
func themeCounts(records []casestudy.Record, kind string) common.Counter {
	c := common.Counter{}
	for _, r := range records {
		if kind == ThemeDimension {
			for d := range r.DimensionSet() {
				c.Add(d)
			}
			continue
		}
		seen := map[string]struct{}{}
		for _, kw := range r.Keywords {
			kw = vectorizer.NormalizeKeyword(kw)
			if _, dup := seen[kw]; dup {
				continue
			}
			seen[kw] = struct{}{}
			c.Add(kw)
		}
	}
	return c
}

//Personal.AI order the ending
