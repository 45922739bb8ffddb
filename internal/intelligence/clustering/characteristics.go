package clustering

import (
	"fmt"

	"github.com/turtacn/Resilience-Insights/internal/domain/casestudy"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/common"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/vectorizer"
)

const (
	topFacets   = 3
	topKeywords = 5
)

// YearRange is the span of record years inside a cluster.
type YearRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Characteristics summarises the members of one cluster. Percentages are
// relative to the cluster size.
type Characteristics struct {
	TopDimensions []common.Count `json:"topDimensions"`
	TopMethods    []common.Count `json:"topMethodologies"`
	TopCountries  []common.Count `json:"topCountries"`
	TopKeywords   []common.Count `json:"topKeywords"`
	YearRange     *YearRange     `json:"yearRange,omitempty"`
}

// Characterize computes the top-3 dimensions, methods and countries, the
// top-5 keywords and the year range of members.
func Characterize(members []casestudy.Record) Characteristics {
	dims, methods, countries, keywords := common.Counter{}, common.Counter{}, common.Counter{}, common.Counter{}
	var yr *YearRange

	for _, r := range members {
		for d := range r.DimensionSet() {
			dims.Add(d)
		}
		for _, m := range vectorizer.DetectMethods(r.Methodology) {
			methods.Add(m)
		}
		countries.Add(r.Country)
		seen := make(map[string]struct{}, len(r.Keywords))
		for _, kw := range r.Keywords {
			kw = vectorizer.NormalizeKeyword(kw)
			if _, dup := seen[kw]; dup {
				continue
			}
			seen[kw] = struct{}{}
			keywords.Add(kw)
		}
		if y, ok := r.Year(); ok {
			if yr == nil {
				yr = &YearRange{Min: y, Max: y}
			} else {
				if y < yr.Min {
					yr.Min = y
				}
				if y > yr.Max {
					yr.Max = y
				}
			}
		}
	}

	size := len(members)
	return Characteristics{
		TopDimensions: dims.Top(topFacets, size),
		TopMethods:    methods.Top(topFacets, size),
		TopCountries:  countries.Top(topFacets, size),
		TopKeywords:   keywords.Top(topKeywords, size),
		YearRange:     yr,
	}
}

// label names a cluster after its leading dimension and keyword.
func (c Characteristics) label(id int) string {
	switch {
	case len(c.TopDimensions) > 0 && len(c.TopKeywords) > 0:
		return fmt.Sprintf("%s / %s", c.TopDimensions[0].Name, c.TopKeywords[0].Name)
	case len(c.TopDimensions) > 0:
		return c.TopDimensions[0].Name
	case len(c.TopKeywords) > 0:
		return c.TopKeywords[0].Name
	}
	return fmt.Sprintf("Cluster %d", id+1)
}

//Personal.AI order the ending
