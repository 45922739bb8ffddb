package patterns

import (
	"sort"
	"strings"

	"github.com/turtacn/Resilience-Insights/internal/domain/casestudy"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/common"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/vectorizer"
)

const combinationSeparator = "+"

// MethodologicalPattern ranks research methods and their combinations.
type MethodologicalPattern struct {
	Methods            []common.Count            `json:"methods"`
	Combinations       []common.Count            `json:"combinations"`
	MethodsByDimension map[string][]common.Count `json:"methodsByDimension"`
	DistinctMethods    int                       `json:"distinctMethods"`
	StudiesWithMethods int                       `json:"studiesWithMethods"`
}

// CombinationKey joins methods, sorted, with "+". The key is stable for any
// input order.
func CombinationKey(methods []string) string {
	sorted := append([]string(nil), methods...)
	sort.Strings(sorted)
	return strings.Join(sorted, combinationSeparator)
}

// Methodological detects methods in every methodology narrative, ranks the
// per-record combinations by frequency and tabulates methods per dimension.
// Records without a detected method are left out of every table.
func Methodological(records []casestudy.Record) MethodologicalPattern {
	methods, combos := common.Counter{}, common.Counter{}
	byDim := map[string]common.Counter{}
	withMethods := 0

	for _, r := range records {
		found := vectorizer.DetectMethods(r.Methodology)
		if len(found) == 0 {
			continue
		}
		withMethods++
		combos.Add(CombinationKey(found))
		for _, m := range found {
			methods.Add(m)
		}
		for d := range r.DimensionSet() {
			if byDim[d] == nil {
				byDim[d] = common.Counter{}
			}
			for _, m := range found {
				byDim[d].Add(m)
			}
		}
	}

	mp := MethodologicalPattern{
		Methods:            methods.Top(0, withMethods),
		Combinations:       combos.Top(0, withMethods),
		MethodsByDimension: make(map[string][]common.Count, len(byDim)),
		DistinctMethods:    len(methods),
		StudiesWithMethods: withMethods,
	}
	for d, c := range byDim {
		mp.MethodsByDimension[d] = c.Top(0, c.Total())
	}
	return mp
}

//Personal.AI order the ending
