package vectorizer

import (
	"strconv"
	"strings"

	"github.com/turtacn/Resilience-Insights/internal/domain/casestudy"
)

// MethodVocabulary is the fixed set of methodology types recognised in
// methodology narratives, in reporting order.
var MethodVocabulary = []string{
	"qualitative",
	"quantitative",
	"mixed-methods",
	"survey",
	"interview",
	"ethnographic",
}

// methodAliases lists the substrings that signal each method.
var methodAliases = map[string][]string{
	"qualitative":   {"qualitative"},
	"quantitative":  {"quantitative"},
	"mixed-methods": {"mixed-methods", "mixed methods"},
	"survey":        {"survey"},
	"interview":     {"interview"},
	"ethnographic":  {"ethnographic", "ethnography"},
}

// DetectMethods returns the vocabulary methods whose tokens occur in text,
// in vocabulary order.
func DetectMethods(text string) []string {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)
	var out []string
	for _, m := range MethodVocabulary {
		for _, alias := range methodAliases[m] {
			if strings.Contains(lower, alias) {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

// NormalizeKeyword trims and lowercases a keyword label.
func NormalizeKeyword(kw string) string {
	return strings.ToLower(strings.TrimSpace(kw))
}

// Vectorize builds the presence vector of a record: one entry per dimension,
// keyword, detected method, country and year, each weighted 1.0.
// Identical input always yields an identical vector.
func Vectorize(r casestudy.Record) FeatureVector {
	v := make(FeatureVector, len(r.Dimensions)+len(r.Keywords)+4)
	for _, d := range r.Dimensions {
		if d = strings.TrimSpace(d); d != "" {
			v[PrefixDimension+d] = 1
		}
	}
	for _, kw := range r.Keywords {
		if kw = NormalizeKeyword(kw); kw != "" {
			v[PrefixKeyword+kw] = 1
		}
	}
	for _, m := range DetectMethods(r.Methodology) {
		v[PrefixMethod+m] = 1
	}
	if c := strings.TrimSpace(r.Country); c != "" {
		v[PrefixGeo+c] = 1
	}
	if y, ok := r.Year(); ok {
		v[PrefixYear+strconv.Itoa(y)] = 1
	}
	return v
}

// VectorizeAll vectorizes records in order.
func VectorizeAll(records []casestudy.Record) []FeatureVector {
	out := make([]FeatureVector, len(records))
	for i, r := range records {
		out[i] = Vectorize(r)
	}
	return out
}

//Personal.AI order the ending
