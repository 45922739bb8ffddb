package outcomes

import (
	"strings"

	"github.com/turtacn/Resilience-Insights/internal/intelligence/textmining"
)

// Direction is the sign of an outcome.
type Direction string

const (
	DirectionIncrease Direction = "increase"
	DirectionDecrease Direction = "decrease"
	DirectionNeutral  Direction = "neutral"
)

// Word stems. A token matches a stem when it starts with it.
var (
	positiveStems = []string{
		"increas", "improv", "strengthen", "enhanc", "grow", "grew", "rise", "rising", "rose",
		"gain", "boost", "expand", "rais", "acceler", "advanc", "elevat", "doubl", "tripl",
		"recover", "restor",
	}
	negativeStems = []string{
		"decreas", "reduc", "declin", "drop", "fall", "fell", "lower", "diminish", "shrink",
		"shrank", "cut", "weaken", "worsen", "lost", "loss", "deterior", "erod", "contract",
	}
	indicatorStems = []string{
		"result", "led", "leads", "leading", "achiev", "contribut", "enabl", "facilitat", "chang",
		"transform", "support", "demonstrat", "show", "yield", "produc",
	}
	impactStems = []string{
		"impact", "effect", "outcome", "benefit", "consequenc", "influenc", "transformation",
	}
)

// Qualitative domains, in tie-break reporting order.
const (
	CategoryHealth         = "health"
	CategorySocial         = "social"
	CategoryEconomic       = "economic"
	CategoryInfrastructure = "infrastructure"
	CategoryGovernance     = "governance"
	CategoryEnvironmental  = "environmental"
	CategoryCapacity       = "capacity"
	CategoryGeneral        = "general"
)

var categoryOrder = []string{
	CategoryHealth, CategorySocial, CategoryEconomic, CategoryInfrastructure,
	CategoryGovernance, CategoryEnvironmental, CategoryCapacity,
}

var categoryStems = map[string][]string{
	CategoryHealth:         {"health", "hospital", "clinic", "disease", "mortality", "medic", "patient", "nutrition", "vaccin", "wellbeing"},
	CategorySocial:         {"social", "cohesion", "trust", "inclusion", "equity", "gender", "famil", "network", "solidarity", "neighbo"},
	CategoryEconomic:       {"economic", "income", "livelihood", "employ", "job", "market", "business", "financ", "poverty", "saving"},
	CategoryInfrastructure: {"infrastructure", "road", "water", "sanitation", "housing", "energy", "electric", "transport", "bridge", "building"},
	CategoryGovernance:     {"governance", "government", "policy", "policies", "institution", "accountab", "transparen", "leadership", "coordinat", "council"},
	CategoryEnvironmental:  {"environment", "climate", "ecosystem", "forest", "flood", "drought", "biodivers", "emission", "conservation", "land"},
	CategoryCapacity:       {"capacity", "training", "skill", "knowledge", "education", "learning", "preparedness", "awareness", "empower", "volunteer"},
}

// Impact types, checked in this order. The first qualifier found wins.
const (
	ImpactSystemic  = "systemic"
	ImpactLongTerm  = "long-term"
	ImpactShortTerm = "short-term"
	ImpactIndirect  = "indirect"
	ImpactDirect    = "direct"
	ImpactGeneral   = "general"
)

var impactQualifiers = []struct {
	kind  string
	terms []string
}{
	{ImpactSystemic, []string{"systemic", "system-wide", "structural"}},
	{ImpactLongTerm, []string{"long-term", "long term", "sustained", "lasting", "durable", "permanent"}},
	{ImpactShortTerm, []string{"short-term", "short term", "immediate", "temporary", "initial"}},
	{ImpactIndirect, []string{"indirect", "spillover", "ripple", "knock-on"}},
	{ImpactDirect, []string{"direct"}},
}

func hasStem(token string, stems []string) bool {
	for _, s := range stems {
		if strings.HasPrefix(token, s) {
			return true
		}
	}
	return false
}

// DirectionOf resolves a word against the positive and negative lexicons.
// Unknown words are neutral.
func DirectionOf(word string) Direction {
	w := strings.ToLower(strings.TrimSpace(word))
	switch {
	case w == "":
		return DirectionNeutral
	case hasStem(w, negativeStems):
		return DirectionDecrease
	case hasStem(w, positiveStems):
		return DirectionIncrease
	}
	return DirectionNeutral
}

var comparatives = map[string]Direction{
	"more": DirectionIncrease, "higher": DirectionIncrease, "greater": DirectionIncrease,
	"larger": DirectionIncrease, "bigger": DirectionIncrease, "faster": DirectionIncrease,
	"better": DirectionIncrease,
	"less": DirectionDecrease, "fewer": DirectionDecrease, "smaller": DirectionDecrease,
	"slower": DirectionDecrease,
}

// comparativeDirection reads "N times more" style comparatives. Words outside
// the table are neutral.
func comparativeDirection(word string) Direction {
	if d, ok := comparatives[strings.ToLower(word)]; ok {
		return d
	}
	return DirectionNeutral
}

// qualifies reports whether a sentence speaks about an outcome.
func qualifies(tokens []string) bool {
	for _, t := range tokens {
		if hasStem(t, positiveStems) || hasStem(t, negativeStems) ||
			hasStem(t, indicatorStems) || hasStem(t, impactStems) {
			return true
		}
	}
	return false
}

func mentionsImpact(tokens []string) bool {
	for _, t := range tokens {
		if hasStem(t, impactStems) {
			return true
		}
	}
	return false
}

// Categorize scores text against each domain by stem overlap. No match, or a
// tie for the top score, yields CategoryGeneral.
func Categorize(text string) string {
	return categorize(textmining.Tokenize(text))
}

func categorize(tokens []string) string {
	best, bestScore, tied := CategoryGeneral, 0, false
	for _, cat := range categoryOrder {
		score := 0
		for _, t := range tokens {
			if hasStem(t, categoryStems[cat]) {
				score++
			}
		}
		switch {
		case score > bestScore:
			best, bestScore, tied = cat, score, false
		case score == bestScore && score > 0:
			tied = true
		}
	}
	if tied {
		return CategoryGeneral
	}
	return best
}

// ClassifyImpact returns the impact type named by qualifier keywords in text.
func ClassifyImpact(text string) string {
	lower := strings.ToLower(text)
	for _, q := range impactQualifiers {
		for _, term := range q.terms {
			if strings.Contains(lower, term) {
				return q.kind
			}
		}
	}
	return ImpactGeneral
}

//Personal.AI order the ending
