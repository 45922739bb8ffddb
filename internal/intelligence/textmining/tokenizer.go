// Package textmining implements frequency-based term weighting (TF-IDF) and
// keyword ranking over case-study text. No learned parameters are involved;
// every score is a pure function of the supplied corpus.
package textmining

import (
	"regexp"
	"strings"
)

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Tokenize lowercases text and splits it on word boundaries.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

// minKeywordLength is the shortest token that may be reported as a keyword.
const minKeywordLength = 3

var stopWords = toSet([]string{
	"a", "about", "above", "after", "again", "against", "all", "also", "am", "an", "and",
	"any", "are", "as", "at", "be", "because", "been", "before", "being", "below",
	"between", "both", "but", "by", "can", "could", "did", "do", "does", "doing", "down",
	"during", "each", "few", "for", "from", "further", "had", "has", "have", "having",
	"he", "her", "here", "hers", "herself", "him", "himself", "his", "how", "however",
	"i", "if", "in", "into", "is", "it", "its", "itself", "just", "more", "most", "my",
	"myself", "no", "nor", "not", "now", "of", "off", "on", "once", "only", "or",
	"other", "our", "ours", "ourselves", "out", "over", "own", "same", "she", "should",
	"so", "some", "such", "than", "that", "the", "their", "theirs", "them", "themselves",
	"then", "there", "these", "they", "this", "those", "through", "to", "too", "under",
	"until", "up", "very", "was", "we", "were", "what", "when", "where", "which",
	"while", "who", "whom", "why", "will", "with", "within", "without", "would", "you",
	"your", "yours", "yourself", "yourselves", "study", "case", "using", "used", "via",
	"among", "across", "per", "well", "may", "might", "must", "shall", "upon",
})

// IsStopWord reports whether term is on the fixed stop-word list.
func IsStopWord(term string) bool {
	_, ok := stopWords[term]
	return ok
}

// isKeywordCandidate filters stop words and one- or two-character tokens.
func isKeywordCandidate(term string) bool {
	return len([]rune(term)) >= minKeywordLength && !IsStopWord(term)
}

func toSet(words []string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

//Personal.AI order the ending
