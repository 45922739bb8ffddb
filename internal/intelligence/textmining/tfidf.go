package textmining

import (
	"math"
	"sort"
)

// KeywordScore is a term with its TF-IDF weight.
type KeywordScore struct {
	Term  string  `json:"term"`
	Score float64 `json:"score"`
}

// ThemeScore is a corpus-level term ranking entry.
type ThemeScore struct {
	Term          string  `json:"term"`
	Score         float64 `json:"score"`
	DocumentCount int     `json:"documentCount"`
}

// TermFrequency counts token occurrences in doc normalised by the token count.
func TermFrequency(doc string) map[string]float64 {
	return termFrequency(Tokenize(doc))
}

func termFrequency(tokens []string) map[string]float64 {
	tf := make(map[string]float64)
	if len(tokens) == 0 {
		return tf
	}
	for _, tok := range tokens {
		tf[tok]++
	}
	n := float64(len(tokens))
	for term := range tf {
		tf[term] /= n
	}
	return tf
}

// DocumentFrequency counts, for every term, how many documents contain it.
func DocumentFrequency(corpus []string) map[string]int {
	return NewCorpus(corpus).df
}

// ─────────────────────────────────────────────────────────────────────────────
// Corpus
// ─────────────────────────────────────────────────────────────────────────────

// Corpus holds tokenised documents and their document frequencies so that
// repeated TF-IDF queries do not recount the corpus. A Corpus is read-only
// after construction and safe for concurrent use.
type Corpus struct {
	docs [][]string
	df   map[string]int
}

// NewCorpus tokenises docs and computes document frequencies.
func NewCorpus(docs []string) *Corpus {
	c := &Corpus{
		docs: make([][]string, len(docs)),
		df:   make(map[string]int),
	}
	for i, d := range docs {
		tokens := Tokenize(d)
		c.docs[i] = tokens
		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			c.df[tok]++
		}
	}
	return c
}

// Size is the number of documents N.
func (c *Corpus) Size() int { return len(c.docs) }

// DocumentFrequency returns df(term).
func (c *Corpus) DocumentFrequency(term string) int { return c.df[term] }

// IDF returns ln(N / df(term)). Terms absent from the corpus score 0.
func (c *Corpus) IDF(term string) float64 {
	df := c.df[term]
	if df == 0 || len(c.docs) == 0 {
		return 0
	}
	return math.Log(float64(len(c.docs)) / float64(df))
}

// TFIDF weights every term of doc against the corpus.
func (c *Corpus) TFIDF(doc string) map[string]float64 {
	return c.weigh(Tokenize(doc))
}

func (c *Corpus) weigh(tokens []string) map[string]float64 {
	tf := termFrequency(tokens)
	for term, f := range tf {
		tf[term] = f * c.IDF(term)
	}
	return tf
}

// ExtractKeywords returns the topN keyword candidates of doc ranked by TF-IDF.
// topN ≤ 0 returns every candidate.
func (c *Corpus) ExtractKeywords(doc string, topN int) []KeywordScore {
	return rankKeywords(c.TFIDF(doc), topN)
}

// DocumentKeywords is ExtractKeywords for the i-th corpus document.
func (c *Corpus) DocumentKeywords(i, topN int) []KeywordScore {
	if i < 0 || i >= len(c.docs) {
		return nil
	}
	return rankKeywords(c.weigh(c.docs[i]), topN)
}

// CorpusKeywords ranks keyword candidates by their TF-IDF summed over every
// document.
func (c *Corpus) CorpusKeywords(topN int) []ThemeScore {
	sum := make(map[string]float64)
	for _, tokens := range c.docs {
		for term, w := range c.weigh(tokens) {
			if isKeywordCandidate(term) {
				sum[term] += w
			}
		}
	}
	out := make([]ThemeScore, 0, len(sum))
	for term, s := range sum {
		out = append(out, ThemeScore{Term: term, Score: s, DocumentCount: c.df[term]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Term < out[j].Term
	})
	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Stateless helpers
// ─────────────────────────────────────────────────────────────────────────────

// TFIDF computes tf(term)·ln(N/df(term)) for every term of doc.
func TFIDF(doc string, corpus []string) map[string]float64 {
	return NewCorpus(corpus).TFIDF(doc)
}

// ExtractKeywords ranks the keyword candidates of doc against corpus.
func ExtractKeywords(doc string, corpus []string, topN int) []KeywordScore {
	return NewCorpus(corpus).ExtractKeywords(doc, topN)
}

func rankKeywords(weights map[string]float64, topN int) []KeywordScore {
	out := make([]KeywordScore, 0, len(weights))
	for term, w := range weights {
		if !isKeywordCandidate(term) {
			continue
		}
		out = append(out, KeywordScore{Term: term, Score: w})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Term < out[j].Term
	})
	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

//Personal.AI order the ending
