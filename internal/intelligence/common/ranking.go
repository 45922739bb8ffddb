// Package common holds small helpers shared by the analysis engines.
package common

import (
	"math"
	"sort"
)

// Count is a ranked label frequency. Percentage is relative to the total the
// ranking was computed against.
type Count struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Counter tallies label occurrences.
type Counter map[string]int

// Add increments name. Empty labels are ignored.
func (c Counter) Add(name string) {
	if name == "" {
		return
	}
	c[name]++
}

// AddN increments name by n.
func (c Counter) AddN(name string, n int) {
	if name == "" || n == 0 {
		return
	}
	c[name] += n
}

// Total sums all counts.
func (c Counter) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Top returns the n most frequent labels, count descending then name
// ascending. n ≤ 0 returns all. Percentages are computed against total when
// total > 0.
func (c Counter) Top(n, total int) []Count {
	out := make([]Count, 0, len(c))
	for name, cnt := range c {
		item := Count{Name: name, Count: cnt}
		if total > 0 {
			item.Percentage = Percent(float64(cnt), float64(total))
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Percent returns part/whole·100 rounded to two decimals, 0 for an empty whole.
func Percent(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return Round(part/whole*100, 2)
}

// Round rounds v to the given number of decimals.
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

//Personal.AI order the ending
