// Package casestudy holds the case-study record model shared by the analysis
// engine, the content-store adapters and the delivery layers.
package casestudy

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/turtacn/Resilience-Insights/pkg/errors"
)

// CanonicalDimensions is the fixed set of resilience dimensions that every
// corpus is expected to cover. Dimensions missing from a corpus are reported
// as research gaps.
var CanonicalDimensions = []string{
	"Healthcare Systems",
	"Governance",
	"Economic Resilience",
	"Social Cohesion",
	"Infrastructure",
	"Environmental Sustainability",
	"Community Capacity",
	"Education Systems",
}

// Record is one case study. A Record is never mutated once a run starts.
// Text fields are always present but may be empty.
type Record struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Abstract    string     `json:"abstract"`
	Methodology string     `json:"methodology"`
	Outcomes    string     `json:"outcomes"`
	Dimensions  []string   `json:"dimensions"`
	Keywords    []string   `json:"keywords"`
	Country     string     `json:"country,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
}

// Year returns the calendar year of the record date.
func (r Record) Year() (int, bool) {
	if r.Date == nil || r.Date.IsZero() {
		return 0, false
	}
	return r.Date.Year(), true
}

// HasDate reports whether the record carries a usable date.
func (r Record) HasDate() bool {
	_, ok := r.Year()
	return ok
}

// Text concatenates the free-text fields used for term weighting.
func (r Record) Text() string {
	parts := make([]string, 0, 5)
	for _, s := range []string{r.Title, r.Description, r.Abstract, r.Methodology, r.Outcomes} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// OutcomeText is the text outcome extraction runs over: the outcome narrative
// when present, otherwise description and abstract.
func (r Record) OutcomeText() string {
	if strings.TrimSpace(r.Outcomes) != "" {
		return r.Outcomes
	}
	return strings.TrimSpace(r.Description + " " + r.Abstract)
}

// DimensionSet returns the dimension labels as a set.
func (r Record) DimensionSet() map[string]struct{} {
	set := make(map[string]struct{}, len(r.Dimensions))
	for _, d := range r.Dimensions {
		if d != "" {
			set[d] = struct{}{}
		}
	}
	return set
}

// Validate checks the minimal shape of a record.
func (r Record) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.InputError("case study id must not be empty")
	}
	return nil
}

// ValidateCorpus rejects an empty corpus and duplicate ids.
func ValidateCorpus(records []Record) error {
	if len(records) == 0 {
		return errors.InputError("no case studies available for analysis")
	}
	seen := make(map[string]struct{}, len(records))
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return errors.Wrap(err, errors.CodeUnknown, fmt.Sprintf("record %d is invalid", i))
		}
		if _, dup := seen[r.ID]; dup {
			return errors.InputError("duplicate case study id").WithDetail("id=" + r.ID)
		}
		seen[r.ID] = struct{}{}
	}
	return nil
}

// Limit returns at most max records, preserving order. max ≤ 0 means no cap.
func Limit(records []Record, max int) []Record {
	if max <= 0 || len(records) <= max {
		return records
	}
	return records[:max]
}

// FindByID returns the record with id.
func FindByID(records []Record, id string) (Record, bool) {
	for _, r := range records {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}

// Years returns the sorted distinct years present in records.
func Years(records []Record) []int {
	set := make(map[int]struct{})
	for _, r := range records {
		if y, ok := r.Year(); ok {
			set[y] = struct{}{}
		}
	}
	out := make([]int, 0, len(set))
	for y := range set {
		out = append(out, y)
	}
	sort.Ints(out)
	return out
}

//Personal.AI order the ending
