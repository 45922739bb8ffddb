// Package patterns mines temporal, geographic, methodological and
// dimensional patterns from a case-study corpus and flags emerging themes.
// Every detector is a pure function of the records it is given.
package patterns

import (
	"github.com/turtacn/Resilience-Insights/internal/domain/casestudy"
)

// Result bundles every pattern family for one corpus.
type Result struct {
	Temporal       TemporalPattern       `json:"temporal"`
	Geographic     GeographicPattern     `json:"geographic"`
	Methodological MethodologicalPattern `json:"methodological"`
	Dimensional    DimensionalPattern    `json:"dimensional"`
	EmergingThemes []EmergingTheme       `json:"emergingThemes"`
}

// Detector runs the pattern families against a region table.
type Detector struct {
	regions RegionTable
}

// NewDetector returns a Detector. A nil table selects DefaultRegions.
func NewDetector(regions RegionTable) *Detector {
	if regions == nil {
		regions = DefaultRegions
	}
	return &Detector{regions: regions}
}

// Detect runs every pattern family. An empty corpus yields zero-valued
// patterns, never an error.
func (d *Detector) Detect(records []casestudy.Record) Result {
	return Result{
		Temporal:       Temporal(records),
		Geographic:     d.regions.Geographic(records),
		Methodological: Methodological(records),
		Dimensional:    Dimensional(records),
		EmergingThemes: EmergingThemes(records),
	}
}

//Personal.AI order the ending
