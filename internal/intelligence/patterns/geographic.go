package patterns

import (
	"strings"

	"github.com/turtacn/Resilience-Insights/internal/domain/casestudy"
	"github.com/turtacn/Resilience-Insights/internal/intelligence/common"
)

// RegionOther collects countries missing from the region table.
const RegionOther = "Other"

// RegionTable maps a region name to the countries it rolls up.
type RegionTable map[string][]string

// DefaultRegions is the fixed region rollup used for geographic patterns.
var DefaultRegions = RegionTable{
	"Sub-Saharan Africa": {
		"Kenya", "Nigeria", "South Africa", "Ethiopia", "Ghana", "Uganda", "Tanzania",
		"Rwanda", "Senegal", "Mozambique", "Zimbabwe", "Zambia", "Malawi", "Sierra Leone",
		"Liberia", "Somalia", "Sudan", "South Sudan", "Mali", "Niger", "Burkina Faso",
		"Cameroon", "Democratic Republic of the Congo",
	},
	"Middle East & North Africa": {
		"Egypt", "Morocco", "Tunisia", "Algeria", "Libya", "Jordan", "Lebanon", "Syria",
		"Iraq", "Iran", "Yemen", "Saudi Arabia", "Israel", "Palestine", "Turkey",
	},
	"South Asia": {
		"India", "Pakistan", "Bangladesh", "Nepal", "Sri Lanka", "Afghanistan", "Bhutan", "Maldives",
	},
	"East Asia & Pacific": {
		"China", "Japan", "South Korea", "Indonesia", "Philippines", "Vietnam", "Thailand",
		"Malaysia", "Myanmar", "Cambodia", "Laos", "Mongolia", "Timor-Leste", "Fiji",
		"Papua New Guinea", "Vanuatu", "Samoa", "Tonga",
	},
	"Europe & Central Asia": {
		"United Kingdom", "Germany", "France", "Italy", "Spain", "Netherlands", "Sweden",
		"Norway", "Denmark", "Poland", "Greece", "Portugal", "Ireland", "Ukraine",
		"Kazakhstan", "Kyrgyzstan", "Tajikistan", "Uzbekistan", "Georgia", "Armenia",
	},
	"Latin America & Caribbean": {
		"Brazil", "Mexico", "Colombia", "Peru", "Chile", "Argentina", "Ecuador", "Bolivia",
		"Guatemala", "Honduras", "Haiti", "Cuba", "Dominican Republic", "Jamaica",
		"Nicaragua", "El Salvador", "Venezuela", "Puerto Rico",
	},
	"North America": {"United States", "Canada"},
	"Oceania":       {"Australia", "New Zealand"},
}

// Region returns the region of country, or RegionOther. Matching ignores case.
func (t RegionTable) Region(country string) string {
	c := strings.TrimSpace(country)
	for region, countries := range t {
		for _, candidate := range countries {
			if strings.EqualFold(candidate, c) {
				return region
			}
		}
	}
	return RegionOther
}

// GeographicPattern describes where case studies are located.
type GeographicPattern struct {
	Countries      []common.Count `json:"countries"`
	Regions        []common.Count `json:"regions"`
	Diversity      int            `json:"diversity"`
	LocatedStudies int            `json:"locatedStudies"`
}

// Geographic counts countries and rolls them up into regions. Diversity is
// the number of distinct countries. Percentages are relative to the number
// of records carrying a country.
func (t RegionTable) Geographic(records []casestudy.Record) GeographicPattern {
	countries, regions := common.Counter{}, common.Counter{}
	located := 0
	for _, r := range records {
		c := strings.TrimSpace(r.Country)
		if c == "" {
			continue
		}
		located++
		countries.Add(c)
		regions.Add(t.Region(c))
	}
	return GeographicPattern{
		Countries:      countries.Top(0, located),
		Regions:        regions.Top(0, located),
		Diversity:      len(countries),
		LocatedStudies: located,
	}
}

// Geographic runs geographic detection against DefaultRegions.
func Geographic(records []casestudy.Record) GeographicPattern {
	return DefaultRegions.Geographic(records)
}

//Personal.AI order the ending
