package insights

import (
	"time"

	"github.com/turtacn/Resilience-Insights/internal/config"
)

// ConfigFromSettings maps the analysis section of the loaded configuration
// onto the service Config.
func ConfigFromSettings(a config.AnalysisConfig, cacheTTL time.Duration) Config {
	return Config{
		FetchTimeout:      a.FetchTimeout,
		OverallTimeout:    a.OverallTimeout,
		DefaultMaxRecords: a.MaxRecords,
		ClusterCount:      a.ClusterCount,
		Seed:              a.Seed,
		Debug:             a.Debug,
		CacheTTL:          cacheTTL,
	}
}

//Personal.AI order the ending
