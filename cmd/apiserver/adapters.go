package main

import (
	"reflect"

	"github.com/turtacn/Resilience-Insights/internal/config"
	"github.com/turtacn/Resilience-Insights/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Resilience-Insights/internal/interfaces/http/handlers"
	"github.com/turtacn/Resilience-Insights/internal/platform"
)

// healthCheckers exposes the platform probes to the readiness handler.
func healthCheckers(infra *platform.Infrastructure) []handlers.HealthChecker {
	probes := infra.Checkers()
	out := make([]handlers.HealthChecker, 0, len(probes))
	for _, p := range probes {
		out = append(out, handlers.NewChecker(p.Name, p.Check))
	}
	return out
}

func healthObserver(infra *platform.Infrastructure) handlers.HealthObserver {
	if infra.Metrics == nil {
		return nil
	}
	return infra.Metrics
}

// watchConfig reports edits to the config file. Settings are read once at
// startup, so a changed section only takes effect after a restart.
func watchConfig(path string, current *config.Config, logger logging.Logger) {
	err := config.Watch(path, func(next *config.Config) {
		changed := changedSections(current, next)
		if len(changed) == 0 {
			return
		}
		logger.Warn("configuration changed on disk; restart to apply",
			logging.Strings("sections", changed))
	}, func(err error) {
		logger.Error("ignoring invalid configuration update", logging.Err(err))
	})
	if err != nil {
		logger.Warn("config hot reload disabled", logging.Err(err))
	}
}

func changedSections(a, b *config.Config) []string {
	sections := []struct {
		name string
		x, y any
	}{
		{"server", a.Server, b.Server},
		{"analysis", a.Analysis, b.Analysis},
		{"content_store", a.ContentStore, b.ContentStore},
		{"redis", a.Redis, b.Redis},
		{"neo4j", a.Neo4j, b.Neo4j},
		{"kafka", a.Kafka, b.Kafka},
		{"metrics", a.Metrics, b.Metrics},
		{"rate_limit", a.RateLimit, b.RateLimit},
	}
	var changed []string
	for _, s := range sections {
		if !reflect.DeepEqual(s.x, s.y) {
			changed = append(changed, s.name)
		}
	}
	return changed
}

//Personal.AI order the ending
