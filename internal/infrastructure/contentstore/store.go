package contentstore

import (
	"github.com/turtacn/Resilience-Insights/internal/config"
	"github.com/turtacn/Resilience-Insights/internal/domain/casestudy"
	"github.com/turtacn/Resilience-Insights/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Resilience-Insights/pkg/errors"
)

// Store is what the service layer needs from a configured content store.
type Store interface {
	casestudy.ContentStore
	casestudy.HealthChecker
}

// New builds the store selected by cfg.Kind.
func New(cfg config.ContentStoreConfig, log logging.Logger) (Store, error) {
	switch cfg.Kind {
	case "http":
		return NewHTTPStore(cfg.URL, cfg.APIKey, cfg.Timeout, log)
	case "file":
		return NewFileStore(cfg.Path, log)
	default:
		return nil, errors.InvalidParam("unknown content store kind").WithDetail(cfg.Kind)
	}
}

//Personal.AI order the ending
