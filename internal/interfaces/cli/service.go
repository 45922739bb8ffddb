package cli

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/turtacn/Resilience-Insights/internal/application/insights"
	"github.com/turtacn/Resilience-Insights/internal/domain/casestudy"
	"github.com/turtacn/Resilience-Insights/internal/infrastructure/contentstore"
	"github.com/turtacn/Resilience-Insights/internal/infrastructure/database/neo4j"
	"github.com/turtacn/Resilience-Insights/internal/infrastructure/database/neo4j/repositories"
	"github.com/turtacn/Resilience-Insights/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Resilience-Insights/pkg/errors"
)

// DefaultServiceBuilder wires the service against the selected content store
// and, when enabled, the Neo4j graph exporter. The report cache and event
// publisher are server-side concerns and stay unset.
func DefaultServiceBuilder(cc *CLIContext, source string) (insights.Service, func() error, error) {
	store, err := resolveStore(cc, source)
	if err != nil {
		return nil, nil, err
	}

	deps := insights.Deps{Store: store, Logger: cc.Logger}
	var closers []func() error

	if cc.Config.Neo4j.Enabled {
		drv, err := neo4j.NewDriver(cc.Config.Neo4j, cc.Logger)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, func() error { return drv.Close(context.Background()) })

		repo := repositories.NewGraphRepository(drv, cc.Logger, 0)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := repo.EnsureConstraints(ctx); err != nil {
			cc.Logger.Warn("failed to ensure graph constraints", logging.Err(err))
		}
		cancel()
		deps.Graphs = repo
	}

	svc, err := insights.NewService(insights.ConfigFromSettings(cc.Config.Analysis, 0), deps)
	if err != nil {
		_ = closeAll(closers)
		return nil, nil, err
	}
	return svc, func() error { return closeAll(closers) }, nil
}

func resolveStore(cc *CLIContext, source string) (casestudy.ContentStore, error) {
	cs := cc.Config.ContentStore
	switch {
	case source == "":
		return contentstore.New(cs, cc.Logger)
	case source == "-":
		data, err := io.ReadAll(cc.Stdin)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeContentStoreFailed, "failed to read stdin")
		}
		records, err := contentstore.ParseRecords(data, cc.Logger)
		if err != nil {
			return nil, err
		}
		return casestudy.StaticStore{Records: records}, nil
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return contentstore.NewHTTPStore(source, cs.APIKey, cs.Timeout, cc.Logger)
	default:
		return contentstore.NewFileStore(source, cc.Logger)
	}
}

func closeAll(closers []func() error) error {
	var result *multierror.Error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

//Personal.AI order the ending
