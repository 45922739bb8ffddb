package contentstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/turtacn/Resilience-Insights/internal/domain/casestudy"
	"github.com/turtacn/Resilience-Insights/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Resilience-Insights/pkg/errors"
)

// FileStore reads case studies from a local JSON or JSON-lines export. The
// file is re-read on every fetch so edits are picked up without a restart.
type FileStore struct {
	path   string
	table  casestudy.FieldTable
	logger logging.Logger
}

var (
	_ casestudy.ContentStore  = (*FileStore)(nil)
	_ casestudy.HealthChecker = (*FileStore)(nil)
)

func NewFileStore(path string, log logging.Logger) (*FileStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.InvalidParam("content store path is required")
	}
	return &FileStore{path: path, table: casestudy.DefaultFieldTable, logger: log.Named("contentstore.file")}, nil
}

func (s *FileStore) FetchCaseStudies(ctx context.Context, limit int) ([]casestudy.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeContentStoreFailed, "failed to read content file").WithDetail(s.path)
	}

	var docs []map[string]any
	if isLines(s.path) {
		docs, err = decodeLines(data)
	} else {
		docs, err = decodeDocuments(data)
	}
	if err != nil {
		return nil, err
	}
	return toRecords(docs, s.table, limit, s.logger), nil
}

// Ping checks the file exists and is a regular file.
func (s *FileStore) Ping(ctx context.Context) error {
	fi, err := os.Stat(s.path)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeContentStoreFailed, "content file unavailable").WithDetail(s.path)
	}
	if !fi.Mode().IsRegular() {
		return errors.New(errors.ErrCodeContentStoreFailed, "content path is not a regular file").WithDetail(s.path)
	}
	return nil
}

func isLines(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl", ".ndjson":
		return true
	}
	return false
}

//Personal.AI order the ending
