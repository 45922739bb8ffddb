package contentstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/Resilience-Insights/internal/config"
	"github.com/turtacn/Resilience-Insights/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Resilience-Insights/pkg/errors"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestFileStore_JSONArray(t *testing.T) {
	s, err := NewFileStore(writeFile(t, "cs.json", twoDocs), logging.NewNopLogger())
	require.NoError(t, err)

	records, err := s.FetchCaseStudies(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Flood clinics", records[0].Title)
	assert.Equal(t, "Grain reserves", records[1].Title)
}

func TestFileStore_Envelope(t *testing.T) {
	s, err := NewFileStore(writeFile(t, "cs.json", `{"case_studies":[{"id":"a"}]}`), logging.NewNopLogger())
	require.NoError(t, err)

	records, err := s.FetchCaseStudies(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestFileStore_JSONLines(t *testing.T) {
	body := "{\"id\":\"a\"}\n\n{\"id\":\"b\"}\n{\"id\":\"c\"}\n"
	s, err := NewFileStore(writeFile(t, "cs.ndjson", body), logging.NewNopLogger())
	require.NoError(t, err)

	records, err := s.FetchCaseStudies(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].ID)
	assert.Equal(t, "b", records[1].ID)
}

func TestFileStore_BadLine(t *testing.T) {
	s, err := NewFileStore(writeFile(t, "cs.jsonl", "{\"id\":\"a\"}\n{oops\n"), logging.NewNopLogger())
	require.NoError(t, err)

	_, err = s.FetchCaseStudies(context.Background(), 0)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeContentStoreDecoding))
	assert.Contains(t, err.Error(), "line=2")
}

func TestFileStore_ObjectWithoutArray(t *testing.T) {
	s, err := NewFileStore(writeFile(t, "cs.json", `{"count": 0}`), logging.NewNopLogger())
	require.NoError(t, err)

	_, err = s.FetchCaseStudies(context.Background(), 0)
	assert.True(t, errors.IsCode(err, errors.ErrCodeContentStoreDecoding))
}

func TestFileStore_MissingFile(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "absent.json"), logging.NewNopLogger())
	require.NoError(t, err)

	_, err = s.FetchCaseStudies(context.Background(), 0)
	assert.True(t, errors.IsCode(err, errors.ErrCodeContentStoreFailed))
	assert.Error(t, s.Ping(context.Background()))
}

func TestFileStore_PingDirectory(t *testing.T) {
	s, err := NewFileStore(t.TempDir(), logging.NewNopLogger())
	require.NoError(t, err)
	assert.Error(t, s.Ping(context.Background()))
}

func TestFileStore_CancelledContext(t *testing.T) {
	s, err := NewFileStore(writeFile(t, "cs.json", twoDocs), logging.NewNopLogger())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.FetchCaseStudies(ctx, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_SelectsKind(t *testing.T) {
	log := logging.NewNopLogger()

	s, err := New(config.ContentStoreConfig{Kind: "file", Path: "x.json"}, log)
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	s, err = New(config.ContentStoreConfig{Kind: "http", URL: "http://localhost:9200/cs"}, log)
	require.NoError(t, err)
	assert.IsType(t, &HTTPStore{}, s)

	_, err = New(config.ContentStoreConfig{Kind: "s3"}, log)
	assert.Error(t, err)
}

//Personal.AI order the ending
