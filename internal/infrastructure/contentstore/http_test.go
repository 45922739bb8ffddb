package contentstore

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/Resilience-Insights/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Resilience-Insights/pkg/errors"
)

const twoDocs = `[
	{"id": "cs-1", "title": "Flood clinics", "dimensions": ["Health Systems"], "year": 2019},
	{"_id": "cs-2", "name": "Grain reserves", "tags": "food, storage"}
]`

func newTestStore(t *testing.T, url string) *HTTPStore {
	t.Helper()
	s, err := NewHTTPStore(url, "secret", time.Second, logging.NewNopLogger(),
		WithRetry(2, time.Millisecond, 5*time.Millisecond))
	require.NoError(t, err)
	return s
}

func TestNewHTTPStore_RejectsBadURL(t *testing.T) {
	for _, u := range []string{"", "not a url", "ftp://host/x", "/relative"} {
		_, err := NewHTTPStore(u, "", 0, logging.NewNopLogger())
		require.Error(t, err, u)
		assert.Equal(t, errors.ErrCodeBadRequest, errors.GetCode(err), u)
	}
}

func TestHTTPStore_FetchSendsHeadersAndLimit(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(twoDocs))
	}))
	defer srv.Close()

	records, err := newTestStore(t, srv.URL+"/case-studies/").FetchCaseStudies(context.Background(), 10)
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, "/case-studies", got.URL.Path)
	assert.Equal(t, "10", got.URL.Query().Get("limit"))
	assert.Equal(t, "Bearer secret", got.Header.Get("Authorization"))
	assert.Equal(t, "application/json", got.Header.Get("Accept"))
	assert.NotEmpty(t, got.Header.Get("X-Request-ID"))

	require.Len(t, records, 2)
	assert.Equal(t, "cs-1", records[0].ID)
	assert.Equal(t, "cs-2", records[1].ID)
}

func TestHTTPStore_EnvelopeAndLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"total": 3, "items": [{"id":"a"},{"id":"b"},{"id":"c"}]}`))
	}))
	defer srv.Close()

	records, err := newTestStore(t, srv.URL).FetchCaseStudies(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "b", records[1].ID)
}

func TestHTTPStore_SkipsDocumentsWithoutID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"title":"orphan"},{"id":"ok"}]`))
	}))
	defer srv.Close()

	records, err := newTestStore(t, srv.URL).FetchCaseStudies(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ok", records[0].ID)
}

func TestHTTPStore_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`[{"id":"x"}]`))
	}))
	defer srv.Close()

	records, err := newTestStore(t, srv.URL).FetchCaseStudies(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPStore_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestStore(t, srv.URL).FetchCaseStudies(context.Background(), 0)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeContentStoreFailed, errors.GetCode(err))
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPStore_ClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`bad token`))
	}))
	defer srv.Close()

	_, err := newTestStore(t, srv.URL).FetchCaseStudies(context.Background(), 0)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeContentStoreFailed))
	assert.Contains(t, err.Error(), "401")
	assert.Equal(t, int32(1), calls.Load())
}

func TestHTTPStore_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id": `))
	}))
	defer srv.Close()

	_, err := newTestStore(t, srv.URL).FetchCaseStudies(context.Background(), 0)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeContentStoreDecoding))
}

func TestHTTPStore_DeadlineIsUpstreamTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newTestStore(t, srv.URL).FetchCaseStudies(ctx, 0)
	require.Error(t, err)
	assert.True(t, errors.IsUpstreamTimeout(err))
}

func TestHTTPStore_Ping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	assert.NoError(t, newTestStore(t, srv.URL).Ping(context.Background()))
}

//Personal.AI order the ending
