package contentstore

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/turtacn/Resilience-Insights/internal/domain/casestudy"
	"github.com/turtacn/Resilience-Insights/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Resilience-Insights/pkg/errors"
)

const userAgent = "resilience-insights/1"

// HTTPStore reads case studies from a JSON endpoint.
type HTTPStore struct {
	endpoint     string
	apiKey       string
	client       *http.Client
	table        casestudy.FieldTable
	logger       logging.Logger
	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
}

var (
	_ casestudy.ContentStore  = (*HTTPStore)(nil)
	_ casestudy.HealthChecker = (*HTTPStore)(nil)
)

// HTTPOption customises NewHTTPStore.
type HTTPOption func(*HTTPStore)

func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPStore) { s.client = c }
}

func WithRetry(max int, waitMin, waitMax time.Duration) HTTPOption {
	return func(s *HTTPStore) {
		s.retryMax = max
		s.retryWaitMin = waitMin
		s.retryWaitMax = waitMax
	}
}

func WithFieldTable(t casestudy.FieldTable) HTTPOption {
	return func(s *HTTPStore) { s.table = t }
}

// NewHTTPStore validates endpoint. timeout bounds each request attempt.
func NewHTTPStore(endpoint, apiKey string, timeout time.Duration, log logging.Logger, opts ...HTTPOption) (*HTTPStore, error) {
	u, err := url.Parse(endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.InvalidParam("content store url must be an absolute http(s) url").WithDetail(endpoint)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	s := &HTTPStore{
		endpoint:     strings.TrimSuffix(endpoint, "/"),
		apiKey:       apiKey,
		client:       &http.Client{Timeout: timeout},
		table:        casestudy.DefaultFieldTable,
		logger:       log.Named("contentstore.http"),
		retryMax:     3,
		retryWaitMin: 200 * time.Millisecond,
		retryWaitMax: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// FetchCaseStudies GETs the endpoint with ?limit=N, retrying network
// failures, 429 and 5xx with exponential backoff.
func (s *HTTPStore) FetchCaseStudies(ctx context.Context, limit int) ([]casestudy.Record, error) {
	target := s.endpoint
	if limit > 0 {
		target += "?limit=" + strconv.Itoa(limit)
	}

	body, err := s.get(ctx, target)
	if err != nil {
		return nil, err
	}
	docs, err := decodeDocuments(body)
	if err != nil {
		return nil, err
	}
	records := toRecords(docs, s.table, limit, s.logger)
	s.logger.Debug("case studies fetched", logging.Int("documents", len(docs)), logging.Int("records", len(records)))
	return records, nil
}

// Ping fetches a single document.
func (s *HTTPStore) Ping(ctx context.Context) error {
	_, err := s.get(ctx, s.endpoint+"?limit=1")
	return err
}

func (s *HTTPStore) get(ctx context.Context, target string) ([]byte, error) {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = s.retryWaitMin
	eb.MaxInterval = s.retryWaitMax
	eb.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(s.retryMax)), ctx)

	var body []byte
	attempt := 0
	err := backoff.RetryNotify(func() error {
		attempt++
		b, err := s.once(ctx, target)
		if err != nil {
			return err
		}
		body = b
		return nil
	}, policy, func(err error, wait time.Duration) {
		s.logger.Warn("content store request failed, retrying",
			logging.Int("attempt", attempt),
			logging.Duration("wait", wait),
			logging.Err(err))
	})
	if err == nil {
		return body, nil
	}
	if ctx.Err() != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, errors.UpstreamTimeout("content store timed out").WithCause(err)
	}
	return nil, err
}

// once performs a single attempt. Non-retryable failures come back wrapped
// in backoff.Permanent.
func (s *HTTPStore) once(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, backoff.Permanent(errors.Wrap(err, errors.ErrCodeContentStoreFailed, "failed to build request"))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(errors.Wrap(err, errors.ErrCodeContentStoreFailed, "content store request aborted"))
		}
		return nil, errors.Wrap(err, errors.ErrCodeContentStoreFailed, "content store unreachable")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeContentStoreFailed, "failed to read content store response")
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, errors.Newf(errors.ErrCodeContentStoreFailed, "content store returned HTTP %d", resp.StatusCode)
	case resp.StatusCode >= 400:
		return nil, backoff.Permanent(
			errors.Newf(errors.ErrCodeContentStoreFailed, "content store returned HTTP %d", resp.StatusCode).
				WithDetail(snippet(body)))
	}
	return body, nil
}

func snippet(b []byte) string {
	const max = 200
	s := strings.TrimSpace(string(b))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}

//Personal.AI order the ending
