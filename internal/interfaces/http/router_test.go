package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/Resilience-Insights/internal/application/insights"
	"github.com/turtacn/Resilience-Insights/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Resilience-Insights/internal/interfaces/http/handlers"
	"github.com/turtacn/Resilience-Insights/internal/interfaces/http/middleware"
)

type stubService struct{}

func (stubService) Analyze(context.Context, insights.Options) *insights.Result {
	return &insights.Result{Success: true, Report: &insights.Report{ReportID: "r"}}
}

func (stubService) FindSimilar(_ context.Context, req insights.SimilarRequest) (*insights.SimilarResponse, error) {
	return &insights.SimilarResponse{TargetID: req.TargetID}, nil
}

func (stubService) BuildGraph(context.Context, insights.GraphRequest) (*insights.GraphResponse, error) {
	return &insights.GraphResponse{}, nil
}

func testRouter(limiter middleware.RateLimiter) http.Handler {
	log := logging.NewNopLogger()
	return NewRouter(RouterConfig{
		Mode:            "test",
		InsightsHandler: handlers.NewInsightsHandler(stubService{}, log, 1<<20, false),
		HealthHandler:   handlers.NewHealthHandler("test", nil),
		MetricsHandler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("# metrics"))
		}),
		MetricsPath: "/metrics",
		Limiter:     limiter,
		CORSOrigins: []string{"https://dash.example.org"},
		Logger:      log,
	})
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	h.ServeHTTP(w, req)
	return w
}

func TestNewRouter_Routes(t *testing.T) {
	r := testRouter(nil)

	cases := []struct {
		method, path string
		status       int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/readyz", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodPost, "/api/v1/insights/analyze", http.StatusOK},
		{http.MethodPost, "/api/v1/insights/similar", http.StatusOK},
		{http.MethodPost, "/api/v1/insights/graph", http.StatusOK},
		{http.MethodGet, "/api/v1/insights/analyze", http.StatusNotFound},
		{http.MethodGet, "/nope", http.StatusNotFound},
	}
	for _, tc := range cases {
		w := do(r, tc.method, tc.path, "")
		assert.Equal(t, tc.status, w.Code, "%s %s", tc.method, tc.path)
		assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID), "%s %s", tc.method, tc.path)
	}
}

func TestNewRouter_NotFoundBody(t *testing.T) {
	w := do(testRouter(nil), http.MethodGet, "/nope", "")

	assert.Contains(t, w.Body.String(), `"code":"COMMON_005"`)
	assert.Contains(t, w.Body.String(), `"requestId"`)
}

func TestNewRouter_RateLimitCoversAPIOnly(t *testing.T) {
	l := middleware.NewTokenBucketLimiter(0.001, 1, 0)
	defer l.Stop()
	r := testRouter(l)

	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/v1/insights/analyze", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodPost, "/api/v1/insights/analyze", "").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/healthz", "").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/metrics", "").Code)
}

func TestNewRouter_CORSPreflight(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/insights/analyze", nil)
	req.Header.Set("Origin", "https://dash.example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	testRouter(nil).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://dash.example.org", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewRouter_NilHandlers(t *testing.T) {
	require.NotPanics(t, func() {
		r := NewRouter(RouterConfig{Mode: "test"})
		assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/healthz", "").Code)
	})
}

//Personal.AI order the ending
