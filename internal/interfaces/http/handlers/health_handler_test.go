package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type healthRecorder struct {
	mu sync.Mutex
	up map[string]bool
}

func (h *healthRecorder) SetHealth(component string, up bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.up == nil {
		h.up = map[string]bool{}
	}
	h.up[component] = up
}

func healthRouter(h *HealthHandler) *gin.Engine {
	r := gin.New()
	h.RegisterRoutes(r)
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestLiveness(t *testing.T) {
	w := get(healthRouter(NewHealthHandler("1.2.3", nil)), "/healthz")

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[LivenessResponse](t, w)
	assert.Equal(t, "alive", resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
}

func TestReadiness_NoCheckers(t *testing.T) {
	w := get(healthRouter(NewHealthHandler("v", nil)), "/readyz")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ready", decode[ReadinessResponse](t, w).Status)
}

func TestReadiness_AllHealthy(t *testing.T) {
	rec := &healthRecorder{}
	h := NewHealthHandler("v", rec,
		NewChecker("content_store", func(context.Context) error { return nil }),
		NewChecker("redis", func(context.Context) error { return nil }))

	w := get(healthRouter(h), "/readyz")

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[ReadinessResponse](t, w)
	assert.Equal(t, "ready", resp.Status)
	assert.Len(t, resp.Components, 2)
	assert.Equal(t, map[string]bool{"content_store": true, "redis": true}, rec.up)
}

func TestReadiness_OneUnhealthy(t *testing.T) {
	rec := &healthRecorder{}
	h := NewHealthHandler("v", rec,
		NewChecker("content_store", func(context.Context) error { return nil }),
		NewChecker("neo4j", func(context.Context) error { return assert.AnError }))

	w := get(healthRouter(h), "/readyz")

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decode[ReadinessResponse](t, w)
	assert.Equal(t, "not_ready", resp.Status)
	assert.Equal(t, statusUnhealthy, resp.Components["neo4j"].Status)
	assert.Equal(t, assert.AnError.Error(), resp.Components["neo4j"].Error)
	assert.False(t, rec.up["neo4j"])
}

//Personal.AI order the ending
