package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/Resilience-Insights/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Resilience-Insights/internal/interfaces/http/handlers"
	"github.com/turtacn/Resilience-Insights/internal/interfaces/http/middleware"
	"github.com/turtacn/Resilience-Insights/pkg/errors"
)

// RouterConfig aggregates the handlers and middleware dependencies of the
// route tree. Nil handlers leave their routes unmounted.
type RouterConfig struct {
	Mode string

	InsightsHandler *handlers.InsightsHandler
	HealthHandler   *handlers.HealthHandler

	// MetricsHandler is mounted at MetricsPath when set.
	MetricsHandler http.Handler
	MetricsPath    string

	// Recorder receives per-request observations. May be nil.
	Recorder middleware.HTTPRecorder

	// Limiter enables rate limiting of API routes when set.
	Limiter middleware.RateLimiter

	// CORSOrigins enables CORS when non-empty.
	CORSOrigins []string

	Logger logging.Logger
}

// NewRouter builds the gin engine: global middleware, probes, metrics and
// the /api/v1 group.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	log := cfg.Logger
	if log == nil {
		log = logging.NewNopLogger()
	}

	r := gin.New()
	r.Use(middleware.RequestID(log), middleware.Recovery(log))
	r.Use(middleware.RequestLogging(log, middleware.DefaultLoggingConfig(), cfg.Recorder))
	if len(cfg.CORSOrigins) > 0 {
		cors := middleware.DefaultCORSConfig()
		cors.AllowedOrigins = cfg.CORSOrigins
		cors.AllowWildcard = true
		r.Use(middleware.CORS(cors))
	}

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterRoutes(r)
	}
	if cfg.MetricsHandler != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(cfg.MetricsHandler))
	}

	api := r.Group("/api/v1")
	if cfg.Limiter != nil {
		api.Use(middleware.RateLimit(cfg.Limiter, middleware.DefaultRateLimitConfig()))
	}
	if cfg.InsightsHandler != nil {
		cfg.InsightsHandler.RegisterRoutes(api)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, handlers.ErrorResponse{
			Code:      errors.ErrCodeNotFound,
			Message:   "route not found",
			RequestID: middleware.ContextGetRequestID(c.Request.Context()),
		})
	})
	return r
}

//Personal.AI order the ending
