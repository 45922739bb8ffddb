package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/Resilience-Insights/internal/application/insights"
	"github.com/turtacn/Resilience-Insights/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Resilience-Insights/pkg/errors"
)

// InsightsHandler serves the analysis, similarity and graph endpoints.
type InsightsHandler struct {
	svc     insights.Service
	logger  logging.Logger
	maxBody int64
	debug   bool
}

func NewInsightsHandler(svc insights.Service, log logging.Logger, maxBody int64, debug bool) *InsightsHandler {
	return &InsightsHandler{svc: svc, logger: log, maxBody: maxBody, debug: debug}
}

// RegisterRoutes mounts the endpoints under rg/insights.
func (h *InsightsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/insights")
	g.POST("/analyze", h.Analyze)
	g.POST("/similar", h.Similar)
	g.POST("/graph", h.Graph)
}

// Analyze handles POST /api/v1/insights/analyze. The Result envelope is
// returned on failure too, with the status taken from its code.
func (h *InsightsHandler) Analyze(c *gin.Context) {
	var opts insights.Options
	if err := decodeBody(c, &opts, h.maxBody); err != nil {
		writeAppError(c, err, h.debug)
		return
	}

	res := h.svc.Analyze(c.Request.Context(), opts)
	status := http.StatusOK
	if !res.Success {
		status = errors.HTTPStatusForCode(res.Code)
	}
	c.JSON(status, res)
}

// Similar handles POST /api/v1/insights/similar.
func (h *InsightsHandler) Similar(c *gin.Context) {
	var req insights.SimilarRequest
	if err := decodeBody(c, &req, h.maxBody); err != nil {
		writeAppError(c, err, h.debug)
		return
	}
	resp, err := h.svc.FindSimilar(c.Request.Context(), req)
	if err != nil {
		writeAppError(c, err, h.debug)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Graph handles POST /api/v1/insights/graph.
func (h *InsightsHandler) Graph(c *gin.Context) {
	var req insights.GraphRequest
	if err := decodeBody(c, &req, h.maxBody); err != nil {
		writeAppError(c, err, h.debug)
		return
	}
	resp, err := h.svc.BuildGraph(c.Request.Context(), req)
	if err != nil {
		writeAppError(c, err, h.debug)
		return
	}
	c.JSON(http.StatusOK, resp)
}

//Personal.AI order the ending
