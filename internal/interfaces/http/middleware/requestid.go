package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/turtacn/Resilience-Insights/internal/infrastructure/monitoring/logging"
)

const (
	HeaderRequestID = "X-Request-ID"
	requestIDKey    = "request_id"
	maxRequestIDLen = 128
)

type requestIDCtxKey struct{}

// RequestID propagates the caller's X-Request-ID or mints one, and stores a
// request-scoped logger in the request context.
func RequestID(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(HeaderRequestID, id)

		ctx := context.WithValue(c.Request.Context(), requestIDCtxKey{}, id)
		ctx = logging.IntoContext(ctx, log.With(logging.String("request_id", id)))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// ContextGetRequestID returns the id set by RequestID, or "".
func ContextGetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDCtxKey{}).(string)
	return id
}

//Personal.AI order the ending
