package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/Resilience-Insights/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Resilience-Insights/pkg/errors"
)

// Recovery turns a handler panic into a 500 response and an error log with
// the stack.
func Recovery(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			logging.FromContext(c.Request.Context(), log).Error("panic recovered",
				logging.Any("panic", rec),
				logging.String("path", c.Request.URL.Path),
				logging.String("stack", string(debug.Stack())))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"code":      errors.ErrCodeInternal,
				"message":   errors.DefaultMessageForCode(errors.ErrCodeInternal),
				"requestId": ContextGetRequestID(c.Request.Context()),
			})
		}()
		c.Next()
	}
}

//Personal.AI order the ending
