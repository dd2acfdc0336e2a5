package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"syscall"

	"github.com/gin-gonic/gin"
)

// Recovery middleware turns a panic into a 500 carrying the usual error envelope.
// When the client already hung up there is nobody to answer, so the request is only aborted.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			attrs := []any{
				"error", r,
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"correlation_id", GetCorrelationID(c),
			}

			if clientGone(r) {
				logger.Warn("Client connection lost", attrs...)
				c.Abort()
				return
			}

			logger.Error("Panic recovered", append(attrs, "stack", string(debug.Stack()))...)
			c.AbortWithStatusJSON(http.StatusInternalServerError, panicBody(GetCorrelationID(c)))
		}()

		c.Next()
	}
}

func clientGone(r any) bool {
	err, ok := r.(error)
	if !ok {
		return false
	}
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, syscall.ECONNRESET) || errors.Is(err, http.ErrAbortHandler)
}

func panicBody(correlationID string) gin.H {
	body := gin.H{
		"error": gin.H{
			"code":    "INTERNAL_SERVER_ERROR",
			"message": "An internal server error occurred",
		},
	}
	if correlationID != "" {
		body["correlation_id"] = correlationID
	}
	return body
}
