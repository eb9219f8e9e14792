package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Recovery turns panics into a 500 answer and reports them to Sentry when a
// client is configured.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			requestID := GetRequestID(c)

			hub := sentry.CurrentHub().Clone()
			hub.Scope().SetTag("request_id", requestID)
			hub.Scope().SetRequest(c.Request)
			hub.RecoverWithContext(c.Request.Context(), rec)

			log.Error().
				Str("panic", fmt.Sprint(rec)).
				Str("request_id", requestID).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Str("stack", string(debug.Stack())).
				Msg("panic recovered")

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":      "internal server error",
				"request_id": requestID,
			})
		}()

		c.Next()
	}
}
