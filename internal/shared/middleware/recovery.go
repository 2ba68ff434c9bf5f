package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"megheza-backend/internal/shared/response"
)

// Recovery turns a handler panic into the standard 500 envelope. The panic
// value and stack stay in the log.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			log.Error().
				Str("request_id", c.GetString(RequestIDKey)).
				Str("method", c.Request.Method).
				Str("route", c.FullPath()).
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("Panic recovered")

			if c.Writer.Written() {
				c.Abort()
				return
			}
			response.ErrorResponse(c, http.StatusInternalServerError, "SYS_001", "Internal server error")
			c.Abort()
		}()

		c.Next()
	}
}
