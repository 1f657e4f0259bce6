package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/picking-service/internal/i18n"
	"github.com/guttosm/picking-service/internal/logger"
	"github.com/rs/zerolog"
)

// ErrorHandler logs the errors handlers attached to the context. Client
// errors such as a scan without an open session are routine and logged at
// debug; server errors at error. A handler that recorded an error without
// writing a response gets a 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		if !c.Writer.Written() {
			writeInternalError(c)
		}

		status := c.Writer.Status()
		level := zerolog.ErrorLevel
		if status < http.StatusInternalServerError {
			level = zerolog.DebugLevel
		}

		l := logger.FromContext(c.Request.Context())
		event := l.WithLevel(level).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Strs("errors", c.Errors.Errors())
		if pickingID := GetPickingID(c); pickingID != 0 {
			event = event.Int64("picking_id", pickingID)
		}
		event.Msg("request failed")
	}
}

// Recovery turns a panic in a handler into a 500 and logs it with the stack.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				l := logger.FromContext(c.Request.Context())
				l.Error().
					Interface("panic", r).
					Str("path", c.Request.URL.Path).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")
				writeInternalError(c)
			}
		}()
		c.Next()
	}
}

func writeInternalError(c *gin.Context) {
	abortWithError(c, http.StatusInternalServerError, i18n.ErrKeyInternalError)
}
