package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/picking-service/internal/domain/model"
	"github.com/guttosm/picking-service/internal/logger"
	"github.com/guttosm/picking-service/internal/service"
	"github.com/rs/zerolog"
)

// quietPaths are probed by the platform every few seconds. They are logged
// at debug and never persisted.
var quietPaths = map[string]bool{
	"/healthz": true,
	"/readyz":  true,
	"/metrics": true,
}

// RequestLogger logs every request once it has been served, with its operator
// and transfer, and persists it through loggingService when one is given.
func RequestLogger(loggingService service.LoggingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		latency := time.Since(start)
		path := c.Request.URL.Path
		quiet := quietPaths[path]

		level := levelFor(status)
		if quiet && level == zerolog.InfoLevel {
			level = zerolog.DebugLevel
		}

		log := logger.FromContext(c.Request.Context())
		ev := log.WithLevel(level).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status_code", status).
			Dur("latency", latency).
			Str("ip", c.ClientIP())
		if route := c.FullPath(); route != "" && route != path {
			ev = ev.Str("route", route)
		}
		if op := GetOperatorID(c); op != "" {
			ev = ev.Str("operator_id", op)
		}
		if id := GetPickingID(c); id != 0 {
			ev = ev.Int64("picking_id", id)
		}
		errText := joinErrors(c)
		if errText != "" {
			ev = ev.Str("error", errText)
		}
		ev.Msg("HTTP request")

		if loggingService == nil || quiet {
			return
		}
		persist(loggingService, &model.LogEntry{
			Timestamp:  start,
			Level:      level.String(),
			Message:    "HTTP request",
			RequestID:  GetRequestID(c),
			Method:     c.Request.Method,
			Path:       path,
			StatusCode: status,
			Duration:   latency.Milliseconds(),
			IP:         c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
			Error:      errText,
			OperatorID: GetOperatorID(c),
			PickingID:  GetPickingID(c),
		})
	}
}

func levelFor(status int) zerolog.Level {
	switch {
	case status >= 500:
		return zerolog.ErrorLevel
	case status >= 400:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

func joinErrors(c *gin.Context) string {
	if len(c.Errors) == 0 {
		return ""
	}
	msgs := make([]string, len(c.Errors))
	for i, e := range c.Errors {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}
