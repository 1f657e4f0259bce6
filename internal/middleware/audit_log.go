package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/picking-service/internal/domain/model"
	"github.com/guttosm/picking-service/internal/service"
)

// Audit action types.
const (
	ActionOpen        = "open"
	ActionScan        = "scan"
	ActionAddLine     = "add_line"
	ActionSetQuantity = "set_quantity"
	ActionRemoveLine  = "remove_line"
	ActionSave        = "save"
	ActionDestination = "change_destination"
	ActionSource      = "change_source"
	ActionPutInPack   = "put_in_pack"
	ActionValidate    = "validate"
	ActionCancel      = "cancel"
	ActionExit        = "exit"
	ActionToken       = "token"
)

const contextLoggingService = "logging_service"

// ProvideLoggingService makes ls available to the handlers of a request.
func ProvideLoggingService(ls service.LoggingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ls != nil {
			c.Set(contextLoggingService, ls)
		}
		c.Next()
	}
}

// LoggingServiceFrom returns the logging service of the request, if any.
func LoggingServiceFrom(c *gin.Context) service.LoggingService {
	ls, _ := c.Value(contextLoggingService).(service.LoggingService)
	return ls
}

// Audit records an operator action on a transfer through the logging
// service of the request. A non-nil err marks the action as failed. Without
// a logging service nothing is recorded.
func Audit(c *gin.Context, action, message string, err error, fields map[string]any) {
	ls := LoggingServiceFrom(c)
	if ls == nil {
		return
	}
	entry := &model.LogEntry{
		Timestamp:  time.Now(),
		Level:      "info",
		Message:    message,
		RequestID:  GetRequestID(c),
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		OperatorID: GetOperatorID(c),
		PickingID:  GetPickingID(c),
		ActionType: action,
		Fields:     fields,
	}
	if err != nil {
		entry.Level = "error"
		entry.Error = err.Error()
	}
	persist(ls, entry)
}

// persist hands the entry to the async logger, or stores it from a
// goroutine when the worker pool is not running.
func persist(loggingService service.LoggingService, entry *model.LogEntry) {
	if asyncLogger := GetAsyncLogger(); asyncLogger != nil {
		asyncLogger.Log(entry)
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = loggingService.CreateLog(ctx, entry)
	}()
}
