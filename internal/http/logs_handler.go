package http

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/picking-service/internal/domain/dto"
	"github.com/guttosm/picking-service/internal/domain/model"
	"github.com/guttosm/picking-service/internal/service"
)

const (
	defaultLogLimit = 50
	maxLogLimit     = 500
)

// LogsHandler serves the persisted request and audit logs.
type LogsHandler struct {
	logs service.LoggingService
}

// NewLogsHandler creates a new logs handler.
func NewLogsHandler(logs service.LoggingService) *LogsHandler {
	return &LogsHandler{logs: logs}
}

// Query handles GET /api/logs requests.
//
// @Summary      Query audit logs
// @Description  Returns persisted log entries, newest first. Filter by transfer to get the audit trail of a scanning session. Requires the supervisor role when authentication is enabled.
// @Tags         Logs
// @Produce      json
// @Param        picking_id query int false "Transfer id"
// @Param        operator_id query string false "Operator id"
// @Param        action_type query string false "Audit action, such as scan or validate"
// @Param        level query string false "Log level" Enums(info, warn, error)
// @Param        request_id query string false "Request id"
// @Param        since query string false "RFC 3339 lower bound"
// @Param        until query string false "RFC 3339 upper bound"
// @Param        limit query int false "Page size (default 50, max 500)"
// @Param        skip query int false "Entries to skip"
// @Success      200 {object} dto.SuccessResponse{data=dto.LogListResponse}
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid filter"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - supervisor role required"
// @Failure      503 {object} dto.ErrorResponse "Backend unavailable"
// @Security     BearerAuth
// @Router       /api/logs [get]
func (h *LogsHandler) Query(c *gin.Context) {
	builder := NewResponseBuilder(c)

	opts, err := logQueryOptions(c)
	if err != nil {
		builder.Invalid(err)
		return
	}

	ctx := c.Request.Context()
	entries, err := h.logs.QueryLogs(ctx, opts)
	if err != nil {
		writeError(builder, err)
		return
	}
	total, err := h.logs.CountLogs(ctx, opts)
	if err != nil {
		writeError(builder, err)
		return
	}
	if entries == nil {
		entries = []model.LogEntry{}
	}

	builder.SuccessOK(dto.LogListResponse{
		Logs:  entries,
		Total: total,
		Limit: opts.Limit,
		Skip:  opts.Skip,
	})
}

func logQueryOptions(c *gin.Context) (model.LogQueryOptions, error) {
	opts := model.LogQueryOptions{
		RequestID:  c.Query("request_id"),
		Level:      c.Query("level"),
		OperatorID: c.Query("operator_id"),
		ActionType: c.Query("action_type"),
		Limit:      defaultLogLimit,
	}

	if raw := c.Query("picking_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return opts, &dto.ValidationError{Field: "picking_id", Message: "must be a positive id"}
		}
		opts.PickingID = id
	}
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return opts, dto.ErrInvalidLimit
		}
		opts.Limit = min(n, maxLogLimit)
	}
	if raw := c.Query("skip"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return opts, &dto.ValidationError{Field: "skip", Message: "must be a non-negative integer"}
		}
		opts.Skip = n
	}
	for name, dst := range map[string]**time.Time{"since": &opts.StartTime, "until": &opts.EndTime} {
		if raw := c.Query(name); raw != "" {
			t, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				return opts, &dto.ValidationError{Field: name, Message: "must be an RFC 3339 time"}
			}
			*dst = &t
		}
	}

	return opts, nil
}
