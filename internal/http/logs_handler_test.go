package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/picking-service/internal/domain/dto"
	"github.com/guttosm/picking-service/internal/domain/model"
	"github.com/guttosm/picking-service/internal/middleware"
	"github.com/guttosm/picking-service/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupLogsRouter(t *testing.T) (*gin.Engine, *mocks.MockLoggingService) {
	logs := mocks.NewMockLoggingService(t)
	router := gin.New()
	router.Use(middleware.RequestID())
	router.GET("/api/logs", NewLogsHandler(logs).Query)
	return router, logs
}

func TestLogsHandler_Query(t *testing.T) {
	router, logs := setupLogsRouter(t)

	since := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	match := mock.MatchedBy(func(opts model.LogQueryOptions) bool {
		return opts.PickingID == 7 &&
			opts.ActionType == "scan" &&
			opts.OperatorID == "op-1" &&
			opts.Limit == 20 &&
			opts.Skip == 40 &&
			opts.StartTime != nil && opts.StartTime.Equal(since) &&
			opts.EndTime == nil
	})
	logs.On("QueryLogs", mock.Anything, match).Return([]model.LogEntry{
		{Message: "Barcode processed", PickingID: 7, ActionType: "scan", OperatorID: "op-1"},
	}, nil)
	logs.On("CountLogs", mock.Anything, match).Return(int64(41), nil)

	w := doJSON(router, http.MethodGet,
		"/api/logs?picking_id=7&action_type=scan&operator_id=op-1&limit=20&skip=40&since=2026-03-01T08:00:00Z", "")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Data dto.LogListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(41), resp.Data.Total)
	assert.Equal(t, 20, resp.Data.Limit)
	require.Len(t, resp.Data.Logs, 1)
	assert.Equal(t, "Barcode processed", resp.Data.Logs[0].Message)
}

func TestLogsHandler_Defaults(t *testing.T) {
	router, logs := setupLogsRouter(t)
	match := mock.MatchedBy(func(opts model.LogQueryOptions) bool {
		return opts.Limit == defaultLogLimit && opts.Skip == 0 && opts.PickingID == 0
	})
	logs.On("QueryLogs", mock.Anything, match).Return(nil, nil)
	logs.On("CountLogs", mock.Anything, match).Return(int64(0), nil)

	w := doJSON(router, http.MethodGet, "/api/logs", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"logs":[]`)
}

func TestLogsHandler_InvalidFilters(t *testing.T) {
	for _, query := range []string{"picking_id=x", "limit=-1", "skip=-5", "until=yesterday"} {
		t.Run(query, func(t *testing.T) {
			router, _ := setupLogsRouter(t)

			w := doJSON(router, http.MethodGet, "/api/logs?"+query, "")

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, dto.ErrCodeInvalidRequest, decodeError(t, w).Error)
		})
	}
}

func TestLogsHandler_StoreFailure(t *testing.T) {
	router, logs := setupLogsRouter(t)
	logs.On("QueryLogs", mock.Anything, mock.Anything).Return(nil, errors.New("server selection timeout"))

	w := doJSON(router, http.MethodGet, "/api/logs", "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
