package dto

import "github.com/guttosm/picking-service/internal/domain/model"

// LogListResponse is a page of persisted request and audit log entries.
type LogListResponse struct {
	Logs  []model.LogEntry `json:"logs"`
	Total int64            `json:"total" example:"120"`
	Limit int              `json:"limit" example:"50"`
	Skip  int              `json:"skip" example:"0"`
} // @name LogListResponse
