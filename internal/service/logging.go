package service

import (
	"context"

	"github.com/guttosm/picking-service/internal/domain/model"
	"github.com/guttosm/picking-service/internal/repository"
)

// maxLogQueryLimit caps a single page of the log query API.
const maxLogQueryLimit = 500

// LoggingService stores and queries request and audit logs.
type LoggingService interface {
	CreateLog(ctx context.Context, entry *model.LogEntry) error
	CreateLogs(ctx context.Context, entries []*model.LogEntry) error
	QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error)
	CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error)
}

type loggingService struct {
	repo repository.LogsRepositoryInterface
}

// NewLoggingService creates a logging service over repo.
func NewLoggingService(repo repository.LogsRepositoryInterface) LoggingService {
	return &loggingService{repo: repo}
}

func (s *loggingService) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	if entry == nil {
		return nil
	}
	return s.repo.Create(ctx, entry)
}

// CreateLogs skips nil entries and does nothing for an empty batch.
func (s *loggingService) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	batch := make([]*model.LogEntry, 0, len(entries))
	for _, entry := range entries {
		if entry != nil {
			batch = append(batch, entry)
		}
	}
	if len(batch) == 0 {
		return nil
	}
	return s.repo.CreateMany(ctx, batch)
}

// QueryLogs clamps the page size to maxLogQueryLimit.
func (s *loggingService) QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	if opts.Limit <= 0 || opts.Limit > maxLogQueryLimit {
		opts.Limit = maxLogQueryLimit
	}
	if opts.Skip < 0 {
		opts.Skip = 0
	}
	return s.repo.Query(ctx, opts)
}

func (s *loggingService) CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	return s.repo.Count(ctx, opts)
}
