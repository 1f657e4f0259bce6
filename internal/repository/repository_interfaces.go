package repository

import (
	"context"

	"github.com/guttosm/picking-service/internal/barcode"
	"github.com/guttosm/picking-service/internal/domain/model"
)

// PickingRepositoryInterface is the backing store of the scanning sessions
// plus the queries served outside a session.
type PickingRepositoryInterface interface {
	barcode.Backend
	GetPicking(ctx context.Context, pickingID int64) (model.Picking, error)
	ListPickings(ctx context.Context, state model.PickingState, limit int) ([]model.Picking, error)
}

// LogsRepositoryInterface defines the interface for logs repository operations.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *model.LogEntry) error
	CreateMany(ctx context.Context, entries []*model.LogEntry) error
	Query(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error)
	Count(ctx context.Context, opts model.LogQueryOptions) (int64, error)
}

var (
	_ PickingRepositoryInterface = (*PickingRepository)(nil)
	_ PickingRepositoryInterface = (*PickingRepositoryWithCircuitBreaker)(nil)
	_ LogsRepositoryInterface    = (*LogsRepository)(nil)
	_ LogsRepositoryInterface    = (*LogsRepositoryWithCircuitBreaker)(nil)
)
