package repository

import (
	"context"
	"errors"

	"github.com/guttosm/picking-service/internal/barcode"
	"github.com/guttosm/picking-service/internal/circuitbreaker"
	"github.com/guttosm/picking-service/internal/domain/model"
)

// PickingRepositoryWithCircuitBreaker wraps PickingRepository with circuit breaker protection.
// Missing documents and rejected actions are answers, not outages; they do not
// count against the breaker.
type PickingRepositoryWithCircuitBreaker struct {
	repo           PickingRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewPickingRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewPickingRepositoryWithCircuitBreaker(repo PickingRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *PickingRepositoryWithCircuitBreaker {
	return &PickingRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// IsBackendFailure reports whether err means the store is unhealthy. It is
// the IsFailure hook of the picking circuit breaker.
func IsBackendFailure(err error) bool {
	return !errors.Is(err, ErrNotFound) &&
		!errors.Is(err, ErrInvalidAction) &&
		!errors.Is(err, context.Canceled)
}

func protect[T any](ctx context.Context, cb *circuitbreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	var result T
	err := cb.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = fn()
		return cbErr
	})
	return result, err
}

// LoadPicking loads a transfer with circuit breaker protection.
func (r *PickingRepositoryWithCircuitBreaker) LoadPicking(ctx context.Context, pickingID int64) (barcode.PickingData, error) {
	return protect(ctx, r.circuitBreaker, func() (barcode.PickingData, error) {
		return r.repo.LoadPicking(ctx, pickingID)
	})
}

// FetchEntities fetches records with circuit breaker protection.
func (r *PickingRepositoryWithCircuitBreaker) FetchEntities(ctx context.Context, kind model.Kind, ids []int64) ([]model.Record, error) {
	return protect(ctx, r.circuitBreaker, func() ([]model.Record, error) {
		return r.repo.FetchEntities(ctx, kind, ids)
	})
}

// LookupBarcode searches a barcode with circuit breaker protection.
func (r *PickingRepositoryWithCircuitBreaker) LookupBarcode(ctx context.Context, q barcode.BarcodeQuery) ([]model.Record, error) {
	return protect(ctx, r.circuitBreaker, func() ([]model.Record, error) {
		return r.repo.LookupBarcode(ctx, q)
	})
}

// FetchQuants fetches package content with circuit breaker protection.
func (r *PickingRepositoryWithCircuitBreaker) FetchQuants(ctx context.Context, packageID int64) ([]model.Quant, error) {
	return protect(ctx, r.circuitBreaker, func() ([]model.Quant, error) {
		return r.repo.FetchQuants(ctx, packageID)
	})
}

// Save applies a save command with circuit breaker protection.
func (r *PickingRepositoryWithCircuitBreaker) Save(ctx context.Context, cmd barcode.SaveCommand) (barcode.SaveResult, error) {
	return protect(ctx, r.circuitBreaker, func() (barcode.SaveResult, error) {
		return r.repo.Save(ctx, cmd)
	})
}

// CallAction runs a server action with circuit breaker protection.
func (r *PickingRepositoryWithCircuitBreaker) CallAction(ctx context.Context, pickingID int64, method string, args barcode.ActionArgs) (barcode.ActionResult, error) {
	return protect(ctx, r.circuitBreaker, func() (barcode.ActionResult, error) {
		return r.repo.CallAction(ctx, pickingID, method, args)
	})
}

// GetPicking returns a transfer with circuit breaker protection.
func (r *PickingRepositoryWithCircuitBreaker) GetPicking(ctx context.Context, pickingID int64) (model.Picking, error) {
	return protect(ctx, r.circuitBreaker, func() (model.Picking, error) {
		return r.repo.GetPicking(ctx, pickingID)
	})
}

// ListPickings lists transfers with circuit breaker protection.
func (r *PickingRepositoryWithCircuitBreaker) ListPickings(ctx context.Context, state model.PickingState, limit int) ([]model.Picking, error) {
	return protect(ctx, r.circuitBreaker, func() ([]model.Picking, error) {
		return r.repo.ListPickings(ctx, state, limit)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *PickingRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// LogsRepositoryWithCircuitBreaker wraps LogsRepository with circuit breaker protection.
type LogsRepositoryWithCircuitBreaker struct {
	repo           LogsRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewLogsRepositoryWithCircuitBreaker(repo LogsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Create stores one entry. Writes are dropped while the circuit is open;
// a scan must never fail because the audit trail is down.
func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *model.LogEntry) error {
	return dropWhenOpen(r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	}))
}

// CreateMany stores a batch, dropped while the circuit is open.
func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*model.LogEntry) error {
	return dropWhenOpen(r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, entries)
	}))
}

func dropWhenOpen(err error) error {
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// Query retrieves log entries with circuit breaker protection.
func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	return protect(ctx, r.circuitBreaker, func() ([]model.LogEntry, error) {
		return r.repo.Query(ctx, opts)
	})
}

// Count returns the count of log entries with circuit breaker protection.
func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	return protect(ctx, r.circuitBreaker, func() (int64, error) {
		return r.repo.Count(ctx, opts)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
