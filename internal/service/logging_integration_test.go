//go:build integration

package service

import (
	"context"
	"testing"
	"time"

	"github.com/guttosm/picking-service/internal/circuitbreaker"
	"github.com/guttosm/picking-service/internal/domain/model"
	"github.com/guttosm/picking-service/internal/repository"
	"github.com/guttosm/picking-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingService_Integration(t *testing.T) {
	ctx := context.Background()

	container, err := testutil.GetSharedMongoDB(ctx)
	if err != nil {
		t.Skipf("mongodb unavailable: %v", err)
	}
	defer func() {
		_ = testutil.CleanupSharedMongoDB(ctx)
	}()

	db, err := repository.NewMongoDB(container.URI, testutil.SanitizeDBName(t.Name()))
	require.NoError(t, err)
	defer func() {
		_ = db.Close(ctx)
	}()

	breaker := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: 2,
		SuccessThreshold: 1,
		Timeout:          100 * time.Millisecond,
		Name:             "test-logs",
	})
	svc := NewLoggingService(repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), breaker))

	require.NoError(t, svc.CreateLogs(ctx, []*model.LogEntry{
		{Level: "info", Message: "barcode scanned", OperatorID: "op-9", PickingID: 42, ActionType: "scan"},
		nil,
		{Level: "info", Message: "picking validated", OperatorID: "op-9", PickingID: 42, ActionType: "validate"},
		{Level: "error", Message: "POST /api/pickings/42/validate", RequestID: "req-42", StatusCode: 503},
	}))

	entries, err := svc.QueryLogs(ctx, model.LogQueryOptions{PickingID: 42, ActionType: "validate"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "op-9", entries[0].OperatorID)

	entries, err = svc.QueryLogs(ctx, model.LogQueryOptions{Level: "error"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "req-42", entries[0].RequestID)

	count, err := svc.CountLogs(ctx, model.LogQueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
