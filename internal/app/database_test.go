//go:build !integration

package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/guttosm/picking-service/config"
	"github.com/guttosm/picking-service/internal/circuitbreaker"
	"github.com/guttosm/picking-service/internal/metrics"
	"github.com/guttosm/picking-service/internal/repository"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeDatabase_Disabled(t *testing.T) {
	components, err := InitializeDatabase(config.DatabaseConfig{Enabled: false})

	assert.Nil(t, components)
	assert.ErrorIs(t, err, ErrDatabaseDisabled)
}

func TestDatabaseComponents_CloseNil(t *testing.T) {
	var components *DatabaseComponents
	assert.NoError(t, components.Close(context.Background()))
	assert.NoError(t, (&DatabaseComponents{}).Close(context.Background()))
}

func TestNewCircuitBreaker(t *testing.T) {
	ctx := context.Background()

	t.Run("fills unset thresholds", func(t *testing.T) {
		cb := newCircuitBreaker(config.DatabaseConfig{}, "test-defaults", nil)
		defaults := circuitbreaker.DefaultConfig()

		backendDown := errors.New("connection refused")
		for i := 0; i < defaults.FailureThreshold-1; i++ {
			_ = cb.Execute(ctx, func() error { return backendDown })
		}
		assert.Equal(t, circuitbreaker.StateClosed, cb.State())

		_ = cb.Execute(ctx, func() error { return backendDown })
		assert.Equal(t, circuitbreaker.StateOpen, cb.State())
	})

	t.Run("domain errors do not open the picking circuit", func(t *testing.T) {
		cb := newCircuitBreaker(config.DatabaseConfig{CircuitBreakerFailureThreshold: 1}, "test-domain", repository.IsBackendFailure)

		err := cb.Execute(ctx, func() error { return repository.ErrNotFound })
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Equal(t, circuitbreaker.StateClosed, cb.State())

		_ = cb.Execute(ctx, func() error { return errors.New("server selection timeout") })
		assert.Equal(t, circuitbreaker.StateOpen, cb.State())
	})

	t.Run("publishes state changes", func(t *testing.T) {
		name := "test-metrics"
		cb := newCircuitBreaker(config.DatabaseConfig{
			CircuitBreakerFailureThreshold: 1,
			CircuitBreakerTimeout:          time.Millisecond,
		}, name, nil)
		gauge := metrics.CircuitBreakerState.WithLabelValues(name)
		assert.Equal(t, float64(0), testutil.ToFloat64(gauge))

		_ = cb.Execute(ctx, func() error { return errors.New("down") })
		require.Equal(t, circuitbreaker.StateOpen, cb.State())
		assert.Equal(t, float64(2), testutil.ToFloat64(gauge))

		time.Sleep(5 * time.Millisecond)
		require.NoError(t, cb.Execute(ctx, func() error { return nil }))
		assert.Equal(t, circuitbreaker.StateHalfOpen, cb.State())
		assert.Equal(t, float64(1), testutil.ToFloat64(gauge))
	})
}

func TestCircuitStateValue(t *testing.T) {
	assert.Equal(t, 0, circuitStateValue(circuitbreaker.StateClosed))
	assert.Equal(t, 1, circuitStateValue(circuitbreaker.StateHalfOpen))
	assert.Equal(t, 2, circuitStateValue(circuitbreaker.StateOpen))
}
