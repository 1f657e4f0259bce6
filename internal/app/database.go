package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/guttosm/picking-service/config"
	"github.com/guttosm/picking-service/internal/circuitbreaker"
	"github.com/guttosm/picking-service/internal/metrics"
	"github.com/guttosm/picking-service/internal/repository"
	"github.com/guttosm/picking-service/internal/service"
	"github.com/rs/zerolog/log"
)

// ErrDatabaseDisabled is returned when MongoDB is disabled. Transfers live in
// MongoDB, so the service cannot run without it.
var ErrDatabaseDisabled = errors.New("database is disabled")

// Circuit breaker names, also used as metric labels and readiness checks.
const (
	PickingCircuitBreakerName = "mongodb-pickings"
	LogsCircuitBreakerName    = "mongodb-logs"
)

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	DB                    *repository.MongoDB
	PickingRepo           repository.PickingRepositoryInterface
	LoggingService        service.LoggingService
	PickingCircuitBreaker *circuitbreaker.CircuitBreaker
	LogsCircuitBreaker    *circuitbreaker.CircuitBreaker
}

// InitializeDatabase connects to MongoDB and creates the repositories, each
// behind its own circuit breaker.
func InitializeDatabase(cfg config.DatabaseConfig) (*DatabaseComponents, error) {
	if !cfg.Enabled {
		return nil, ErrDatabaseDisabled
	}

	opts := repository.DefaultOptions()
	opts.UseTransactions = cfg.UseTransactions
	db, err := repository.Connect(context.Background(), cfg.URI, cfg.DatabaseName, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}

	log.Info().
		Str("database", cfg.DatabaseName).
		Bool("transactions", cfg.UseTransactions).
		Msg("Connected to MongoDB")

	if err := db.SetLogsTTL(context.Background(), cfg.LogsTTL); err != nil {
		log.Warn().Err(err).Dur("ttl", cfg.LogsTTL).Msg("Failed to set logs TTL index")
	}

	pickingCB := newCircuitBreaker(cfg, PickingCircuitBreakerName, repository.IsBackendFailure)
	logsCB := newCircuitBreaker(cfg, LogsCircuitBreakerName, nil)

	pickingRepo := repository.NewPickingRepositoryWithCircuitBreaker(repository.NewPickingRepository(db), pickingCB)
	logsRepo := repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), logsCB)

	return &DatabaseComponents{
		DB:                    db,
		PickingRepo:           pickingRepo,
		LoggingService:        service.NewLoggingService(logsRepo),
		PickingCircuitBreaker: pickingCB,
		LogsCircuitBreaker:    logsCB,
	}, nil
}

func newCircuitBreaker(cfg config.DatabaseConfig, name string, isFailure func(error) bool) *circuitbreaker.CircuitBreaker {
	metrics.SetCircuitBreakerState(name, circuitStateValue(circuitbreaker.StateClosed))
	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             name,
		IsFailure:        isFailure,
		OnStateChange:    publishCircuitBreakerState,
	})
}

func publishCircuitBreakerState(name string, _, to circuitbreaker.State) {
	metrics.SetCircuitBreakerState(name, circuitStateValue(to))
}

// circuitStateValue orders the states by severity for the gauge.
func circuitStateValue(s circuitbreaker.State) int {
	switch s {
	case circuitbreaker.StateHalfOpen:
		return 1
	case circuitbreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// Close disconnects from MongoDB.
func (d *DatabaseComponents) Close(ctx context.Context) error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close(ctx)
}
