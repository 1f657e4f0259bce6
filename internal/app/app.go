// Package app wires configuration, storage, services and the HTTP router.
package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/picking-service/config"
	"github.com/guttosm/picking-service/internal/middleware"
	"github.com/guttosm/picking-service/internal/service"
	"github.com/rs/zerolog/log"
)

// App is the wired application.
type App struct {
	Router   *gin.Engine
	Pickings *service.PickingServiceImpl
	Database *DatabaseComponents
}

// InitializeApp connects to MongoDB and wires the services and the router.
func InitializeApp(cfg config.Config) (*App, error) {
	InitializeLogger(cfg.Log)

	db, err := InitializeDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}

	middleware.InitAsyncLogger(db.LoggingService, middleware.DefaultAsyncLoggerConfig())

	services := InitializeServices(cfg, db.PickingRepo)
	return &App{
		Router:   InitializeRouter(services.Pickings, services.Tokens, db, cfg),
		Pickings: services.Pickings,
		Database: db,
	}, nil
}

// Close saves the open sessions, then flushes the audit log and disconnects
// from MongoDB.
func (a *App) Close(ctx context.Context) {
	if a.Pickings != nil {
		a.Pickings.Close(ctx)
		log.Info().Msg("Scanning sessions saved")
	}
	middleware.StopAsyncLogger()
	if err := a.Database.Close(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to disconnect from MongoDB")
	}
}
