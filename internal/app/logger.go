package app

import (
	"github.com/guttosm/picking-service/config"
	"github.com/guttosm/picking-service/internal/logger"
	"github.com/rs/zerolog/log"
)

// ServiceName tags every log line.
const ServiceName = "picking-service"

// InitializeLogger configures the global logger.
func InitializeLogger(cfg config.LogConfig) {
	if err := logger.Init(logger.Options{Level: cfg.Level, Pretty: cfg.Pretty, Service: ServiceName}); err != nil {
		log.Warn().Err(err).Msg("Falling back to info logging")
	}
}
