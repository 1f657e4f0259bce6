package app

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/picking-service/config"
	"github.com/guttosm/picking-service/internal/http"
	"github.com/guttosm/picking-service/internal/service"
)

// InitializeRouter builds the HTTP router. db may be nil in tests; the
// readiness probe then checks nothing and audit logging is off.
func InitializeRouter(pickings service.PickingService, tokens service.OperatorTokenService, db *DatabaseComponents, cfg config.Config) *gin.Engine {
	return http.NewRouter(http.NewPickingHandler(pickings), newHealthHandler(db), routerConfig(cfg, db, tokens))
}

func newHealthHandler(db *DatabaseComponents) *http.HealthHandler {
	h := http.NewHealthHandler()
	if db == nil {
		return h
	}
	if db.DB != nil {
		h.RegisterChecker("database", db.DB.Ping)
	}
	h.RegisterCircuitBreaker("picking_store", db.PickingCircuitBreaker)
	h.RegisterCircuitBreaker("logs_store", db.LogsCircuitBreaker)
	return h
}

func routerConfig(cfg config.Config, db *DatabaseComponents, tokens service.OperatorTokenService) http.RouterConfig {
	rc := http.RouterConfig{
		RateLimit:         cfg.Server.RateLimit,
		RateWindow:        cfg.Server.RateWindow,
		EnableAuth:        cfg.Auth.Enabled,
		APIKeys:           cfg.Auth.APIKeys,
		TokenService:      tokens,
		EnableIdempotency: true,
		CORSOrigins:       cfg.Server.CORSOrigins,
		SwaggerUser:       cfg.Server.SwaggerUser,
		SwaggerPass:       cfg.Server.SwaggerPass,
		RequestTimeout:    cfg.Server.RequestTimeout,
	}
	if db != nil {
		rc.LoggingService = db.LoggingService
	}
	return rc
}
