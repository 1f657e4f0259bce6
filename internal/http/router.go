package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/guttosm/picking-service/internal/metrics"
	"github.com/guttosm/picking-service/internal/middleware"
	"github.com/guttosm/picking-service/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterConfig configures the HTTP surface of the service.
type RouterConfig struct {
	// RateLimit requests per RateWindow, per client IP and, with operator
	// tokens, per operator. Zero disables limiting.
	RateLimit  int
	RateWindow time.Duration

	// EnableAuth with APIKeys guards /api with X-API-Key when TokenService
	// is nil. With a TokenService, /api needs an operator token and the keys
	// are only used by the token exchange.
	EnableAuth   bool
	APIKeys      map[string]bool
	TokenService service.OperatorTokenService

	EnableIdempotency bool
	CORSOrigins       []string
	SwaggerUser       string
	SwaggerPass       string

	// RequestTimeout bounds the backend calls of an API request. Zero
	// disables the deadline.
	RequestTimeout time.Duration
	LoggingService service.LoggingService
}

// DefaultRouterConfig returns an open router limited to 100 requests a minute.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:  100,
		RateWindow: time.Minute,
	}
}

var defaultCORSOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}

// NewRouter builds the engine: probes, metrics and docs at the root, the
// scanning API under /api.
func NewRouter(handler *PickingHandler, healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(newCORS(cfg.CORSOrigins))
	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(cfg.LoggingService),
		middleware.ErrorHandler(),
		middleware.ProvideLoggingService(cfg.LoggingService),
	)
	if cfg.RateLimit > 0 {
		router.Use(middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow).RateLimit())
	}

	healthHandler.Register(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", swaggerHandlers(cfg)...)

	api := router.Group("/api", apiMiddleware(cfg)...)
	if handler == nil {
		return router
	}
	routes := NewPickingRoutes(handler, cfg.LoggingService)
	if cfg.TokenService == nil {
		routes.RegisterPublicRoutes(api)
		return router
	}

	auth := NewAuthRoutes(cfg.TokenService)
	auth.RegisterPublicRoutes(api)
	routes.RegisterProtectedRoutes(auth.GetProtectedGroup(api, &cfg), &cfg)
	return router
}

func newCORS(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		origins = defaultCORSOrigins
	}
	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Content-Length", "Accept", "Accept-Encoding",
			"Accept-Language", "Authorization", "Cache-Control", "X-Requested-With",
			middleware.APIKeyHeader, middleware.IdempotencyKeyHeader, middleware.RequestIDHeader,
		},
		ExposeHeaders: []string{
			middleware.RequestIDHeader, middleware.IdempotencyReplayedHeader,
			"Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining",
		},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	})
}

// swaggerHandlers serves the API docs, behind basic auth when credentials
// are configured.
func swaggerHandlers(cfg RouterConfig) []gin.HandlerFunc {
	docs := ginSwagger.WrapHandler(swaggerFiles.Handler)
	if cfg.SwaggerUser == "" || cfg.SwaggerPass == "" {
		return []gin.HandlerFunc{docs}
	}
	return []gin.HandlerFunc{gin.BasicAuth(gin.Accounts{cfg.SwaggerUser: cfg.SwaggerPass}), docs}
}

func apiMiddleware(cfg RouterConfig) []gin.HandlerFunc {
	var chain []gin.HandlerFunc
	if cfg.RequestTimeout > 0 {
		chain = append(chain, middleware.Timeout(cfg.RequestTimeout))
	}
	if cfg.EnableIdempotency {
		chain = append(chain, middleware.Idempotency(middleware.DefaultIdempotencyConfig()))
	}
	if cfg.EnableAuth && cfg.TokenService == nil && len(cfg.APIKeys) > 0 {
		chain = append(chain, middleware.APIKeyAuth(cfg.APIKeys))
	}
	return chain
}
