package http

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/picking-service/internal/middleware"
	"github.com/guttosm/picking-service/internal/service"
)

// AuthRoutes handles authentication route registration.
type AuthRoutes struct {
	handler *TokenHandler
	tokens  service.OperatorTokenService
}

// NewAuthRoutes creates a new AuthRoutes instance.
func NewAuthRoutes(tokens service.OperatorTokenService) *AuthRoutes {
	return &AuthRoutes{
		handler: NewTokenHandler(tokens),
		tokens:  tokens,
	}
}

// RegisterPublicRoutes registers the token endpoint. It authenticates with
// an API key, not a token.
func (r *AuthRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/token", r.handler.Token)
}

// GetProtectedGroup returns a router group that requires an operator token,
// rate limited per operator when configured.
func (r *AuthRoutes) GetProtectedGroup(rg *gin.RouterGroup, cfg *RouterConfig) *gin.RouterGroup {
	protected := rg.Group("")
	protected.Use(middleware.JWTAuth(r.tokens))

	if cfg.RateLimit > 0 {
		operatorLimiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		protected.Use(operatorLimiter.OperatorRateLimit())
	}

	return protected
}
