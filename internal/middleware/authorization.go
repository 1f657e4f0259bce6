package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/picking-service/internal/i18n"
)

// RequireRole lets through operators holding one of roles. It runs after
// JWTAuth; without claims the request is unauthorized.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetOperatorClaims(c)
		switch {
		case !ok:
			abortWithError(c, http.StatusUnauthorized, i18n.ErrKeyUnauthorized)
		case len(roles) > 0 && !claims.HasRole(roles...):
			abortWithError(c, http.StatusForbidden, i18n.ErrKeyForbidden)
		default:
			c.Next()
		}
	}
}
