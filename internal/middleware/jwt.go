package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/picking-service/internal/domain/dto"
	"github.com/guttosm/picking-service/internal/i18n"
	"github.com/guttosm/picking-service/internal/logger"
	"github.com/guttosm/picking-service/internal/service"
)

// Context keys set by the authentication and picking handlers.
const (
	ContextOperatorID     = "operator_id"
	ContextOperatorClaims = "operator_claims"
	ContextPickingID      = "picking_id"
)

// JWTAuth requires a valid operator token in "Authorization: Bearer <token>"
// and stores its claims on the context.
func JWTAuth(tokens service.OperatorTokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		raw = strings.TrimSpace(raw)
		switch {
		case c.GetHeader("Authorization") == "" || (ok && raw == ""):
			abortWithError(c, http.StatusUnauthorized, i18n.ErrKeyTokenRequired)
			return
		case !ok:
			abortWithError(c, http.StatusUnauthorized, i18n.ErrKeyInvalidToken)
			return
		}

		claims, err := tokens.Validate(raw)
		if err != nil {
			_ = c.Error(err)
			abortWithError(c, http.StatusUnauthorized, i18n.ErrKeyInvalidToken)
			return
		}

		c.Set(ContextOperatorID, claims.OperatorID)
		c.Set(ContextOperatorClaims, claims)
		c.Request = c.Request.WithContext(logger.WithOperator(c.Request.Context(), claims.OperatorID))
		c.Next()
	}
}

// GetOperatorID returns the authenticated operator, or "" without authentication.
func GetOperatorID(c *gin.Context) string {
	return c.GetString(ContextOperatorID)
}

// GetOperatorClaims returns the claims of the authenticated operator.
func GetOperatorClaims(c *gin.Context) (*dto.OperatorClaims, bool) {
	v, ok := c.Get(ContextOperatorClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*dto.OperatorClaims)
	return claims, ok
}

// SetPickingID records the transfer a request works on for request and audit logs.
func SetPickingID(c *gin.Context, pickingID int64) {
	c.Set(ContextPickingID, pickingID)
}

// GetPickingID returns the transfer recorded by SetPickingID.
func GetPickingID(c *gin.Context) int64 {
	return c.GetInt64(ContextPickingID)
}
