package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/picking-service/internal/domain/dto"
	"github.com/guttosm/picking-service/internal/i18n"
	"github.com/guttosm/picking-service/internal/middleware"
	"github.com/guttosm/picking-service/internal/service"
)

// TokenHandler issues operator access tokens.
type TokenHandler struct {
	tokens service.OperatorTokenService
}

// NewTokenHandler creates a new token handler.
func NewTokenHandler(tokens service.OperatorTokenService) *TokenHandler {
	return &TokenHandler{tokens: tokens}
}

// Token handles POST /api/auth/token requests.
//
// @Summary      Issue an operator token
// @Description  Exchanges a device API key for an access token naming the operator at the scanner. The operator id is recorded in every audit log entry of the requests made with the token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        X-API-Key header string true "Device API key"
// @Param        request body dto.TokenRequest true "Operator"
// @Success      200 {object} dto.SuccessResponse{data=dto.TokenResponse}
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid operator or role"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - invalid API key"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/auth/token [post]
func (h *TokenHandler) Token(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequest[dto.TokenRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	resp, err := h.tokens.Exchange(middleware.APIKey(c), *req)
	if err != nil {
		var verr *dto.ValidationError
		switch {
		case errors.As(err, &verr):
			builder.Invalid(err)
		case errors.Is(err, service.ErrInvalidAPIKey):
			middleware.Audit(c, middleware.ActionToken, "Token request rejected", err, map[string]any{
				"operator_id": req.OperatorID,
			})
			builder.Error(http.StatusUnauthorized, i18n.ErrKeyInvalidAPIKey, err)
		default:
			builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		}
		return
	}

	c.Set(middleware.ContextOperatorID, req.OperatorID)
	middleware.Audit(c, middleware.ActionToken, "Operator token issued", nil, map[string]any{
		"roles": req.Roles,
	})

	builder.SuccessOK(resp)
}
