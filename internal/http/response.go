package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/picking-service/internal/domain/dto"
	"github.com/guttosm/picking-service/internal/i18n"
	"github.com/guttosm/picking-service/internal/middleware"
)

// ResponseBuilder writes the response envelopes of the API.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder creates a response builder for c.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

// Success sends data wrapped in a success envelope.
func (b *ResponseBuilder) Success(statusCode int, data any) {
	b.c.JSON(statusCode, dto.SuccessResponse{
		Data:      data,
		RequestID: middleware.GetRequestID(b.c),
		Timestamp: time.Now(),
	})
}

// SuccessOK sends data with 200 OK.
func (b *ResponseBuilder) SuccessOK(data any) {
	b.Success(http.StatusOK, data)
}

// Error aborts with the message of messageKey translated to the request
// locale. err is attached to the context for the error handler to log.
func (b *ResponseBuilder) Error(statusCode int, messageKey string, err error) {
	locale := i18n.GetLocale(b.c)
	b.c.Header("Content-Language", locale)
	b.abort(statusCode, dto.NewStatusError(statusCode, i18n.GetTranslator().Translate(messageKey, locale)), err)
}

// Invalid aborts with 400 and the text of err. A validation error also
// names its field.
func (b *ResponseBuilder) Invalid(err error) {
	resp := dto.NewStatusError(http.StatusBadRequest, err.Error())
	var verr *dto.ValidationError
	if errors.As(err, &verr) {
		resp = resp.WithField(verr.Field)
	}
	b.abort(http.StatusBadRequest, resp, err)
}

func (b *ResponseBuilder) abort(statusCode int, resp dto.ErrorResponse, err error) {
	if err != nil {
		_ = b.c.Error(err)
	}
	b.c.AbortWithStatusJSON(statusCode, resp.WithRequestID(middleware.GetRequestID(b.c)))
}
