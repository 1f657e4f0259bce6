package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/guttosm/picking-service/internal/barcode"
	"github.com/guttosm/picking-service/internal/circuitbreaker"
	"github.com/guttosm/picking-service/internal/domain/dto"
	"github.com/guttosm/picking-service/internal/i18n"
	"github.com/guttosm/picking-service/internal/repository"
	"github.com/guttosm/picking-service/internal/service"
)

// pickingErrorStatus maps a picking service error to an HTTP status and a
// message key. Fatal engine errors are internal errors; any other store
// failure means the backend is unavailable.
func pickingErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound, i18n.ErrKeySessionNotFound
	case errors.Is(err, service.ErrPickingNotFound), errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, i18n.ErrKeyPickingNotFound
	case errors.Is(err, barcode.ErrLineNotFound):
		return http.StatusNotFound, i18n.ErrKeyLineNotFound
	case errors.Is(err, service.ErrPickingClosed), errors.Is(err, barcode.ErrClosed):
		return http.StatusConflict, i18n.ErrKeyPickingClosed
	case errors.Is(err, repository.ErrInvalidAction):
		return http.StatusConflict, i18n.ErrKeyConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, i18n.ErrKeyTimeout
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		return http.StatusServiceUnavailable, i18n.ErrKeyBackendUnavailable
	case barcode.IsFatal(err):
		return http.StatusInternalServerError, i18n.ErrKeyInternalError
	case repository.IsBackendFailure(err):
		return http.StatusServiceUnavailable, i18n.ErrKeyBackendUnavailable
	default:
		return http.StatusInternalServerError, i18n.ErrKeyInternalError
	}
}

// writeError sends err as an error response. Validation errors carry their
// own message.
func writeError(builder *ResponseBuilder, err error) {
	var verr *dto.ValidationError
	if errors.As(err, &verr) {
		builder.Invalid(err)
		return
	}
	status, key := pickingErrorStatus(err)
	builder.Error(status, key, err)
}
