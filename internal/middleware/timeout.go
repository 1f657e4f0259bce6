package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/picking-service/internal/i18n"
)

// Timeout puts a deadline on the request context. The handler always runs to
// completion on the request goroutine, so a session is never edited after its
// response was sent; backend calls past the deadline fail instead. A handler
// that wrote nothing by then gets a 504. A non-positive timeout disables it.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	if timeout <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if !c.Writer.Written() && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			abortWithError(c, http.StatusGatewayTimeout, i18n.ErrKeyTimeout)
		}
	}
}
