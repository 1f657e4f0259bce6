package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/picking-service/internal/domain/dto"
	"github.com/guttosm/picking-service/internal/i18n"
)

// abortWithError stops the chain with the message of key translated to the
// request locale.
func abortWithError(c *gin.Context, status int, key string) {
	message := i18n.GetTranslator().Translate(key, i18n.GetLocale(c))
	c.AbortWithStatusJSON(status, dto.NewStatusError(status, message).WithRequestID(GetRequestID(c)))
}
