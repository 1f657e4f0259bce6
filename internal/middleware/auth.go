package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/picking-service/internal/i18n"
)

// APIKeyHeader carries the key of a scanning device.
const APIKeyHeader = "X-API-Key"

// APIKey reads the device key from X-API-Key, or from an
// "Authorization: ApiKey <key>" header.
func APIKey(c *gin.Context) string {
	if key := strings.TrimSpace(c.GetHeader(APIKeyHeader)); key != "" {
		return key
	}
	if rest, ok := strings.CutPrefix(c.GetHeader("Authorization"), "ApiKey "); ok {
		return strings.TrimSpace(rest)
	}
	return ""
}

// APIKeyAuth lets through requests carrying one of validKeys. With no keys
// configured every request passes.
func APIKeyAuth(validKeys map[string]bool) gin.HandlerFunc {
	keys := make([][]byte, 0, len(validKeys))
	for k, ok := range validKeys {
		if ok {
			keys = append(keys, []byte(k))
		}
	}

	return func(c *gin.Context) {
		if len(keys) == 0 {
			c.Next()
			return
		}

		key := APIKey(c)
		if key == "" {
			abortWithError(c, http.StatusUnauthorized, i18n.ErrKeyAPIKeyRequired)
			return
		}
		if !knownKey(keys, []byte(key)) {
			abortWithError(c, http.StatusUnauthorized, i18n.ErrKeyInvalidAPIKey)
			return
		}
		c.Next()
	}
}

// knownKey compares against every key so the time taken does not reveal
// which prefix matched.
func knownKey(keys [][]byte, key []byte) bool {
	found := 0
	for _, k := range keys {
		found |= subtle.ConstantTimeCompare(k, key)
	}
	return found == 1
}
