// Package middleware provides HTTP middleware components for the picking service.
package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/picking-service/internal/i18n"
)

const (
	// IdempotencyKeyHeader is the HTTP header name for idempotency key (RFC standard).
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from the replay cache.
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
	// IdempotencyKeyTTL is the TTL for cached idempotency responses.
	IdempotencyKeyTTL = 5 * time.Minute

	maxIdempotencyKeyLength = 255
)

// cachedResponse stores a cached HTTP response for idempotency.
type cachedResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// IdempotencyConfig holds configuration for idempotency middleware.
type IdempotencyConfig struct {
	Cache   *idempotencyCache
	Enabled bool
}

// DefaultIdempotencyConfig returns default idempotency configuration.
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		Cache:   newIdempotencyCache(IdempotencyKeyTTL),
		Enabled: true,
	}
}

// Idempotency replays the response of a recent request with the same
// Idempotency-Key, method, path, body and credentials. A scanner retrying a
// scan whose response was lost gets the original session state instead of
// counting the barcode twice. A retry that arrives while the first request
// is still running gets 409 and a Retry-After.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.Cache == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" || !mutating(c.Request.Method) {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			abortWithError(c, http.StatusBadRequest, i18n.ErrKeyInvalidRequest)
			return
		}

		fingerprint := requestFingerprint(key, c.Request)
		cached, reserved := cfg.Cache.Reserve(fingerprint)
		switch {
		case cached != nil:
			c.Header(IdempotencyReplayedHeader, "true")
			c.Data(cached.StatusCode, cached.ContentType, cached.Body)
			c.Abort()
			return
		case !reserved:
			c.Header("Retry-After", "1")
			abortWithError(c, http.StatusConflict, i18n.ErrKeyRequestInProgress)
			return
		}

		writer := &recordingWriter{ResponseWriter: c.Writer}
		c.Writer = writer

		defer func() {
			if r := recover(); r != nil {
				cfg.Cache.Release(fingerprint)
				panic(r)
			}
			// Only successful responses are replayed; failures may be retried.
			status := writer.Status()
			if status >= 200 && status < 300 {
				cfg.Cache.Complete(fingerprint, &cachedResponse{
					StatusCode:  status,
					ContentType: writer.Header().Get("Content-Type"),
					Body:        writer.body.Bytes(),
				})
				return
			}
			cfg.Cache.Release(fingerprint)
		}()

		c.Next()
	}
}

func mutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// requestFingerprint hashes the idempotency key with the caller's
// credentials, the method, the path and the body. Scoping by credentials
// keeps two devices reusing a key from seeing each other's sessions.
func requestFingerprint(key string, req *http.Request) string {
	h := sha256.New()
	for _, part := range []string{
		key,
		req.Header.Get("Authorization"),
		req.Header.Get(APIKeyHeader),
		req.Method,
		req.URL.Path,
	} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}

	if req.Body != nil {
		body, _ := io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewReader(body))
		h.Write(body)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// recordingWriter keeps a copy of the response body.
type recordingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *recordingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

