package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sessionView = `{"data":{"picking":{"id":1,"name":"WH/INT/00001"},"lines":[]}}`

func compressionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Compression())
	router.GET("/api/pickings/:id", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(sessionView))
	})
	router.GET("/metrics", func(c *gin.Context) {
		c.String(http.StatusOK, "picking_sessions_active 1")
	})
	return router
}

func TestCompression_GzipClients(t *testing.T) {
	for _, accept := range []string{"gzip", "gzip, deflate", "br;q=1.0, gzip;q=0.8"} {
		t.Run(accept, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/pickings/1", nil)
			req.Header.Set("Accept-Encoding", accept)
			w := httptest.NewRecorder()

			compressionRouter().ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
			assert.Contains(t, w.Header().Get("Vary"), "Accept-Encoding")

			zr, err := gzip.NewReader(w.Body)
			require.NoError(t, err)
			body, err := io.ReadAll(zr)
			require.NoError(t, err)
			assert.Equal(t, sessionView, string(body))
		})
	}
}

func TestCompression_Skipped(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		accept string
		want   string
	}{
		{"client without gzip", "/api/pickings/1", "", sessionView},
		{"metrics negotiate their own encoding", "/metrics", "gzip", "picking_sessions_active 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.accept != "" {
				req.Header.Set("Accept-Encoding", tt.accept)
			}
			w := httptest.NewRecorder()

			compressionRouter().ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Empty(t, w.Header().Get("Content-Encoding"))
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}
