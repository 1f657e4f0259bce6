package middleware

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// uncompressedPaths are served as-is: the metrics handler negotiates its own
// encoding.
var uncompressedPaths = []string{"/metrics"}

// Compression gzips responses for clients that accept it. Session views are
// small and sent on every scan, so speed wins over ratio.
func Compression() gin.HandlerFunc {
	return gzip.Gzip(gzip.BestSpeed, gzip.WithExcludedPaths(uncompressedPaths))
}
