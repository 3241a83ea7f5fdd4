package middleware

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// Compression gzips responses and inflates gzip encoded request bodies.
// Streaming endpoints are excluded so events are flushed as they happen.
func Compression(streamPaths ...string) gin.HandlerFunc {
	opts := []gzip.Option{gzip.WithDecompressFn(gzip.DefaultDecompressHandle)}
	if len(streamPaths) > 0 {
		opts = append(opts, gzip.WithExcludedPaths(streamPaths))
	}
	return gzip.Gzip(gzip.DefaultCompression, opts...)
}
