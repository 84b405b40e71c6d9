package middleware

import (
	"fmt"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
)

// CacheControl sets the Cache-Control header for responses, usually static assets.
func CacheControl(maxAgeSeconds int) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d", maxAgeSeconds))
		c.Next()
	}
}

// StaticCacheControl caches fingerprinted bundle assets for a long time and
// forces revalidation of HTML so a new deploy is picked up immediately.
func StaticCacheControl(assetMaxAgeSeconds int) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch ext := strings.ToLower(path.Ext(c.Request.URL.Path)); ext {
		case "", ".html":
			c.Header("Cache-Control", "no-cache")
		default:
			c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d", assetMaxAgeSeconds))
		}
		c.Next()
	}
}
