package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// HeaderUserID identifies the calling tenant. Every /api/v1 route is
	// scoped to this owner.
	HeaderUserID = "X-User-ID"
	// HeaderAPIKeyID optionally names the API key used for the call; it is
	// recorded on traces for audit.
	HeaderAPIKeyID = "X-API-Key-ID"

	ctxOwnerID  = "owner_id"
	ctxAPIKeyID = "api_key_id"
)

// ownerAuth extracts the tenant identity from the request headers. Requests
// without an owner are rejected before any handler runs.
func ownerAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID := c.GetHeader(HeaderUserID)
		if ownerID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing " + HeaderUserID + " header",
			})
			return
		}
		c.Set(ctxOwnerID, ownerID)
		if keyID := c.GetHeader(HeaderAPIKeyID); keyID != "" {
			c.Set(ctxAPIKeyID, keyID)
		}
		c.Next()
	}
}

func ownerID(c *gin.Context) string {
	return c.GetString(ctxOwnerID)
}

func apiKeyID(c *gin.Context) string {
	return c.GetString(ctxAPIKeyID)
}

// requestLogger logs one line per request after completion.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			slog.Error("HTTP request", attrs...)
		} else {
			slog.Info("HTTP request", attrs...)
		}
	}
}

// securityHeaders sets standard security response headers.
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}
