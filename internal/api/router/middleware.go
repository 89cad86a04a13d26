package router

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hirenow/hirenow-server/internal/auth"
)

// RequestLogger logs each HTTP request with slog.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		logger.Info("HTTP Request",
			slog.Int("status", c.Writer.Status()),
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.String("query", query),
			slog.String("ip", c.ClientIP()),
			slog.Duration("latency", time.Since(start)),
		)

		if len(c.Errors) > 0 {
			for _, e := range c.Errors {
				logger.Error("Request error", slog.String("error", e.Error()))
			}
		}
	}
}

// AccessGuard gates protected routes: it extracts the bearer token,
// verifies it and attaches the claim email to the request context. A
// missing or empty Authorization header (including the literal "null" some
// clients send) is rejected before any store access.
func AccessGuard(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || header == "null" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token is null"})
			return
		}

		// Token is the segment after the scheme word; the scheme itself
		// is not validated, matching the original surface.
		token := header
		if idx := strings.Index(header, " "); idx >= 0 {
			token = strings.TrimSpace(header[idx+1:])
		}

		email, err := tokens.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token not match"})
			return
		}

		c.Set(auth.ContextEmailKey, email)
		c.Next()
	}
}
