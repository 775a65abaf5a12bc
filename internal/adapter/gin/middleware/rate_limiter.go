package middleware

import (
	"context"
	"fmt"
	"net/http"

	"user-directory/internal/adapter/ratelimit"
	apperrors "user-directory/pkg/errors"
	"user-directory/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Limiter decides whether the bucket identified by key may spend a token.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Config() ratelimit.Config
}

// RateLimiter returns a Gin middleware that applies a per-client token bucket.
// A nil limiter disables limiting; Redis errors let the request through.
func RateLimiter(limiter Limiter, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		allowed, err := limiter.Allow(c.Request.Context(), clientIP)
		if err != nil {
			logger.WithContext(c.Request.Context(), log).Warn("rate limiter redis error, allowing request",
				zap.String("client_ip", clientIP),
				zap.Error(err),
			)
			c.Next()
			return
		}

		if !allowed {
			cfg := limiter.Config()
			logger.WithContext(c.Request.Context(), log).Warn("rate limit exceeded",
				zap.String("client_ip", clientIP),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   apperrors.CodeRateLimited,
				"message": fmt.Sprintf("Rate limit exceeded: %.2f requests/second (burst capacity: %d)", cfg.RequestsPerSecond, cfg.BurstCapacity),
			})
			return
		}

		c.Next()
	}
}
