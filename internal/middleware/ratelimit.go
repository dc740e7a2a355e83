package middleware

import (
	"github.com/dimitrije/workspace-api/internal/apperr"
	"github.com/dimitrije/workspace-api/internal/ratelimit"
	"github.com/dimitrije/workspace-api/internal/respond"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"
)

// RateLimit limits requests per caller. It must run after Identity. A
// limiter error lets the request through.
func RateLimit(limiter ratelimit.Limiter, log *zap.Logger) drift.HandlerFunc {
	return func(c *drift.Context) {
		key := "anonymous"
		if userID := GetUserID(c); userID != uuid.Nil {
			key = userID.String()
		}

		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			log.Warn("rate limiter unavailable", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			respond.Abort(c, apperr.TooManyRequests("rate limit exceeded"))
			return
		}
		c.Next()
	}
}
