package middleware

import (
	"time"

	"github.com/dimitrije/workspace-api/internal/respond"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"
)

func RequestLogger(log *zap.Logger) drift.HandlerFunc {
	return func(c *drift.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Duration("duration", time.Since(start)),
		}
		if status, ok := c.Get(respond.StatusKey); ok {
			fields = append(fields, zap.Any("status", status))
		}
		if userID := GetUserID(c); userID != uuid.Nil {
			fields = append(fields, zap.String("user_id", userID.String()))
		}
		log.Info("request", fields...)
	}
}
