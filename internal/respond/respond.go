// Package respond writes JSON bodies and the API envelope on drift contexts.
package respond

import (
	"net/http"
	"time"

	"github.com/dimitrije/workspace-api/internal/apperr"
	"github.com/dimitrije/workspace-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"
)

// StatusKey holds the status written for the request, read back by the
// request logger.
const StatusKey = "response_status"

// JSON writes v as-is. Read endpoints use it for raw resources and pages.
func JSON(c *drift.Context, status int, v any) {
	c.Set(StatusKey, status)
	_ = c.JSON(status, v)
}

// OK writes a success envelope.
func OK(c *drift.Context, status int, message string, data any) {
	JSON(c, status, dto.APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC(),
		Path:      path(c),
	})
}

// Error maps err to its status and code and writes a failure envelope.
// Errors that are not exceptions are logged and reported as unexpected
// without leaking their text.
func Error(c *drift.Context, err error) {
	status := apperr.StatusCode(err)
	if status >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", path(c)),
			zap.Error(err),
		)
	}
	JSON(c, status, dto.APIResponse{
		Success:   false,
		Message:   apperr.Message(err),
		ErrorCode: apperr.Code(err),
		Timestamp: time.Now().UTC(),
		Path:      path(c),
	})
}

// Abort writes a failure envelope and stops the handler chain.
func Abort(c *drift.Context, err error) {
	Error(c, err)
	c.Abort()
}

func path(c *drift.Context) string {
	if c.Request == nil || c.Request.URL == nil {
		return ""
	}
	return c.Request.URL.Path
}
