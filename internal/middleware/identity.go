package middleware

import (
	"strings"

	"github.com/dimitrije/workspace-api/internal/apperr"
	"github.com/dimitrije/workspace-api/internal/respond"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

const (
	UserIDKey    = "user_id"
	UserIDHeader = "X-User-Id"
)

// TokenValidator resolves a gateway bearer token to a user id.
type TokenValidator interface {
	Validate(token string) (uuid.UUID, error)
}

// Identity trusts the X-User-Id header set by the upstream gateway. When
// tokens is non-nil a Bearer token is accepted as well and wins over the
// header.
func Identity(tokens TokenValidator) drift.HandlerFunc {
	return func(c *drift.Context) {
		if tokens != nil {
			if authHeader := c.GetHeader("Authorization"); authHeader != "" {
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
					respond.Abort(c, apperr.Unauthorized("invalid authorization header format"))
					return
				}
				userID, err := tokens.Validate(parts[1])
				if err != nil {
					respond.Abort(c, apperr.Unauthorized("invalid or expired token"))
					return
				}
				c.Set(UserIDKey, userID)
				c.Next()
				return
			}
		}

		raw := strings.TrimSpace(c.GetHeader(UserIDHeader))
		if raw == "" {
			respond.Abort(c, apperr.Unauthorized("missing %s header", UserIDHeader))
			return
		}
		userID, err := uuid.Parse(raw)
		if err != nil || userID == uuid.Nil {
			respond.Abort(c, apperr.BadRequest("invalid %s header", UserIDHeader))
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

func GetUserID(c *drift.Context) uuid.UUID {
	if id, ok := c.Get(UserIDKey); ok {
		if uid, ok := id.(uuid.UUID); ok {
			return uid
		}
	}
	return uuid.Nil
}
