package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dimitrije/workspace-api/internal/services"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdentityApp(tokens TokenValidator) http.Handler {
	app := drift.New()
	app.Use(Identity(tokens))
	app.Get("/protected", func(c *drift.Context) {
		_ = c.JSON(http.StatusOK, map[string]string{"user_id": GetUserID(c).String()})
	})
	return app
}

func TestIdentity_MissingHeader(t *testing.T) {
	app := newIdentityApp(nil)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing X-User-Id header")
	assert.Contains(t, rec.Body.String(), `"errorCode":"UNAUTHORIZED"`)
}

func TestIdentity_InvalidHeader(t *testing.T) {
	app := newIdentityApp(nil)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(UserIDHeader, "not-a-uuid")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIdentity_ValidHeader(t *testing.T) {
	app := newIdentityApp(nil)
	userID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(UserIDHeader, userID.String())
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), userID.String())
}

func TestIdentity_BearerToken(t *testing.T) {
	tokens := services.NewGatewayTokenService("test-secret-key", 15*time.Minute)
	app := newIdentityApp(tokens)
	userID := uuid.New()
	token, err := tokens.Issue(userID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(UserIDHeader, uuid.New().String())
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), userID.String())
}

func TestIdentity_BearerToken_Invalid(t *testing.T) {
	app := newIdentityApp(services.NewGatewayTokenService("test-secret-key", 15*time.Minute))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid or expired token")
}

func TestIdentity_BearerToken_BadFormat(t *testing.T) {
	app := newIdentityApp(services.NewGatewayTokenService("test-secret-key", 15*time.Minute))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid authorization header format")
}
