package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatewayTokenService_IssueAndValidate(t *testing.T) {
	svc := NewGatewayTokenService("test-secret", 15*time.Minute)
	userID := uuid.New()

	token, err := svc.Issue(userID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	got, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
	assert.Equal(t, 15*time.Minute, svc.Expiry())
}

func TestGatewayTokenService_Validate_WrongSecret(t *testing.T) {
	token, err := NewGatewayTokenService("secret-1", time.Minute).Issue(uuid.New())
	require.NoError(t, err)

	_, err = NewGatewayTokenService("secret-2", time.Minute).Validate(token)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse token")
}

func TestGatewayTokenService_Validate_Expired(t *testing.T) {
	svc := NewGatewayTokenService("test-secret", -time.Minute)
	token, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	_, err = svc.Validate(token)

	assert.Error(t, err)
}

func TestGatewayTokenService_Validate_WrongIssuer(t *testing.T) {
	claims := GatewayClaims{
		UserID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = NewGatewayTokenService("test-secret", time.Minute).Validate(token)

	assert.Error(t, err)
}

func TestGatewayTokenService_Validate_Garbage(t *testing.T) {
	_, err := NewGatewayTokenService("test-secret", time.Minute).Validate("not.a.jwt")

	assert.Error(t, err)
}
