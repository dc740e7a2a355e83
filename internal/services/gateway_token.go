package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const gatewayIssuer = "workspace-api"

// GatewayTokenService signs and verifies the bearer tokens an upstream
// gateway may send instead of the X-User-Id header.
type GatewayTokenService struct {
	secret []byte
	expiry time.Duration
}

type GatewayClaims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

func NewGatewayTokenService(secret string, expiry time.Duration) *GatewayTokenService {
	return &GatewayTokenService{
		secret: []byte(secret),
		expiry: expiry,
	}
}

func (s *GatewayTokenService) Issue(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := GatewayClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    gatewayIssuer,
			Subject:   userID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign gateway token: %w", err)
	}
	return signed, nil
}

func (s *GatewayTokenService) Validate(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &GatewayClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(gatewayIssuer))
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*GatewayClaims)
	if !ok || !token.Valid || claims.UserID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("invalid token")
	}
	return claims.UserID, nil
}

func (s *GatewayTokenService) Expiry() time.Duration {
	return s.expiry
}
