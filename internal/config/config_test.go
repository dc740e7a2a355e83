package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/workspace")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 20, cfg.DefaultPageSize)
	assert.Equal(t, 100, cfg.MaxPageSize)
	assert.Equal(t, 15*time.Minute, cfg.GatewayTokenExpiry)
	assert.Equal(t, 120, cfg.RateLimitPerMinute)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/workspace")
	t.Setenv("PORT", "9090")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "60")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("MAX_PAGE_SIZE", "not-a-number")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 60, cfg.RateLimitPerMinute)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowOrigins)
	assert.Equal(t, 100, cfg.MaxPageSize)
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()

	assert.EqualError(t, err, "DATABASE_URL is required")
}

func TestLoad_ShortSecretInProduction(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/workspace")
	t.Setenv("ENV", "production")
	t.Setenv("GATEWAY_JWT_SECRET", "short")

	_, err := Load()

	assert.Error(t, err)
}

func TestLoad_InvalidPageSizes(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/workspace")
	t.Setenv("DEFAULT_PAGE_SIZE", "50")
	t.Setenv("MAX_PAGE_SIZE", "10")

	_, err := Load()

	assert.Error(t, err)
}
