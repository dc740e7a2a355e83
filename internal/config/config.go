package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Env         string
	DatabaseURL string
	LogLevel    string

	// GatewayJWTSecret enables bearer tokens as an alternative to the
	// X-User-Id header. Empty means header-only identity.
	GatewayJWTSecret   string
	GatewayTokenExpiry time.Duration

	// RedisAddr switches rate limiting from in-process to Redis.
	RedisAddr          string
	RateLimitPerMinute int

	CORSAllowOrigins []string

	DefaultPageSize int
	MaxPageSize     int

	ShutdownTimeout time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		GatewayJWTSecret:   getEnv("GATEWAY_JWT_SECRET", ""),
		GatewayTokenExpiry: getEnvAsDuration("GATEWAY_TOKEN_EXPIRY", 15*time.Minute),

		RedisAddr:          getEnv("REDIS_ADDR", ""),
		RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 120),

		CORSAllowOrigins: getEnvAsList("CORS_ALLOW_ORIGINS", []string{"*"}),

		DefaultPageSize: getEnvAsInt("DEFAULT_PAGE_SIZE", 20),
		MaxPageSize:     getEnvAsInt("MAX_PAGE_SIZE", 100),

		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.DefaultPageSize <= 0 || c.MaxPageSize < c.DefaultPageSize {
		return errors.New("DEFAULT_PAGE_SIZE must be positive and not exceed MAX_PAGE_SIZE")
	}
	if c.IsProduction() && c.GatewayJWTSecret != "" && len(c.GatewayJWTSecret) < 32 {
		return errors.New("GATEWAY_JWT_SECRET must be at least 32 characters in production")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if n, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return n
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return d
	}
	return fallback
}

func getEnvAsList(key string, fallback []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
