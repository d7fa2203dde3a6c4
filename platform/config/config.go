// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTSecret() string
}

// AuthServiceConfig provides settings needed by the auth service.
type AuthServiceConfig interface {
	JWTConfig
	GetAccessTokenTTL() time.Duration
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// RedisConfig provides settings for the Redis cache.
type RedisConfig interface {
	GetRedisAddr() string
}

// MinIOConfig provides settings for MinIO S3-compatible storage.
type MinIOConfig interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinIOMaxFileSize() int64
	GetMinIOPublicBaseURL() string
	GetMinioBucketPropertyImages() string
	IsMinIOEnabled() bool
}

// =============================================================================
// Config struct
// =============================================================================

// Config holds all application configuration, loaded from the environment.
type Config struct {
	Env      string
	HTTPAddr string

	DatabaseURL string

	JWTSecret      string
	AccessTokenTTL time.Duration

	CORSAllowAll   bool
	CORSOrigins    []string
	CORSAllowCreds bool

	RedisAddr string

	MinIOEndpoint        string
	MinIOAccessKey       string
	MinIOSecretKey       string
	MinIOUseSSL          bool
	MinIOMaxFileSize     int64
	MinIOPublicBaseURL   string
	BucketPropertyImages string
}

// Load reads configuration from .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("APP_ENV", "development"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret:      os.Getenv("JWT_SECRET"),
		AccessTokenTTL: getEnvDuration("ACCESS_TOKEN_TTL", 7*24*time.Hour),

		CORSAllowAll:   getEnvBool("CORS_ALLOW_ALL", false),
		CORSOrigins:    getEnvList("CORS_ORIGINS", []string{"http://localhost:3000"}),
		CORSAllowCreds: getEnvBool("CORS_ALLOW_CREDENTIALS", true),

		RedisAddr: os.Getenv("REDIS_ADDR"),

		MinIOEndpoint:        os.Getenv("MINIO_ENDPOINT"),
		MinIOAccessKey:       os.Getenv("MINIO_ACCESS_KEY"),
		MinIOSecretKey:       os.Getenv("MINIO_SECRET_KEY"),
		MinIOUseSSL:          getEnvBool("MINIO_USE_SSL", false),
		MinIOMaxFileSize:     getEnvInt64("MINIO_MAX_FILE_SIZE", 10<<20),
		MinIOPublicBaseURL:   os.Getenv("MINIO_PUBLIC_BASE_URL"),
		BucketPropertyImages: getEnv("MINIO_BUCKET_PROPERTY_IMAGES", "property-images"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

// =============================================================================
// Interface implementations
// =============================================================================

func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

func (c *Config) GetJWTSecret() string              { return c.JWTSecret }
func (c *Config) GetAccessTokenTTL() time.Duration  { return c.AccessTokenTTL }

func (c *Config) GetHTTPAddr() string        { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool      { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string   { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool    { return c.CORSAllowCreds }

func (c *Config) GetRedisAddr() string { return c.RedisAddr }

func (c *Config) GetMinIOEndpoint() string             { return c.MinIOEndpoint }
func (c *Config) GetMinIOAccessKey() string            { return c.MinIOAccessKey }
func (c *Config) GetMinIOSecretKey() string            { return c.MinIOSecretKey }
func (c *Config) GetMinIOUseSSL() bool                 { return c.MinIOUseSSL }
func (c *Config) GetMinIOMaxFileSize() int64           { return c.MinIOMaxFileSize }
func (c *Config) GetMinIOPublicBaseURL() string        { return c.MinIOPublicBaseURL }
func (c *Config) GetMinioBucketPropertyImages() string { return c.BucketPropertyImages }
func (c *Config) IsMinIOEnabled() bool {
	return c.MinIOEndpoint != "" && c.MinIOAccessKey != "" && c.MinIOSecretKey != ""
}

// =============================================================================
// Env helpers
// =============================================================================

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt64(key string, fallback int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}
