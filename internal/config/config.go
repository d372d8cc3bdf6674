package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Database
	DatabaseURL string

	// Auth0
	Auth0Domain   string
	Auth0Audience string
	Auth0ClientID string

	// Server
	Port        string
	CORSOrigins []string
	Env         string

	// Advertised in /openapi.json next to localhost. Optional.
	PublicAPIURL string

	// Optional Redis for locks shared between replicas. Empty = in-process locks.
	RedisURL string

	// S3 report archive. Disabled when Bucket is empty.
	S3 S3Config

	Reports           ReportsConfig
	SettlementWorkers int
	RateLimit         RateLimitConfig
}

// S3Config holds AWS S3 configuration
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // Optional: for MinIO/LocalStack local dev
	PresignExpiry   time.Duration
}

// ReportsConfig configures rendered summaries
type ReportsConfig struct {
	AssociationName string
	LogoPath        string
}

// RateLimitConfig limits report and import requests per user
type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		Auth0Domain:   getEnv("AUTH0_DOMAIN", ""),
		Auth0Audience: getEnv("AUTH0_AUDIENCE", ""),
		Auth0ClientID: getEnv("AUTH0_CLIENT_ID", ""),
		Port:          getEnv("PORT", "8080"),
		CORSOrigins:   strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		Env:           getEnv("ENV", "development"),
		PublicAPIURL:  getEnv("PUBLIC_API_URL", ""),
		RedisURL:      getEnv("REDIS_URL", ""),
		S3: S3Config{
			Region:          getEnv("S3_REGION", "us-east-1"),
			Bucket:          getEnv("S3_BUCKET", ""),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			Endpoint:        getEnv("S3_ENDPOINT", ""),
		},
		Reports: ReportsConfig{
			AssociationName: getEnv("ASSOCIATION_NAME", "Residents Association"),
			LogoPath:        getEnv("REPORT_LOGO_PATH", ""),
		},
	}

	var err error
	if cfg.S3.PresignExpiry, err = getDuration("S3_PRESIGN_EXPIRY", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.SettlementWorkers, err = getInt("SETTLEMENT_WORKERS", 4); err != nil {
		return nil, err
	}
	if cfg.RateLimit.RequestsPerMinute, err = getInt("RATE_LIMIT_PER_MINUTE", 30); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Burst, err = getInt("RATE_LIMIT_BURST", 10); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ArchiveEnabled reports whether generated PDFs are stored in S3
func (c *Config) ArchiveEnabled() bool {
	return c.S3.Bucket != ""
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Auth0Domain == "" {
		return fmt.Errorf("AUTH0_DOMAIN is required")
	}
	if c.Auth0Audience == "" {
		return fmt.Errorf("AUTH0_AUDIENCE is required")
	}
	if c.SettlementWorkers < 1 {
		return fmt.Errorf("SETTLEMENT_WORKERS must be at least 1")
	}
	if c.RateLimit.RequestsPerMinute < 1 || c.RateLimit.Burst < 1 {
		return fmt.Errorf("rate limit values must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}
