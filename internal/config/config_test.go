package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/condo")
	t.Setenv("AUTH0_DOMAIN", "condo.eu.auth0.com")
	t.Setenv("AUTH0_AUDIENCE", "https://api.condo.local")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 4, cfg.SettlementWorkers)
	assert.Equal(t, 15*time.Minute, cfg.S3.PresignExpiry)
	assert.Equal(t, 30, cfg.RateLimit.RequestsPerMinute)
	assert.False(t, cfg.ArchiveEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("SETTLEMENT_WORKERS", "8")
	t.Setenv("S3_BUCKET", "condo-reports")
	t.Setenv("S3_PRESIGN_EXPIRY", "1h")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.SettlementWorkers)
	assert.True(t, cfg.ArchiveEnabled())
	assert.Equal(t, time.Hour, cfg.S3.PresignExpiry)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"missing database", "DATABASE_URL", ""},
		{"bad workers", "SETTLEMENT_WORKERS", "many"},
		{"zero workers", "SETTLEMENT_WORKERS", "0"},
		{"bad expiry", "S3_PRESIGN_EXPIRY", "soon"},
		{"zero burst", "RATE_LIMIT_BURST", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
