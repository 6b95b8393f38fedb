package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("UPSTREAM_BASE_URL", "http://analytics.internal")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, ":8080", cfg.AppAddr)
	assert.Equal(t, "./data/reports", cfg.ReportsDir)
	assert.Equal(t, 3*time.Second, cfg.OpenCooldown)
	assert.Equal(t, 720*time.Hour, cfg.ReportRetention)
	assert.Equal(t, 10*time.Minute, cfg.AnalyticsCacheTTL)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigRequiresUpstreamBaseURL(t *testing.T) {
	t.Setenv("UPSTREAM_BASE_URL", "")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigProductionRequiresAPIKey(t *testing.T) {
	t.Setenv("UPSTREAM_BASE_URL", "http://analytics.internal")
	t.Setenv("APP_ENV", "production")
	t.Setenv("API_KEY_HASH", "")

	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("API_KEY_HASH", "$2a$10$abcdefghijklmnopqrstuv")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}
