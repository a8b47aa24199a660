package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("UPSTREAM_BASE_URL", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("APP_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000/api", cfg.Upstream.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Upstream.Timeout())
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("UPSTREAM_BASE_URL", "https://workload.example.edu/api/")
	t.Setenv("UPSTREAM_TIMEOUT_SECONDS", "5")
	t.Setenv("REDIS_ADDR", "127.0.0.1:6379")
	t.Setenv("DASHBOARD_LOAD_ON_START", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://workload.example.edu/api", cfg.Upstream.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Upstream.Timeout())
	assert.True(t, cfg.Redis.Enabled())
	assert.False(t, cfg.App.LoadOnStart)
}

func TestLoadRejectsBadRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "one")

	_, err := Load()
	assert.Error(t, err)
}
