package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.NotEmpty(t, cfg.DatabaseURL)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 5*time.Minute, cfg.AvailabilityTTL)
	assert.Equal(t, 20.0, cfg.RateLimitPerSec)
	assert.Equal(t, 40, cfg.RateLimitBurst)
	assert.Equal(t, "migrations", cfg.MigrationsPath)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("AVAILABILITY_CACHE_TTL", "30s")
	t.Setenv("RATE_LIMIT_PER_SEC", "5.5")
	t.Setenv("RATE_LIMIT_BURST", "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.AvailabilityTTL)
	assert.Equal(t, 5.5, cfg.RateLimitPerSec)
	assert.Equal(t, 10, cfg.RateLimitBurst)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("RATE_LIMIT_BURST", "lots")
	t.Setenv("AVAILABILITY_CACHE_TTL", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 40, cfg.RateLimitBurst)
	assert.Equal(t, 5*time.Minute, cfg.AvailabilityTTL)
}
