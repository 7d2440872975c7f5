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
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "sqlite3", cfg.DatabaseDriver)
	assert.Equal(t, "parley.db", cfg.DatabaseDSN)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 40, cfg.RateLimitBurst)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_ENV", "prod")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("ACCESS_TOKEN_TTL", "1h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, time.Hour, cfg.AccessTokenTTL)
}
