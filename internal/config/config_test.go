package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("APP_PORT", "")
	t.Setenv("JWT_ACCESS_EXPIRY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "/accounts/login/", cfg.App.LoginURL)
	assert.Equal(t, 60*time.Minute, cfg.JWT.AccessTTL())
	assert.Equal(t, 5*time.Minute, cfg.Cache.ListTTL)
}

func TestLoad_ProductionRequiresSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_PASSWORD", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	t.Setenv("JWT_SECRET", "a-real-secret")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PASSWORD")

	t.Setenv("DB_PASSWORD", "pw")
	_, err = Load()
	assert.NoError(t, err)
}

func TestLoadDatabaseConfig(t *testing.T) {
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_RETRY_DELAY", "250ms")

	cfg, err := LoadDatabaseConfig()
	require.NoError(t, err)
	assert.Equal(t, 6543, cfg.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryDelay)

	t.Setenv("DB_CONNECT_TIMEOUT", "soon")
	_, err = LoadDatabaseConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_CONNECT_TIMEOUT")
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("X_INT", "notanumber")
	assert.Equal(t, 7, getEnvInt("X_INT", 7))

	t.Setenv("X_BOOL", "false")
	assert.False(t, getEnvBool("X_BOOL", true))

	t.Setenv("X_DUR", "90s")
	assert.Equal(t, 90*time.Second, getEnvDuration("X_DUR", time.Second))
}
