package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var managedKeys = []string{
	"APP_ENV", "LOG_LEVEL", "SERVER_PORT", "REDIS_URL",
	"ENVIA_API_URL", "CARRIER_TIMEOUT_SECONDS", "GEOCODE_RETENTION_DAYS",
	"PROXY_ENABLED", "PROXY_HOSTNAME", "PROXY_PORT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range managedKeys {
		os.Unsetenv(k)
	}
	t.Cleanup(func() {
		for _, k := range managedKeys {
			os.Unsetenv(k)
		}
	})
}

// TestLoad_Defaults verifies that default values are used when env vars are missing.
func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	os.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load(".")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "https://api.envia.com", cfg.Envia.APIURL)
	assert.Equal(t, "https://api-test.envia.com", cfg.Envia.SandboxAPIURL)
	assert.Equal(t, "https://geocodes.envia.com", cfg.Envia.GeocodesURL)
	assert.Equal(t, 20*time.Second, cfg.Envia.CarrierTimeout())
	assert.Equal(t, 5*time.Second, cfg.Envia.GeocodeTimeout())
	assert.Equal(t, 7*24*time.Hour, cfg.Geocodes.Retention())
	assert.Equal(t, 2000, cfg.Geocodes.SweepLimit)
	assert.False(t, cfg.Proxy.Enabled)
}

// TestLoad_EnvVars verifies that environment variables override defaults.
func TestLoad_EnvVars(t *testing.T) {
	clearEnv(t)
	os.Setenv("APP_ENV", "production")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("REDIS_URL", "redis://cache:6379/1")
	os.Setenv("ENVIA_API_URL", "https://rates.test")
	os.Setenv("CARRIER_TIMEOUT_SECONDS", "12")
	os.Setenv("PROXY_ENABLED", "true")
	os.Setenv("PROXY_HOSTNAME", "proxy.test")
	os.Setenv("PROXY_PORT", "3128")

	cfg, err := Load(".")
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "redis://cache:6379/1", cfg.Redis.URL)
	assert.Equal(t, "https://rates.test", cfg.Envia.APIURL)
	assert.Equal(t, 12*time.Second, cfg.Envia.CarrierTimeout())
	assert.True(t, cfg.Proxy.Enabled)
	assert.Equal(t, "proxy.test", cfg.Proxy.Hostname)
	assert.Equal(t, 3128, cfg.Proxy.Port)
}

// TestLoad_File verifies that values are loaded from a .env file.
func TestLoad_File(t *testing.T) {
	clearEnv(t)
	content := []byte(`
APP_ENV=staging
LOG_LEVEL=warn
SERVER_PORT=7070
REDIS_URL=redis://staging:6379/0
GEOCODE_RETENTION_DAYS=3
`)
	err := os.WriteFile(".env", content, 0644)
	require.NoError(t, err)
	defer os.Remove(".env")

	cfg, err := Load(".")
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 7070, cfg.ServerPort)
	assert.Equal(t, "redis://staging:6379/0", cfg.Redis.URL)
	assert.Equal(t, 3, cfg.Geocodes.RetentionDays)
}

// TestLoad_ValidationFailure verifies that missing required fields return an error.
func TestLoad_ValidationFailure(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(".")
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "missing required configuration: REDIS_URL")
}
