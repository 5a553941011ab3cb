package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServer_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("ADVISORY_TIMEOUT_SECONDS", "")

	cfg, err := LoadServer()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 8080, cfg.Port)
	assert.Empty(t, cfg.APIKey)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, 25*time.Second, cfg.AdvisoryTimeout)
}

func TestLoadServer_CustomValues(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("DATABASE_URL", "postgres://localhost/relomatcher")
	t.Setenv("ADVISORY_TIMEOUT_SECONDS", "10")

	cfg, err := LoadServer()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, "postgres://localhost/relomatcher", cfg.DatabaseURL)
	assert.Equal(t, 10*time.Second, cfg.AdvisoryTimeout)
}

func TestLoadServer_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-number")

	_, err := LoadServer()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid PORT")
}

func TestLoadServer_PortOutOfRange(t *testing.T) {
	t.Setenv("PORT", "70000")
	t.Setenv("ADVISORY_TIMEOUT_SECONDS", "")

	_, err := LoadServer()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT must be between")
}

func TestLoadServer_InvalidTimeout(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ADVISORY_TIMEOUT_SECONDS", "zero")

	_, err := LoadServer()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid ADVISORY_TIMEOUT_SECONDS")
}

func TestLoadServer_TimeoutTooShort(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ADVISORY_TIMEOUT_SECONDS", "0")

	_, err := LoadServer()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 1")
}
