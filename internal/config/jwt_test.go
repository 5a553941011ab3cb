package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTConfig_DefaultValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key")
	t.Setenv("RESULT_TOKEN_TTL_MINUTES", "")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "test-secret-key", cfg.Secret)
	assert.Equal(t, 60, cfg.TTLMinutes, "should use default TTL of 60 minutes")
}

func TestNewJWTConfig_CustomTTL(t *testing.T) {
	tests := []struct {
		name       string
		ttl        string
		expected   int
		wantErr    bool
		errMessage string
	}{
		{name: "custom TTL", ttl: "15", expected: 15},
		{name: "one minute minimum", ttl: "1", expected: 1},
		{name: "zero rejected", ttl: "0", wantErr: true, errMessage: "at least 1 minute"},
		{name: "negative rejected", ttl: "-5", wantErr: true, errMessage: "at least 1 minute"},
		{name: "non-numeric rejected", ttl: "soon", wantErr: true, errMessage: "invalid RESULT_TOKEN_TTL_MINUTES"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "test-secret-key")
			t.Setenv("RESULT_TOKEN_TTL_MINUTES", tt.ttl)

			cfg, err := NewJWTConfig()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMessage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.TTLMinutes)
		})
	}
}

func TestNewJWTConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := NewJWTConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET is required")
}
