// Package config provides JWT configuration functionality.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// JWTConfig holds configuration for result-token generation and validation.
type JWTConfig struct {
	Secret     string
	TTLMinutes int
}

// NewJWTConfig creates a JWT configuration from environment variables.
// It reads JWT_SECRET (required) and RESULT_TOKEN_TTL_MINUTES (default: 60).
func NewJWTConfig() (*JWTConfig, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	ttlStr := os.Getenv("RESULT_TOKEN_TTL_MINUTES")
	if ttlStr == "" {
		ttlStr = "60" // default
	}

	ttlMinutes, err := strconv.Atoi(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid RESULT_TOKEN_TTL_MINUTES: %v", err)
	}

	config := &JWTConfig{
		Secret:     secret,
		TTLMinutes: ttlMinutes,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("JWT_SECRET cannot be empty")
	}
	if c.TTLMinutes < 1 {
		return fmt.Errorf("RESULT_TOKEN_TTL_MINUTES must be at least 1 minute, got: %d", c.TTLMinutes)
	}
	return nil
}
