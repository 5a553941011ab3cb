// Package config provides environment-based configuration for the server
// and CLI.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Server holds runtime configuration for the HTTP server and the advisory
// passes. All values come from the environment; godotenv loads a .env file
// before this runs.
type Server struct {
	// Port the HTTP server listens on.
	Port int
	// APIKey is the Gemini API key. Empty means advisory passes are
	// disabled and every request takes the numeric path.
	APIKey string
	// DatabaseURL is an optional PostgreSQL URL for loading the candidate
	// catalog. Empty means the embedded catalog is used.
	DatabaseURL string
	// AdvisoryTimeout bounds each advisory model call.
	AdvisoryTimeout time.Duration
}

// LoadServer reads server configuration from the environment.
// PORT defaults to 8080 and ADVISORY_TIMEOUT_SECONDS to 25.
func LoadServer() (*Server, error) {
	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		port = p
	}

	timeoutSeconds := 25
	if timeoutStr := os.Getenv("ADVISORY_TIMEOUT_SECONDS"); timeoutStr != "" {
		t, err := strconv.Atoi(timeoutStr)
		if err != nil {
			return nil, fmt.Errorf("invalid ADVISORY_TIMEOUT_SECONDS: %v", err)
		}
		timeoutSeconds = t
	}

	cfg := &Server{
		Port:            port,
		APIKey:          os.Getenv("GEMINI_API_KEY"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		AdvisoryTimeout: time.Duration(timeoutSeconds) * time.Second,
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Server) normalize() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got: %d", c.Port)
	}
	if c.AdvisoryTimeout < time.Second {
		return fmt.Errorf("ADVISORY_TIMEOUT_SECONDS must be at least 1, got: %s", c.AdvisoryTimeout)
	}
	return nil
}
