// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port     int
	LogLevel string
	DevMode  bool

	// External AI API credentials
	GeminiAPIKey     string
	HumeAPIKey       string
	ElevenLabsAPIKey string

	// Minimum spacing between consecutive generation-API requests.
	// Defaults to 4s, which keeps a single process under the 15 req/min
	// free-tier quota.
	GenerationMinInterval time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:                  getEnvAsInt("PORT", 8080),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		DevMode:               getEnvAsBool("DEV_MODE", false),
		GeminiAPIKey:          getEnv("GEMINI_API_KEY", ""),
		HumeAPIKey:            getEnv("HUME_API_KEY", ""),
		ElevenLabsAPIKey:      getEnv("ELEVENLABS_API_KEY", ""),
		GenerationMinInterval: time.Duration(getEnvAsInt("GENERATION_MIN_INTERVAL_MS", 4000)) * time.Millisecond,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.GenerationMinInterval < 0 {
		return fmt.Errorf("generation min interval must not be negative")
	}

	// Note: API keys optional - adapters degrade to local fallbacks when
	// the external services are unreachable or unauthenticated.

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
