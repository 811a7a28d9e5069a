// Package config loads service configuration from environment
// variables, with an optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the service configuration loaded from environment variables.
type Config struct {
	// Server
	Port     string
	LogLevel string // debug, info, warn, error

	// Provider selection
	Provider string
	Model    string

	// API Keys
	OpenAIKey    string
	AnthropicKey string
	GoogleKey    string

	// Generation defaults
	MaxTokens   int
	Temperature float64

	// Workflow execution
	Timeout     time.Duration
	CallTimeout time.Duration
	Retry       bool

	// Persistence
	OutputDir string
}

// Load loads configuration from environment variables.
// It loads a .env file if present (silent fail if not found).
func Load() (*Config, error) {
	godotenv.Load() // Load .env file if present

	cfg := &Config{
		Port:         getEnvOrDefault("PORT", "8000"),
		LogLevel:     getEnvOrDefault("LOG_LEVEL", "info"),
		Provider:     getEnvOrDefault("FORGE_PROVIDER", "openai"),
		Model:        os.Getenv("DEFAULT_MODEL"),
		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
		GoogleKey:    os.Getenv("GOOGLE_API_KEY"),
		MaxTokens:    getEnvIntOrDefault("MAX_TOKENS", 0),
		Temperature:  getEnvFloatOrDefault("TEMPERATURE", 0.7),
		Timeout:      getEnvDurationOrDefault("FORGE_TIMEOUT", 10*time.Minute),
		CallTimeout:  getEnvDurationOrDefault("FORGE_CALL_TIMEOUT", 2*time.Minute),
		Retry:        getEnvBoolOrDefault("FORGE_RETRY", false),
		OutputDir:    getEnvOrDefault("FORGE_OUTPUT_DIR", "outputs"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	switch c.Provider {
	case "openai":
		if c.OpenAIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for openai provider")
		}
	case "anthropic":
		if c.AnthropicKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for anthropic provider")
		}
		// Anthropic has no image API; image generation falls back to OpenAI.
		if c.OpenAIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for image generation with the anthropic provider")
		}
	case "google":
		if c.GoogleKey == "" {
			return fmt.Errorf("GOOGLE_API_KEY is required for google provider")
		}
	default:
		return fmt.Errorf("unknown provider: %s (must be openai, anthropic, or google)", c.Provider)
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
