package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds application configuration
type Config struct {
	Port     string `validate:"required,numeric"`
	Env      string
	LogLevel string `validate:"oneof=debug info warn warning error"`

	// SearchPath is the route the HTTP server mounts the search handler on.
	SearchPath string `validate:"required,startswith=/"`

	// VocabularyFile replaces the embedded vocabulary tables when set.
	VocabularyFile string

	PoolSizeMin     int `validate:"min=1"`
	PoolSizeMax     int `validate:"gtefield=PoolSizeMin"`
	NeedsMin        int `validate:"min=1"`
	NeedsMax        int `validate:"gtefield=NeedsMin,max=4"`
	DefaultMinScore int `validate:"min=0,max=98"`

	MetricsEnabled     bool
	CORSAllowedOrigins []string

	// RateLimitRPS of zero disables the per-IP limiter on the search route.
	RateLimitRPS   float64 `validate:"min=0"`
	RateLimitBurst int     `validate:"min=1"`

	ShutdownTimeout time.Duration `validate:"gt=0"`
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", "info")),
		SearchPath:         getEnv("SEARCH_PATH", "/client-search"),
		VocabularyFile:     getEnv("VOCABULARY_FILE", ""),
		PoolSizeMin:        getEnvAsInt("POOL_SIZE_MIN", 5),
		PoolSizeMax:        getEnvAsInt("POOL_SIZE_MAX", 12),
		NeedsMin:           getEnvAsInt("NEEDS_MIN", 1),
		NeedsMax:           getEnvAsInt("NEEDS_MAX", 3),
		DefaultMinScore:    getEnvAsInt("DEFAULT_MIN_SCORE", 70),
		MetricsEnabled:     getEnvAsBool("METRICS_ENABLED", true),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		RateLimitRPS:       getEnvAsFloat("RATE_LIMIT_RPS", 0),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 20),
		ShutdownTimeout:    getEnvAsDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

// Validate checks ranges that would otherwise surface as panics at request time.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(strings.TrimSpace(valueStr)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(strings.TrimSpace(valueStr), 64); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated variable, dropping blank entries.
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
