package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the service, loaded from environment
// variables.
type Config struct {
	Port           string
	DatabaseURL    string
	LogLevel       string
	LogFormat      string
	AllowedOrigins []string
	// WSToken, when set, must be presented by WebSocket subscribers.
	WSToken string
}

// Load reads configuration from the environment, applying defaults for
// everything except DATABASE_URL.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("TROLLEY_PORT", "8080"),
		LogLevel:       getEnv("TROLLEY_LOG_LEVEL", "info"),
		LogFormat:      getEnv("TROLLEY_LOG_FORMAT", "text"),
		AllowedOrigins: splitList(getEnv("TROLLEY_ALLOWED_ORIGINS", "http://localhost:5173")),
		WSToken:        os.Getenv("TROLLEY_WS_TOKEN"),
	}

	if cfg.DatabaseURL = os.Getenv("DATABASE_URL"); cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	return cfg, nil
}

// Validate checks the loaded values and returns a combined error when any
// are out of range.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port %q: must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("invalid log format %q: must be text or json", c.LogFormat))
	}

	if len(c.AllowedOrigins) == 0 {
		problems = append(problems, "at least one allowed origin is required")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
