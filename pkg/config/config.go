// Package config aggregates the gateway's runtime configuration from the
// environment: HTTP listener, database pool, classifier endpoint, and the
// OpenAI-compatible completion endpoint.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/hipocap/gateway/pkg/classifier"
	"github.com/hipocap/gateway/pkg/database"
	"github.com/hipocap/gateway/pkg/llm"
	"github.com/hipocap/gateway/pkg/pipeline"
)

// Config is the fully-resolved gateway configuration.
type Config struct {
	// HTTPPort is the API listen port.
	HTTPPort string

	// LogLevel selects the slog level: debug, info, warn, error.
	LogLevel string

	Database database.Config
	LLM      llm.Config
	Guard    classifier.Config
}

// Load reads the configuration from environment variables. Database settings
// are validated here; the classifier and LLM endpoints are optional and the
// corresponding pipeline stages degrade when they are absent.
func Load() (*Config, error) {
	dbConfig, err := database.LoadConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("database config: %w", err)
	}

	cfg := &Config{
		HTTPPort: getEnvOrDefault("HTTP_PORT", "8080"),
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		Database: dbConfig,
		LLM:      llm.LoadConfigFromEnv(),
		Guard:    classifier.LoadConfigFromEnv(),
	}
	if _, err := strconv.Atoi(cfg.HTTPPort); err != nil {
		return nil, fmt.Errorf("invalid HTTP_PORT %q: %w", cfg.HTTPPort, err)
	}
	return cfg, nil
}

// Models returns the completion model assignment for the pipeline stages.
func (c *Config) Models() pipeline.Models {
	return pipeline.Models{
		Analyst:   c.LLM.Model,
		Infection: c.LLM.InfectionModel,
		Analysis:  c.LLM.AnalysisModel,
	}
}

// GuardConfigured reports whether a classifier endpoint is set.
func (c *Config) GuardConfigured() bool {
	return c.Guard.URL != ""
}

// LLMConfigured reports whether a completion endpoint is usable.
func (c *Config) LLMConfigured() bool {
	return c.LLM.APIKey != ""
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
