package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("DB_PASSWORD", "secret")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.HTTPPort)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.False(t, cfg.GuardConfigured())
		assert.False(t, cfg.LLMConfigured())
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("DB_PASSWORD", "secret")
		t.Setenv("HTTP_PORT", "9090")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("GUARD_URL", "http://guard:8000/score")
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("OPENAI_MODEL", "gpt-4o")
		t.Setenv("INFECTION_MODEL", "gpt-4o-mini")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "9090", cfg.HTTPPort)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.True(t, cfg.GuardConfigured())
		assert.True(t, cfg.LLMConfigured())

		m := cfg.Models()
		assert.Equal(t, "gpt-4o", m.Analyst)
		assert.Equal(t, "gpt-4o-mini", m.Infection)
		assert.Equal(t, "gpt-4o", m.Analysis)
	})

	t.Run("invalid port", func(t *testing.T) {
		t.Setenv("DB_PASSWORD", "secret")
		t.Setenv("HTTP_PORT", "not-a-port")

		_, err := Load()
		require.Error(t, err)
	})

	t.Run("missing database password", func(t *testing.T) {
		t.Setenv("DB_PASSWORD", "")

		_, err := Load()
		require.Error(t, err)
	})
}
