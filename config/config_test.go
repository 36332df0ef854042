package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "sqlite://esg_data.db", cfg.DatabaseURL)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, 0, cfg.MaxRows)
	assert.Equal(t, "default", cfg.Theme)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "sqlite:///tmp/other.db")
	t.Setenv("MAX_TOKENS", "512")
	t.Setenv("AI_MODEL", "claude-sonnet-4-5")

	cfg := DefaultConfig()
	cfg.applyEnv()

	assert.Equal(t, "sqlite:///tmp/other.db", cfg.DatabaseURL)
	assert.Equal(t, 512, cfg.MaxTokens)
	assert.Equal(t, "claude-sonnet-4-5", cfg.Model)
}

func TestInvalidMaxTokensIgnored(t *testing.T) {
	t.Setenv("MAX_TOKENS", "lots")

	cfg := DefaultConfig()
	cfg.applyEnv()
	require.Equal(t, 2000, cfg.MaxTokens)
}
