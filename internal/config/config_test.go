package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, StoreFile, cfg.Store.Backend)
	assert.Equal(t, time.Hour, cfg.Store.Retention)
	assert.Equal(t, time.Second, cfg.Scoring.Pace)
	assert.Equal(t, 1, cfg.Scoring.MaxAttempts)
	assert.Equal(t, int64(10485760), cfg.Storage.MaxFileSize)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "8080")
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("SCORING_PACE", "0s")
	t.Setenv("RETENTION", "30m")
	t.Setenv("DB_HOST", "db.internal")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.APIKey())
	assert.Equal(t, time.Duration(0), cfg.Scoring.Pace)
	assert.Equal(t, 30*time.Minute, cfg.Store.Retention)
	assert.Contains(t, cfg.GetDatabaseDSN(), "host=db.internal")
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LLM_PROVIDER", "llama")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "llm provider")
}
