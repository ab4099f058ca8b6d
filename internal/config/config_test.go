package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hustlesynth/synth-backend/internal/config"
)

func TestLoadRequiresProviderAPIKey(t *testing.T) {
	t.Setenv("PROVIDER_API_KEY", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PROVIDER_API_KEY")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PROVIDER_API_KEY", "sk-test")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "web/static", cfg.Server.StaticDir)
	assert.Equal(t, "sk-test", cfg.Provider.APIKey)
	assert.NotEmpty(t, cfg.Provider.BaseURL)
	assert.NotEmpty(t, cfg.Provider.Model)
	assert.Equal(t, 30*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, 10, cfg.Chat.HistoryWindow)
	assert.NotEmpty(t, cfg.Chat.SystemPrompt)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, time.Minute, cfg.Session.SweepInterval)
}

func TestLoadPortVariants(t *testing.T) {
	t.Setenv("PROVIDER_API_KEY", "sk-test")

	t.Setenv("PORT", "9000")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Addr)

	t.Setenv("PORT", "127.0.0.1:9000")
	cfg, err = config.Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("PROVIDER_API_KEY", "sk-test")

	cases := map[string]string{
		"PROVIDER_TIMEOUT":     "soon",
		"PROVIDER_MAX_TOKENS":  "many",
		"PROVIDER_TEMPERATURE": "warm",
		"HISTORY_WINDOW":       "-3",
		"SESSION_TTL":          "later",
	}

	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := config.Load()
			require.Error(t, err)
		})
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PROVIDER_API_KEY", "sk-test")
	t.Setenv("PROVIDER_MODEL", "gpt-4o")
	t.Setenv("HISTORY_WINDOW", "25")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("REAPER_INTERVAL", "30s")
	t.Setenv("SYSTEM_PROMPT", "Be terse.")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", cfg.Provider.Model)
	assert.Equal(t, 25, cfg.Chat.HistoryWindow)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 30*time.Second, cfg.Session.SweepInterval)
	assert.Equal(t, "Be terse.", cfg.Chat.SystemPrompt)
}
