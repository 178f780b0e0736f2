package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, v, err := LoadConfig()
	require.NoError(t, err)
	require.NotNil(t, v)

	assert.Equal(t, 8000, cfg.AppPort)
	assert.Equal(t, "sqlite", cfg.StoreDriver)
	assert.Equal(t, "chat-history-storage", cfg.HistoryNamespace)
	assert.Equal(t, 50, cfg.MaxPersistedSessions)
	assert.Equal(t, "gpt-4o", cfg.FallbackModel)
	assert.Equal(t, "gpt-5-mini", cfg.BaseModel)
	assert.False(t, cfg.UseReasoningModel)
	assert.Equal(t, 60*time.Second, cfg.ChatTimeout)
	assert.False(t, cfg.AutoTitle)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("USE_REASONING_MODEL", "true")
	t.Setenv("CHAT_TIMEOUT", "90s")
	t.Setenv("MAX_PERSISTED_SESSIONS", "10")
	t.Setenv("AUTO_TITLE", "true")

	cfg, _, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.StoreDriver)
	assert.True(t, cfg.UseReasoningModel)
	assert.Equal(t, 90*time.Second, cfg.ChatTimeout)
	assert.Equal(t, 10, cfg.MaxPersistedSessions)
	assert.True(t, cfg.AutoTitle)
}
