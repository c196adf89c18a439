// File: internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.Equal(t, "droidpilot", cfg.Logger.ServiceName)

	assert.Equal(t, ".", cfg.ADB.DumpDir)
	assert.Equal(t, 30*time.Second, cfg.ADB.CommandTimeout)
	assert.Empty(t, cfg.ADB.Serial)

	assert.Equal(t, ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, 5*time.Minute, cfg.LLM.APITimeout)

	assert.Equal(t, "prompt.txt", cfg.Agent.PromptFile)
	assert.Equal(t, 50, cfg.Agent.MaxSteps)
}

func TestNewConfigFromViper_Overrides(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("adb.serial", "emulator-5554")
	v.Set("llm.provider", "openai")
	v.Set("llm.endpoint", "http://127.0.0.1:11434/v1")
	v.Set("agent.max_steps", 10)

	cfg, err := NewConfigFromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "emulator-5554", cfg.ADB.Serial)
	assert.Equal(t, ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "http://127.0.0.1:11434/v1", cfg.LLM.Endpoint)
	assert.Equal(t, 10, cfg.Agent.MaxSteps)
}

func TestNewConfigFromViper_APIKeyFromEnv(t *testing.T) {
	t.Setenv("DROIDPILOT_LLM_API_KEY", "sk-test-key")

	v := viper.New()
	SetDefaults(v)

	cfg, err := NewConfigFromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "sk-test-key", cfg.LLM.APIKey)
}

func TestValidate_UnsupportedProvider(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.LLM.Provider = "ollama-classic"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "llm.provider")
}

func TestValidate_NegativeMaxSteps(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Agent.MaxSteps = -1
	require.Error(t, cfg.Validate())
}
