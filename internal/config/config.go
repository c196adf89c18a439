// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds the entire application configuration.
type Config struct {
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
	ADB    ADBConfig    `mapstructure:"adb" yaml:"adb"`
	LLM    LLMConfig    `mapstructure:"llm" yaml:"llm"`
	Agent  AgentConfig  `mapstructure:"agent" yaml:"agent"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color codes for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// ADBConfig holds settings for the device control channel.
type ADBConfig struct {
	// Path points at the adb binary. When empty the binary is resolved from
	// $ANDROID_HOME/platform-tools and then $PATH.
	Path string `mapstructure:"path" yaml:"path"`
	// Serial pins the session to a specific device. Required when more than
	// one device is connected.
	Serial string `mapstructure:"serial" yaml:"serial"`
	// DumpDir is where pulled UI hierarchy dumps are written.
	DumpDir string `mapstructure:"dump_dir" yaml:"dump_dir"`
	// CommandTimeout bounds a single adb invocation. Zero means no bound.
	CommandTimeout time.Duration `mapstructure:"command_timeout" yaml:"command_timeout"`
}

// LLMProvider defines the supported LLM providers.
type LLMProvider string

const (
	ProviderGemini LLMProvider = "gemini"
	ProviderOpenAI LLMProvider = "openai"
)

// LLMConfig defines the configuration for the decision-making model.
type LLMConfig struct {
	Provider    LLMProvider   `mapstructure:"provider" yaml:"provider"`
	Model       string        `mapstructure:"model" yaml:"model"`
	APIKey      string        `mapstructure:"api_key" yaml:"-"`
	Endpoint    string        `mapstructure:"endpoint" yaml:"endpoint"`
	APITimeout  time.Duration `mapstructure:"api_timeout" yaml:"api_timeout"`
	Temperature float32       `mapstructure:"temperature" yaml:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens" yaml:"max_tokens"`
}

// AgentConfig holds settings for the automation loop.
type AgentConfig struct {
	// PromptFile is the path to the system instructions sent to the model.
	PromptFile string `mapstructure:"prompt_file" yaml:"prompt_file"`
	// MaxSteps caps the number of loop iterations. Zero disables the cap.
	MaxSteps int `mapstructure:"max_steps" yaml:"max_steps"`
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// This should not happen with defaults, but good to be safe.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for various configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "droidpilot")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	// -- ADB --
	v.SetDefault("adb.path", "")
	v.SetDefault("adb.serial", "")
	v.SetDefault("adb.dump_dir", ".")
	v.SetDefault("adb.command_timeout", "30s")

	// -- LLM --
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.model", "gemini-2.5-flash")
	v.SetDefault("llm.endpoint", "")
	v.SetDefault("llm.api_timeout", "5m")
	v.SetDefault("llm.temperature", 0.2)
	v.SetDefault("llm.max_tokens", 1024)

	// -- Agent --
	v.SetDefault("agent.prompt_file", "prompt.txt")
	v.SetDefault("agent.max_steps", 50)
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config

	// Bind environment variables for sensitive data.
	v.BindEnv("llm.api_key", "DROIDPILOT_LLM_API_KEY")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Manually load the key if Unmarshal didn't pick it up.
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("DROIDPILOT_LLM_API_KEY")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate performs sanity checks that cannot be expressed as defaults.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("unsupported llm.provider %q (supported: %s, %s)",
			c.LLM.Provider, ProviderGemini, ProviderOpenAI)
	}
	if c.Agent.MaxSteps < 0 {
		return fmt.Errorf("agent.max_steps must be >= 0, got %d", c.Agent.MaxSteps)
	}
	return nil
}
