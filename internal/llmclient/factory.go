// File: internal/llmclient/factory.go
package llmclient

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/xkilldash9x/droidpilot/internal/config"
)

// NewClient is a factory function that creates a Client for the configured
// provider.
func NewClient(ctx context.Context, cfg config.LLMConfig, logger *zap.Logger) (Client, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGeminiClient(ctx, cfg, logger)
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown or unsupported LLM provider %q (supported: %s, %s)",
			cfg.Provider, config.ProviderGemini, config.ProviderOpenAI)
	}
}
