// File: internal/llmclient/gemini.go
package llmclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/xkilldash9x/droidpilot/internal/config"
)

// GeminiClient implements Client against the Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
	cfg    config.LLMConfig
	logger *zap.Logger
}

var _ Client = (*GeminiClient)(nil)

// NewGeminiClient initializes the client.
func NewGeminiClient(ctx context.Context, cfg config.LLMConfig, logger *zap.Logger) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required (set DROIDPILOT_LLM_API_KEY)")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.APITimeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.APITimeout}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  cfg.Model,
		cfg:    cfg,
		logger: logger.Named("llmclient.gemini"),
	}, nil
}

// Decide sends the conversation to Gemini and returns the text of the first
// candidate. Transient transport failures are retried with backoff.
func (c *GeminiClient) Decide(ctx context.Context, system string, history []Message) (string, error) {
	contents := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		role := genai.Role(genai.RoleUser)
		if msg.Role == RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(msg.Content, role))
	}

	genCfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr(c.cfg.Temperature),
		ResponseMIMEType:  "application/json",
	}
	if c.cfg.MaxTokens > 0 {
		genCfg.MaxOutputTokens = int32(c.cfg.MaxTokens)
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 2 * time.Minute
	b.MaxInterval = 30 * time.Second

	var text string
	operation := func() error {
		start := time.Now()
		resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, genCfg)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			c.logger.Warn("Gemini request failed, retrying...", zap.Error(err))
			return err
		}

		text = resp.Text()
		if text == "" {
			return backoff.Permanent(errors.New("gemini API returned no text candidates"))
		}

		c.logger.Info("LLM generation complete (Gemini)",
			zap.Duration("duration", time.Since(start)),
			zap.String("model", c.model),
		)
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return "", err
	}
	return text, nil
}
