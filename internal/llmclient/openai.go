// File: internal/llmclient/openai.go
package llmclient

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"

	"github.com/xkilldash9x/droidpilot/internal/config"
)

// OpenAIClient implements Client against any OpenAI-compatible chat
// completions endpoint. With an endpoint override this covers local
// Ollama-style servers as well as the hosted API.
type OpenAIClient struct {
	client *openai.Client
	cfg    config.LLMConfig
	logger *zap.Logger
}

var _ Client = (*OpenAIClient)(nil)

// NewOpenAIClient initializes the client. An API key is optional because
// local endpoints do not require one.
func NewOpenAIClient(cfg config.LLMConfig, logger *zap.Logger) (*OpenAIClient, error) {
	opts := []option.RequestOption{}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithBaseURL(cfg.Endpoint))
	}
	if cfg.APITimeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.APITimeout))
	}

	client := openai.NewClient(opts...)
	return &OpenAIClient{
		client: &client,
		cfg:    cfg,
		logger: logger.Named("llmclient.openai"),
	}, nil
}

// Decide sends the conversation as a chat completion request and returns the
// first choice's content.
func (c *OpenAIClient) Decide(ctx context.Context, system string, history []Message) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+1)
	messages = append(messages, openai.SystemMessage(system))
	for _, msg := range history {
		switch msg.Role {
		case RoleAssistant:
			messages = append(messages, openai.AssistantMessage(msg.Content))
		default:
			messages = append(messages, openai.UserMessage(msg.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.cfg.Model),
		Messages: messages,
	}
	if c.cfg.Temperature > 0 {
		params.Temperature = openai.Float(float64(c.cfg.Temperature))
	}
	if c.cfg.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(c.cfg.MaxTokens))
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 2 * time.Minute
	b.MaxInterval = 30 * time.Second

	var text string
	operation := func() error {
		start := time.Now()
		completion, err := c.client.Chat.Completions.New(ctx, params)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			c.logger.Warn("Chat completion request failed, retrying...", zap.Error(err))
			return err
		}
		if len(completion.Choices) == 0 {
			return backoff.Permanent(errors.New("chat completion returned no choices"))
		}

		text = completion.Choices[0].Message.Content
		c.logger.Info("LLM generation complete (OpenAI-compatible)",
			zap.Duration("duration", time.Since(start)),
			zap.String("model", c.cfg.Model),
			zap.Int64("total_tokens", completion.Usage.TotalTokens),
		)
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return "", err
	}
	return text, nil
}
