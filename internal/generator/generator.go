// Package generator is the client for the external text-generation service.
// The edit engine itself never calls it: callers compose BuildPrompt →
// Complete → Apply, handing the engine an already-produced completion.
package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/cloudwego/eino-ext/components/model/openai"

	"latex-editor/internal/logger"
	"latex-editor/internal/types"
)

const (
	// DefaultModel is the default model for completion requests
	DefaultModel = "gpt-4o"
	// DefaultTimeout bounds one completion round trip
	DefaultTimeout = 120 * time.Second
)

// Service produces one completion for a prompt pair. Implementations must be
// safe for concurrent use.
type Service interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Client is the OpenAI-backed Service implementation.
type Client struct {
	chatModel model.BaseChatModel
	modelName string
	timeout   time.Duration
}

// New creates a Client from application configuration.
func New(ctx context.Context, cfg *types.Config) (*Client, error) {
	if cfg == nil || cfg.OpenAIAPIKey == "" {
		return nil, types.NewAppError(types.ErrConfig, "OpenAI API key is not configured", nil)
	}

	modelName := cfg.OpenAIModel
	if modelName == "" {
		modelName = DefaultModel
	}

	chatModelConfig := &openai.ChatModelConfig{
		Model:  modelName,
		APIKey: cfg.OpenAIAPIKey,
	}
	if cfg.OpenAIBaseURL != "" {
		chatModelConfig.BaseURL = cfg.OpenAIBaseURL
	}

	chatModel, err := openai.NewChatModel(ctx, chatModelConfig)
	if err != nil {
		return nil, types.NewAppError(types.ErrGeneration, "failed to create chat model", err)
	}

	logger.Info("generator client created", logger.String("model", modelName))
	return &Client{
		chatModel: chatModel,
		modelName: modelName,
		timeout:   DefaultTimeout,
	}, nil
}

// Complete sends one system+user prompt pair and returns the reply text.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	logger.Debug("requesting completion",
		logger.String("model", c.modelName),
		logger.Int("promptLen", len(userPrompt)))

	resp, err := c.chatModel.Generate(ctx, []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(userPrompt),
	})
	if err != nil {
		logger.Error("completion request failed", err)
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if resp == nil || resp.Content == "" {
		return "", types.NewAppError(types.ErrGeneration, "generation service returned an empty reply", nil)
	}

	logger.Debug("completion received", logger.Int("replyLen", len(resp.Content)))
	return resp.Content, nil
}
