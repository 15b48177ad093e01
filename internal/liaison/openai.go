package liaison

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAIConfig wires an OpenAI-compatible chat completion endpoint.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
}

// OpenAIGenerator serves replies from any OpenAI-compatible API.
type OpenAIGenerator struct {
	client *openai.Client
}

// NewOpenAIGenerator returns a TextGenerator backed by go-openai.
func NewOpenAIGenerator(cfg OpenAIConfig) (*OpenAIGenerator, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("openai api key missing")
	}
	config := openai.DefaultConfig(apiKey)
	if baseURL := strings.TrimSpace(cfg.BaseURL); baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIGenerator{client: openai.NewClientWithConfig(config)}, nil
}

// Generate maps the system instruction and prompt onto a two-message chat completion.
func (o *OpenAIGenerator) Generate(ctx context.Context, prompt Prompt) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: prompt.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.SystemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: prompt.Text},
		},
		Temperature: prompt.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
