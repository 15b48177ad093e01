package liaison

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Supported generation backends.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// ErrGeneratorUnavailable is returned by the stand-in generator used when no backend is configured.
var ErrGeneratorUnavailable = errors.New("text generator unavailable")

// ProviderConfig selects and configures the generation backend.
type ProviderConfig struct {
	Provider string
	Gemini   GeminiConfig
	OpenAI   OpenAIConfig
}

// NewTextGenerator builds the configured backend.
func NewTextGenerator(ctx context.Context, cfg ProviderConfig) (TextGenerator, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderGemini:
		g, err := NewGeminiGenerator(ctx, cfg.Gemini)
		if err != nil {
			return nil, err
		}
		return g, nil
	case ProviderOpenAI:
		o, err := NewOpenAIGenerator(cfg.OpenAI)
		if err != nil {
			return nil, err
		}
		return o, nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}

// UnavailableGenerator fails every call, so replies degrade to FallbackReply.
type UnavailableGenerator struct{}

// NewUnavailableGenerator returns the stand-in used when no backend can be built.
func NewUnavailableGenerator() TextGenerator {
	return UnavailableGenerator{}
}

// Generate always reports ErrGeneratorUnavailable.
func (UnavailableGenerator) Generate(context.Context, Prompt) (string, error) {
	return "", ErrGeneratorUnavailable
}
