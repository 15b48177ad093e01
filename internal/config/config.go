package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/manikumarntv-crypto/aicconect/internal/liaison"
	"github.com/manikumarntv-crypto/aicconect/shared-libs/envconfig"
)

// Config encapsulates the runtime configuration for the liaison service.
type Config struct {
	Port     string `validate:"required,numeric"`
	LogLevel string `validate:"omitempty,oneof=debug info warn warning error"`
	LLM      LLMConfig
	Sessions SessionConfig
	Stream   StreamConfig
}

// LLMConfig defines how replies are generated.
type LLMConfig struct {
	Provider    string  `validate:"oneof=gemini openai"`
	Model       string  `validate:"required"`
	Temperature float64 `validate:"gte=0,lte=2"`

	GeminiAPIKey string
	UseVertex    bool
	GCPProjectID string
	Location     string

	OpenAIAPIKey  string
	OpenAIBaseURL string
}

// SessionConfig controls how long idle session feeds are kept.
type SessionConfig struct {
	IdleTTL       time.Duration `validate:"gt=0"`
	SweepSchedule string        `validate:"required"`
}

// StreamConfig restricts browser origins allowed on the live feed websocket.
type StreamConfig struct {
	AllowedOrigins []string
}

// Load reads environment variables (and an optional .env file) into Config with validation.
// Missing model credentials are not an error: the service then answers with the fallback reply.
func Load() (Config, error) {
	if err := envconfig.LoadDotEnv(); err != nil {
		return Config{}, err
	}

	provider := strings.ToLower(envconfig.Get("LLM_PROVIDER", liaison.ProviderGemini))
	cfg := Config{
		Port:     envconfig.Get("PORT", "8080"),
		LogLevel: strings.ToLower(envconfig.Get("LOG_LEVEL", "info")),
		LLM: LLMConfig{
			Provider:      provider,
			Model:         envconfig.Get(modelEnv(provider), defaultModel(provider)),
			Temperature:   envconfig.GetFloat("LLM_TEMPERATURE", float64(liaison.DefaultTemperature)),
			GeminiAPIKey:  resolveAPIKey(),
			UseVertex:     envconfig.GetBool("GOOGLE_GENAI_USE_VERTEXAI", false),
			GCPProjectID:  envconfig.Get("GCP_PROJECT_ID", ""),
			Location:      envconfig.Get("GOOGLE_CLOUD_LOCATION", ""),
			OpenAIAPIKey:  envconfig.Get("OPENAI_API_KEY", ""),
			OpenAIBaseURL: envconfig.Get("OPENAI_BASE_URL", ""),
		},
		Sessions: SessionConfig{
			IdleTTL:       envconfig.GetDuration("SESSION_IDLE_TTL", liaison.DefaultSessionTTL),
			SweepSchedule: envconfig.Get("SESSION_SWEEP_SCHEDULE", "@every 1m"),
		},
		Stream: StreamConfig{
			AllowedOrigins: envconfig.GetList("WS_ALLOWED_ORIGINS"),
		},
	}

	if err := envconfig.Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// ProviderConfig converts the LLM settings into the generator factory input.
func (c LLMConfig) ProviderConfig() liaison.ProviderConfig {
	return liaison.ProviderConfig{
		Provider: c.Provider,
		Gemini: liaison.GeminiConfig{
			APIKey:    c.GeminiAPIKey,
			UseVertex: c.UseVertex,
			Project:   c.GCPProjectID,
			Location:  c.Location,
		},
		OpenAI: liaison.OpenAIConfig{
			APIKey:  c.OpenAIAPIKey,
			BaseURL: c.OpenAIBaseURL,
		},
	}
}

func modelEnv(provider string) string {
	if provider == liaison.ProviderOpenAI {
		return "OPENAI_MODEL"
	}
	return "GEMINI_MODEL"
}

func defaultModel(provider string) string {
	if provider == liaison.ProviderOpenAI {
		return "gpt-4o-mini"
	}
	return liaison.DefaultModel
}

func resolveAPIKey() string {
	if apiKey := envconfig.Get("GEMINI_API_KEY", ""); strings.TrimSpace(apiKey) != "" {
		return apiKey
	}
	if apiKey := envconfig.Get("API_KEY", ""); strings.TrimSpace(apiKey) != "" {
		return apiKey
	}
	return envconfig.Get("GOOGLE_API_KEY", "")
}
