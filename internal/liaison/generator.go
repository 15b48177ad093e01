package liaison

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Replies used when the model cannot supply one. Clients match these verbatim.
const (
	PlaceholderReply = "Thank you for your feedback. We are processing your request."
	FallbackReply    = "We are currently experiencing high traffic. Your query has been recorded manually."
)

// Generation defaults.
const (
	DefaultModel       = "gemini-3-pro-preview"
	DefaultTemperature = float32(0.7)
)

const systemInstruction = `You are "AI Connect", a government AI assistant bridging the gap between citizens and administration.
Your goal is to provide helpful, empathetic, and actionable responses to citizen queries.
You must handle multiple languages (Hindi, Telugu, English, etc.) seamlessly.
If a query is a complaint, ensure the user knows it has been escalated.
Keep responses concise (under 50 words usually) and professional yet accessible.`

// SystemInstruction returns the fixed liaison persona sent with every request.
func SystemInstruction() string {
	return systemInstruction
}

// BuildPrompt embeds the detected language and the citizen's text in the per-request prompt.
func BuildPrompt(text string, lang Language) string {
	return fmt.Sprintf("User Language: %s\nUser Query: %q\n\nProvide a response in the %s language adhering to the system instructions.", lang, text, lang)
}

// ReplyGenerator turns a citizen message into a liaison reply. It makes one
// best-effort call and always yields a string.
type ReplyGenerator struct {
	generator   TextGenerator
	model       string
	temperature float32
	logger      *slog.Logger
}

// ReplyOption customizes a ReplyGenerator.
type ReplyOption func(*ReplyGenerator)

// WithModel overrides the model identifier sent to the generator.
func WithModel(model string) ReplyOption {
	return func(g *ReplyGenerator) {
		if trimmed := strings.TrimSpace(model); trimmed != "" {
			g.model = trimmed
		}
	}
}

// WithTemperature overrides the sampling temperature.
func WithTemperature(temperature float32) ReplyOption {
	return func(g *ReplyGenerator) {
		if temperature >= 0 {
			g.temperature = temperature
		}
	}
}

// NewReplyGenerator wraps a TextGenerator. A nil generator behaves like an unreachable service.
func NewReplyGenerator(generator TextGenerator, logger *slog.Logger, opts ...ReplyOption) *ReplyGenerator {
	if generator == nil {
		generator = NewUnavailableGenerator()
	}
	if logger == nil {
		logger = slog.Default()
	}
	g := &ReplyGenerator{
		generator:   generator,
		model:       DefaultModel,
		temperature: DefaultTemperature,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Reply asks the model for a response in lang. Generation failures are logged
// and converted to FallbackReply; they never reach the caller.
func (g *ReplyGenerator) Reply(ctx context.Context, text string, lang Language) string {
	out, err := g.generator.Generate(ctx, Prompt{
		Model:             g.model,
		SystemInstruction: systemInstruction,
		Text:              BuildPrompt(text, lang),
		Temperature:       g.temperature,
	})
	if err != nil {
		g.logger.ErrorContext(ctx, "reply generation failed",
			slog.String("model", g.model),
			slog.String("lang", string(lang)),
			slog.String("error", err.Error()),
		)
		generationFailures.Inc()
		return FallbackReply
	}
	if strings.TrimSpace(out) == "" {
		emptyGenerations.Inc()
		return PlaceholderReply
	}
	return out
}
