package liaison

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

type fakeGenerator struct {
	generateFn func(context.Context, Prompt) (string, error)

	mu    sync.Mutex
	calls int
	last  Prompt
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt Prompt) (string, error) {
	f.mu.Lock()
	f.calls++
	f.last = prompt
	f.mu.Unlock()
	if f.generateFn != nil {
		return f.generateFn(ctx, prompt)
	}
	return "ok", nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReplyReturnsGeneratedText(t *testing.T) {
	gen := &fakeGenerator{generateFn: func(context.Context, Prompt) (string, error) {
		return "Your complaint has been escalated.", nil
	}}
	replies := NewReplyGenerator(gen, discardLogger())

	got := replies.Reply(context.Background(), "Road is broken", LanguageEnglish)
	if got != "Your complaint has been escalated." {
		t.Fatalf("unexpected reply %q", got)
	}
	if gen.calls != 1 {
		t.Fatalf("expected a single generator call, got %d", gen.calls)
	}
}

func TestReplyBuildsPrompt(t *testing.T) {
	gen := &fakeGenerator{}
	replies := NewReplyGenerator(gen, discardLogger(), WithModel("custom-model"), WithTemperature(0.2))

	replies.Reply(context.Background(), "नमस्ते", LanguageHindi)

	if gen.last.Model != "custom-model" || gen.last.Temperature != 0.2 {
		t.Fatalf("options not applied: %+v", gen.last)
	}
	if gen.last.SystemInstruction != SystemInstruction() {
		t.Fatalf("system instruction not attached")
	}
	for _, want := range []string{"User Language: Hindi", "नमस्ते", "in the Hindi language"} {
		if !strings.Contains(gen.last.Text, want) {
			t.Fatalf("prompt %q missing %q", gen.last.Text, want)
		}
	}
	for _, want := range []string{"AI Connect", "escalated", "under 50 words"} {
		if !strings.Contains(SystemInstruction(), want) {
			t.Fatalf("system instruction missing %q", want)
		}
	}
}

func TestReplyDefaults(t *testing.T) {
	gen := &fakeGenerator{}
	NewReplyGenerator(gen, nil).Reply(context.Background(), "hi", LanguageEnglish)

	if gen.last.Model != DefaultModel || gen.last.Temperature != DefaultTemperature {
		t.Fatalf("expected defaults, got %+v", gen.last)
	}
}

func TestReplyFallsBackOnError(t *testing.T) {
	gen := &fakeGenerator{generateFn: func(context.Context, Prompt) (string, error) {
		return "", errors.New("quota exceeded")
	}}
	got := NewReplyGenerator(gen, discardLogger()).Reply(context.Background(), "hello", LanguageEnglish)
	if got != FallbackReply {
		t.Fatalf("expected fallback reply, got %q", got)
	}
	if gen.calls != 1 {
		t.Fatalf("expected no retry, got %d calls", gen.calls)
	}
}

func TestReplyPlaceholderOnEmptyText(t *testing.T) {
	for _, empty := range []string{"", "   \n"} {
		gen := &fakeGenerator{generateFn: func(context.Context, Prompt) (string, error) {
			return empty, nil
		}}
		got := NewReplyGenerator(gen, discardLogger()).Reply(context.Background(), "hello", LanguageEnglish)
		if got != PlaceholderReply {
			t.Fatalf("expected placeholder for %q, got %q", empty, got)
		}
	}
}

func TestReplyWithoutGeneratorUsesFallback(t *testing.T) {
	got := NewReplyGenerator(nil, discardLogger()).Reply(context.Background(), "hello", LanguageEnglish)
	if got != FallbackReply {
		t.Fatalf("expected fallback reply, got %q", got)
	}
}

func TestNewTextGeneratorSelection(t *testing.T) {
	ctx := context.Background()

	if _, err := NewTextGenerator(ctx, ProviderConfig{Provider: "bard"}); err == nil {
		t.Fatalf("expected unknown provider to fail")
	}
	if _, err := NewTextGenerator(ctx, ProviderConfig{Provider: ProviderGemini}); err == nil {
		t.Fatalf("expected gemini without api key to fail")
	}
	if _, err := NewTextGenerator(ctx, ProviderConfig{Provider: ProviderOpenAI}); err == nil {
		t.Fatalf("expected openai without api key to fail")
	}
	gen, err := NewTextGenerator(ctx, ProviderConfig{Provider: "OpenAI", OpenAI: OpenAIConfig{APIKey: "sk-test"}})
	if err != nil {
		t.Fatalf("expected openai generator, got error %v", err)
	}
	if _, ok := gen.(*OpenAIGenerator); !ok {
		t.Fatalf("expected *OpenAIGenerator, got %T", gen)
	}
}
