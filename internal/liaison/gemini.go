package liaison

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"
)

// GeminiConfig wires Gemini access.
type GeminiConfig struct {
	APIKey    string
	UseVertex bool
	Project   string
	Location  string
}

// GeminiGenerator talks to the Gemini API or Vertex AI.
type GeminiGenerator struct {
	client *genai.Client
}

// NewGeminiGenerator returns a TextGenerator backed by Gemini.
func NewGeminiGenerator(ctx context.Context, cfg GeminiConfig) (*GeminiGenerator, error) {
	clientCfg := &genai.ClientConfig{}
	if cfg.UseVertex {
		project := strings.TrimSpace(cfg.Project)
		if project == "" {
			project = strings.TrimSpace(os.Getenv("GOOGLE_CLOUD_PROJECT"))
		}
		if project == "" {
			return nil, errors.New("vertex project id missing")
		}
		location := strings.TrimSpace(cfg.Location)
		if location == "" {
			location = strings.TrimSpace(os.Getenv("GOOGLE_CLOUD_LOCATION"))
		}
		if location == "" {
			return nil, errors.New("vertex location missing")
		}
		clientCfg.Project = project
		clientCfg.Location = location
		clientCfg.Backend = genai.BackendVertexAI
		if err := clientCfg.UseDefaultCredentials(); err != nil {
			return nil, fmt.Errorf("vertex credentials: %w", err)
		}
	} else {
		apiKey := strings.TrimSpace(cfg.APIKey)
		if apiKey == "" {
			return nil, errors.New("gemini api key missing")
		}
		clientCfg.APIKey = apiKey
		clientCfg.Backend = genai.BackendGeminiAPI
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("genai client: %w", err)
	}
	return &GeminiGenerator{client: client}, nil
}

// Generate sends a single-turn request with the system instruction attached.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt Prompt) (string, error) {
	model := prompt.Model
	if model == "" {
		model = DefaultModel
	}
	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt.Text), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(prompt.SystemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr(prompt.Temperature),
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return resp.Text(), nil
}
