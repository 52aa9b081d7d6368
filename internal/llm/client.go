package llm

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// TextGenerator is an abstraction over text-generation backends. Variants are
// tried in priority order with a per-attempt timeout; implementations return
// an error only after the whole chain is exhausted.
type TextGenerator interface {
	// Generate produces text for the prompt, falling through the model
	// chain on failure.
	Generate(ctx context.Context, prompt string) (string, error)
	// GenerateJSON produces JSON output for the prompt.
	GenerateJSON(ctx context.Context, prompt string) (string, error)
	// Close releases any resources held by the generator.
	Close() error
}

// NewTextGenerator creates a generator based on configuration.
func NewTextGenerator(ctx context.Context, config *Config, apiKey string) (TextGenerator, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiGenerator(ctx, config, apiKey)
	// case ProviderOpenAI:
	//     return NewOpenAIGenerator(ctx, config, apiKey)
	default:
		return NewGeminiGenerator(ctx, config, apiKey)
	}
}

// GeminiGenerator implements TextGenerator for Google Gemini.
type GeminiGenerator struct {
	client *genai.Client
	config *Config
}

// NewGeminiGenerator creates a new Gemini generator.
func NewGeminiGenerator(ctx context.Context, config *Config, apiKey string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGenerator{
		client: client,
		config: config,
	}, nil
}

// Generate produces text for the prompt, trying each model in the configured
// priority order. A model that errors or returns empty text falls through to
// the next; the error of the last attempt is returned when all fail.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.generate(ctx, prompt, false)
}

// GenerateJSON produces JSON output for the prompt, with markdown code-block
// wrappers stripped.
func (g *GeminiGenerator) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	text, err := g.generate(ctx, prompt, true)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

func (g *GeminiGenerator) generate(ctx context.Context, prompt string, asJSON bool) (string, error) {
	if len(g.config.Models) == 0 {
		return "", fmt.Errorf("no models configured")
	}

	var lastErr error
	for _, modelName := range g.config.Models {
		model := g.client.GenerativeModel(modelName)
		model.SetTemperature(g.config.Temperature)
		if g.config.MaxOutputTokens > 0 {
			model.SetMaxOutputTokens(g.config.MaxOutputTokens)
		}
		if asJSON {
			model.ResponseMIMEType = "application/json"
		}

		attemptCtx := ctx
		var cancel context.CancelFunc
		if g.config.AttemptTimeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, g.config.AttemptTimeout)
		}

		resp, err := model.GenerateContent(attemptCtx, genai.Text(prompt))
		if cancel != nil {
			cancel()
		}
		if err != nil {
			log.Printf("Model %s failed: %v", modelName, err)
			lastErr = err
			// Stop falling through once the caller's context is gone.
			if ctx.Err() != nil {
				break
			}
			continue
		}

		text, err := extractTextFromResponse(resp)
		if err != nil {
			log.Printf("Model %s returned no usable text: %v", modelName, err)
			lastErr = err
			continue
		}
		return text, nil
	}

	return "", fmt.Errorf("all models failed: %w", lastErr)
}

// Close releases resources held by the generator.
func (g *GeminiGenerator) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
