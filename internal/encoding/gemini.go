package encoding

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultEmbeddingModel is the Gemini embedding model used when none is
// configured.
const DefaultEmbeddingModel = "text-embedding-004"

// geminiEmbeddingDims is the output dimensionality of text-embedding-004.
const geminiEmbeddingDims = 768

// GeminiEncoder produces dense embeddings through the Gemini embedding API.
// The underlying client is safe for concurrent use; Fit is a no-op since the
// hosted model needs no corpus fitting.
type GeminiEncoder struct {
	client *genai.Client
	model  string
}

// NewGeminiEncoder creates an encoder backed by the given embedding model.
// An empty model name selects DefaultEmbeddingModel.
func NewGeminiEncoder(ctx context.Context, apiKey, model string) (*GeminiEncoder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultEmbeddingModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiEncoder{client: client, model: model}, nil
}

// Name identifies the encoder variant.
func (e *GeminiEncoder) Name() string { return "gemini" }

// DefaultThreshold returns the cutoff tuned for dense embedding scores.
func (e *GeminiEncoder) DefaultThreshold() float64 { return 0.3 }

// Dims returns the embedding dimensionality.
func (e *GeminiEncoder) Dims() int { return geminiEmbeddingDims }

// Fit is a no-op: the hosted embedding model requires no corpus fitting.
func (e *GeminiEncoder) Fit(_ context.Context, _ []string) error { return nil }

// Encode embeds a single text.
func (e *GeminiEncoder) Encode(ctx context.Context, text string) ([]float64, error) {
	em := e.client.EmbeddingModel(e.model)
	res, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("failed to embed content: %w", err)
	}
	if res.Embedding == nil {
		return nil, fmt.Errorf("no embedding in response")
	}
	return toFloat64(res.Embedding.Values), nil
}

// EncodeBatch embeds texts through the batch API, preserving input order.
func (e *GeminiEncoder) EncodeBatch(ctx context.Context, texts []string) ([][]float64, error) {
	em := e.client.EmbeddingModel(e.model)

	batch := em.NewBatch()
	for _, text := range texts {
		batch.AddContent(genai.Text(text))
	}

	res, err := em.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("failed to embed batch: %w", err)
	}
	if len(res.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: got %d, want %d", len(res.Embeddings), len(texts))
	}

	vecs := make([][]float64, len(res.Embeddings))
	for i, emb := range res.Embeddings {
		vecs[i] = toFloat64(emb.Values)
	}
	return vecs, nil
}

// Close releases the underlying API client.
func (e *GeminiEncoder) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

func toFloat64(values []float32) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}
