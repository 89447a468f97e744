package embedding

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultGeminiModel is the embedding model used unless overridden.
const DefaultGeminiModel = "text-embedding-004"

// GeminiProvider encodes text using the Gemini embedding API.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a Gemini-backed embedding provider.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{client: client, model: model}, nil
}

// Encode implements Provider using a single batched embedding call.
func (p *GeminiProvider) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	em := p.client.EmbeddingModel(p.model)

	batch := em.NewBatch()
	for _, text := range texts {
		batch = batch.AddContent(genai.Text(text))
	}

	res, err := em.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("failed to embed contents: %w", err)
	}
	if len(res.Embeddings) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(res.Embeddings))
	}

	vectors := make([][]float32, len(res.Embeddings))
	for i, emb := range res.Embeddings {
		vectors[i] = emb.Values
	}
	return vectors, nil
}

// Close releases the underlying client.
func (p *GeminiProvider) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}

// ResilientProvider wraps a primary provider and degrades to the
// deterministic hash provider when the primary fails. Dependency
// degradation must never turn an evaluation into a hard failure.
type ResilientProvider struct {
	primary  Provider
	fallback *HashProvider
}

// NewResilientProvider wraps primary with hash-based degradation.
// A nil primary yields a provider that always uses the fallback.
func NewResilientProvider(primary Provider) *ResilientProvider {
	return &ResilientProvider{primary: primary, fallback: NewHashProvider()}
}

// Encode implements Provider. It never returns an error.
func (p *ResilientProvider) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	if p.primary != nil {
		if vectors, err := p.primary.Encode(ctx, texts); err == nil {
			return vectors, nil
		}
	}
	return p.fallback.Encode(ctx, texts)
}
