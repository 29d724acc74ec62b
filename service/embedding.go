package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

const (
	// EmbeddingDimension is the vector size produced by the embedding model.
	// Every persisted chunk must have exactly this dimension.
	EmbeddingDimension = 1536

	// maxEmbeddingInput bounds the request size. Longer input is truncated
	// before sending, so only the prefix of very long text is embedded.
	maxEmbeddingInput = 32000
)

// EmbeddingService calls the OpenAI embeddings API. Each call is independent:
// no cache, no state carried between calls, and exactly one freshly allocated
// vector is returned per call.
type EmbeddingService struct {
	client    *openai.Client
	model     openai.EmbeddingModel
	dimension int
}

func NewEmbeddingService(baseURL, apiKey string) *EmbeddingService {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &EmbeddingService{
		client:    openai.NewClientWithConfig(config),
		model:     openai.SmallEmbedding3,
		dimension: EmbeddingDimension,
	}
}

// Dimension returns the vector size this client produces.
func (s *EmbeddingService) Dimension() int {
	return s.dimension
}

// Embed returns the embedding for text, truncated to the input cap. There is
// no retry: a provider failure surfaces directly to the caller.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	if len(text) > maxEmbeddingInput {
		text = text[:maxEmbeddingInput]
	}

	resp, err := s.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: s.model,
	})
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("no embedding returned")
	}

	embedding := resp.Data[0].Embedding
	if len(embedding) != s.dimension {
		return nil, fmt.Errorf("unexpected embedding dimension: got %d, want %d", len(embedding), s.dimension)
	}
	return embedding, nil
}
