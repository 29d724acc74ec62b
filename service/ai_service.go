package service

import (
	"context"

	"github.com/baotran/docqa-be/types"
)

// Embedder converts text into a fixed-dimension embedding vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// AIService generates an answer from a system instruction and a user prompt.
type AIService interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	GenerateStream(ctx context.Context, systemPrompt, userPrompt string, handler types.StreamHandler) error
}
