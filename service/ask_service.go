package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/baotran/docqa-be/database"
	"github.com/baotran/docqa-be/types"
)

const (
	// DefaultTopK is the number of chunks retrieved per question.
	DefaultTopK = 5

	snippetLength = 200

	// FallbackAnswer is returned when nothing relevant is stored for the
	// caller. The generation provider is not invoked in that case.
	FallbackAnswer = "I couldn't find any relevant information in your documents. Please upload some documents first."

	// NoAnswerPlaceholder stands in when the provider returns empty text.
	NoAnswerPlaceholder = "No answer generated."

	groundingPrompt = `You are a helpful assistant. Answer the user's question using ONLY the provided context from their documents. If the context doesn't contain the answer, say "I couldn't find this information in your documents." Do not make up information.`
)

// AskService runs the read path: embed the question, retrieve the caller's
// nearest chunks, and synthesize a grounded answer with citations.
type AskService struct {
	embedder Embedder
	store    database.VectorStore
	ai       AIService
	topK     int
	logger   *zap.Logger
}

func NewAskService(embedder Embedder, store database.VectorStore, ai AIService, logger *zap.Logger) *AskService {
	return &AskService{
		embedder: embedder,
		store:    store,
		ai:       ai,
		topK:     DefaultTopK,
		logger:   logger,
	}
}

// Ask answers a question from the documents owned by userID. A non-empty
// documentID narrows retrieval to that single document.
func (s *AskService) Ask(ctx context.Context, userID, question, documentID string) (*types.AskResult, error) {
	results, err := s.retrieve(ctx, userID, question, documentID)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return &types.AskResult{
			Answer:  FallbackAnswer,
			Sources: []types.Source{},
		}, nil
	}

	answer, err := s.ai.Generate(ctx, groundingPrompt, buildUserPrompt(results, question))
	if err != nil {
		return nil, fmt.Errorf("answer generation failed: %w", err)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		answer = NoAnswerPlaceholder
	}

	return &types.AskResult{
		Answer:  answer,
		Sources: sourcesFrom(results),
	}, nil
}

// AskStream is the websocket variant: retrieval is identical, but answer text
// is delivered incrementally through handler. The returned sources follow the
// same ascending-distance order as the context block.
func (s *AskService) AskStream(ctx context.Context, userID, question, documentID string, handler types.StreamHandler) ([]types.Source, error) {
	results, err := s.retrieve(ctx, userID, question, documentID)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		handler(FallbackAnswer)
		return []types.Source{}, nil
	}

	if err := s.ai.GenerateStream(ctx, groundingPrompt, buildUserPrompt(results, question), handler); err != nil {
		return nil, fmt.Errorf("answer generation failed: %w", err)
	}
	return sourcesFrom(results), nil
}

func (s *AskService) retrieve(ctx context.Context, userID, question, documentID string) ([]database.RetrievedChunk, error) {
	embedding, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}

	query := database.ScopedQuery{
		UserID:     userID,
		DocumentID: documentID,
	}
	results, err := s.store.SearchChunks(ctx, query, embedding, s.topK)
	if err != nil {
		return nil, fmt.Errorf("similarity search failed: %w", err)
	}

	s.logger.Debug("chunks retrieved",
		zap.String("user_id", userID),
		zap.Int("count", len(results)))
	return results, nil
}

// buildUserPrompt assembles the retrieved chunks, closest first, into one
// context block followed by the original question.
func buildUserPrompt(results []database.RetrievedChunk, question string) string {
	blocks := make([]string, 0, len(results))
	for _, r := range results {
		blocks = append(blocks, fmt.Sprintf("[From: %s]\n%s", r.DocumentName, r.Content))
	}
	context := strings.Join(blocks, "\n\n---\n\n")
	return fmt.Sprintf("Context:\n%s\n\nQuestion: %s", context, question)
}

func sourcesFrom(results []database.RetrievedChunk) []types.Source {
	sources := make([]types.Source, 0, len(results))
	for _, r := range results {
		sources = append(sources, types.Source{
			DocumentName: r.DocumentName,
			Snippet:      snippet(r.Content),
		})
	}
	return sources
}

func snippet(content string) string {
	if len(content) <= snippetLength {
		return content
	}
	return content[:snippetLength] + "..."
}
