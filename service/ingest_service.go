package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/baotran/docqa-be/database"
	"github.com/baotran/docqa-be/types"
)

// ErrNoUsableChunks is returned when a document yields zero chunks.
var ErrNoUsableChunks = errors.New("document produced no usable chunks")

// IngestService drives the write path: one document in, a document row plus
// its chunk rows out. Processing is strictly sequential and streaming — each
// chunk is embedded and persisted before the next one is produced, so at no
// point does more than one chunk's embedding live in memory, whatever the
// document length.
type IngestService struct {
	chunker  *Chunker
	embedder Embedder
	store    database.VectorStore
	logger   *zap.Logger
}

func NewIngestService(chunker *Chunker, embedder Embedder, store database.VectorStore, logger *zap.Logger) *IngestService {
	return &IngestService{
		chunker:  chunker,
		embedder: embedder,
		store:    store,
		logger:   logger,
	}
}

// IngestDocument persists a document and its chunks for the given owner.
//
// The document row is written before any chunk exists. A mid-stream failure
// (embedding or persistence) aborts immediately and leaves the chunks stored
// so far in place; there is no rollback across the document. The caller sees
// the failure, never a wrong success count.
func (s *IngestService) IngestDocument(ctx context.Context, userID, name, text string) (*types.IngestResult, error) {
	s.logger.Info("ingesting document",
		zap.String("user_id", userID),
		zap.String("name", name),
		zap.Int("text_length", len(text)))

	doc := &database.Document{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := s.store.CreateDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	stored := 0
	it := s.chunker.Split(text)
	for {
		chunk, ok, err := it.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		embedding, err := s.embedder.Embed(ctx, chunk)
		if err != nil {
			return nil, fmt.Errorf("failed to embed chunk %d: %w", stored+1, err)
		}

		err = s.store.InsertChunk(ctx, &database.Chunk{
			ID:         uuid.NewString(),
			DocumentID: doc.ID,
			Content:    chunk,
			Embedding:  embedding,
			CreatedAt:  time.Now(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to store chunk %d: %w", stored+1, err)
		}

		stored++
		s.logger.Debug("chunk stored", zap.Int("index", stored), zap.Int("chars", len(chunk)))
		// chunk and embedding are dead here; nothing accumulates across iterations
	}

	if stored == 0 {
		return nil, ErrNoUsableChunks
	}

	s.logger.Info("document ingested",
		zap.String("document_id", doc.ID),
		zap.Int("chunks", stored))

	return &types.IngestResult{
		DocumentID:    doc.ID,
		ChunksCreated: stored,
	}, nil
}
