package service

import (
	"context"
	"fmt"

	"github.com/baotran/docqa-be/database"
	"github.com/baotran/docqa-be/types"
)

// Test doubles shared by the pipeline tests. They record calls in order so
// tests can assert on sequencing, not just counts.

type fakeEmbedder struct {
	calls   []string
	failAt  int // 1-based call index that fails, 0 means never
	fixed   []float32
	lastErr error
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.calls = append(f.calls, text)
	if f.failAt > 0 && len(f.calls) == f.failAt {
		f.lastErr = fmt.Errorf("provider unavailable")
		return nil, f.lastErr
	}
	if f.fixed != nil {
		return f.fixed, nil
	}
	return []float32{float32(len(f.calls)), 0.5}, nil
}

type fakeStore struct {
	documents []database.Document
	chunks    []database.Chunk
	events    []string // interleaved log: "doc", "chunk"

	insertFailAt int // 1-based insert index that fails, 0 means never

	searchResults []database.RetrievedChunk
	searchErr     error
	lastQuery     database.ScopedQuery
	lastEmbedding []float32
	lastLimit     int
	searchCalls   int
}

func (f *fakeStore) CreateDocument(_ context.Context, doc *database.Document) error {
	f.documents = append(f.documents, *doc)
	f.events = append(f.events, "doc")
	return nil
}

func (f *fakeStore) ListDocuments(_ context.Context, userID string) ([]database.Document, error) {
	var out []database.Document
	for _, d := range f.documents {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeStore) InsertChunk(_ context.Context, chunk *database.Chunk) error {
	if f.insertFailAt > 0 && len(f.chunks)+1 == f.insertFailAt {
		return fmt.Errorf("connection reset")
	}
	f.chunks = append(f.chunks, *chunk)
	f.events = append(f.events, "chunk")
	return nil
}

func (f *fakeStore) SearchChunks(_ context.Context, q database.ScopedQuery, embedding []float32, limit int) ([]database.RetrievedChunk, error) {
	f.searchCalls++
	f.lastQuery = q
	f.lastEmbedding = embedding
	f.lastLimit = limit
	return f.searchResults, f.searchErr
}

type fakeAI struct {
	answer       string
	err          error
	calls        int
	lastSystem   string
	lastUser     string
	streamDeltas []string
}

func (f *fakeAI) Generate(_ context.Context, system, user string) (string, error) {
	f.calls++
	f.lastSystem = system
	f.lastUser = user
	return f.answer, f.err
}

func (f *fakeAI) GenerateStream(_ context.Context, system, user string, handler types.StreamHandler) error {
	f.calls++
	f.lastSystem = system
	f.lastUser = user
	if f.err != nil {
		return f.err
	}
	for _, d := range f.streamDeltas {
		handler(d)
	}
	return nil
}
