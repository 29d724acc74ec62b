package database

import (
	"context"
	"time"
)

// User is an account that owns documents.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Document is one ingested source document. It is created before any of its
// chunks exist and never mutated afterwards.
type Document struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Chunk is a bounded, possibly overlapping slice of a document's text paired
// with its embedding vector.
type Chunk struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	Content    string    `json:"content"`
	Embedding  []float32 `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// RetrievedChunk is a similarity search hit joined with its owning document.
type RetrievedChunk struct {
	Content      string
	DocumentID   string
	DocumentName string
}

// ScopedQuery identifies whose chunks a similarity search may touch. The
// owner is a required field so an unscoped (cross-tenant) query cannot be
// expressed at all; DocumentID optionally narrows the search to one document.
type ScopedQuery struct {
	UserID     string
	DocumentID string
}

// VectorStore defines the persistence operations the ingestion and retrieval
// pipelines need.
type VectorStore interface {
	// CreateDocument persists a document row.
	CreateDocument(ctx context.Context, doc *Document) error
	// ListDocuments returns the documents owned by userID, newest first.
	ListDocuments(ctx context.Context, userID string) ([]Document, error)
	// InsertChunk persists a single chunk with its embedding.
	InsertChunk(ctx context.Context, chunk *Chunk) error
	// SearchChunks returns up to limit chunks within the query's scope,
	// ordered by ascending distance to the given embedding.
	SearchChunks(ctx context.Context, q ScopedQuery, embedding []float32, limit int) ([]RetrievedChunk, error)
}
