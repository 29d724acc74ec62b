package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"github.com/baotran/docqa-be/config"
)

// DefaultEmbeddingDimension matches text-embedding-3-small.
const DefaultEmbeddingDimension = 1536

// PostgresStore implements VectorStore on PostgreSQL with the pgvector
// extension. Chunks and documents are plain relational rows; similarity
// search is a single join ordered by cosine distance.
type PostgresStore struct {
	db        *sql.DB
	dimension int
	logger    *zap.Logger
}

func NewPostgresStore(cfg config.PostgresConfig, logger *zap.Logger) (*PostgresStore, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	logger.Info("postgres connection established",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database))

	return &PostgresStore{
		db:        db,
		dimension: DefaultEmbeddingDimension,
		logger:    logger,
	}, nil
}

// NewPostgresStoreWithDB wraps an existing connection. Used by tests.
func NewPostgresStoreWithDB(db *sql.DB, logger *zap.Logger) *PostgresStore {
	return &PostgresStore{
		db:        db,
		dimension: DefaultEmbeddingDimension,
		logger:    logger,
	}
}

// DB exposes the underlying pool so repositories can share it.
func (s *PostgresStore) DB() *sql.DB {
	return s.db
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// InitSchema creates the pgvector extension, tables and indexes. With reset
// set, all document data is dropped first.
func (s *PostgresStore) InitSchema(ctx context.Context, reset bool) error {
	if _, err := s.db.ExecContext(ctx, "CREATE EXTENSION IF NOT EXISTS vector"); err != nil {
		return fmt.Errorf("failed to create pgvector extension: %w", err)
	}

	if reset {
		if _, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS chunks, documents, users"); err != nil {
			return fmt.Errorf("failed to drop tables: %w", err)
		}
		s.logger.Warn("dropped existing tables")
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS documents (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS chunks (
			id UUID PRIMARY KEY,
			document_id UUID NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
			content TEXT NOT NULL,
			embedding vector(%d) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, s.dimension),
		`CREATE INDEX IF NOT EXISTS documents_user_id_idx ON documents (user_id)`,
		`CREATE INDEX IF NOT EXISTS chunks_document_id_idx ON chunks (document_id)`,
		`CREATE INDEX IF NOT EXISTS chunks_embedding_idx ON chunks USING hnsw (embedding vector_cosine_ops)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run schema statement: %w", err)
		}
	}

	s.logger.Info("schema ready", zap.Int("dimension", s.dimension))
	return nil
}

func (s *PostgresStore) CreateDocument(ctx context.Context, doc *Document) error {
	query := `
		INSERT INTO documents (id, user_id, name, created_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := s.db.ExecContext(ctx, query, doc.ID, doc.UserID, doc.Name, doc.CreatedAt); err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	s.logger.Debug("document created", zap.String("id", doc.ID), zap.String("name", doc.Name))
	return nil
}

func (s *PostgresStore) ListDocuments(ctx context.Context, userID string) ([]Document, error) {
	query := `
		SELECT id, user_id, name, created_at
		FROM documents
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.ID, &doc.UserID, &doc.Name, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (s *PostgresStore) InsertChunk(ctx context.Context, chunk *Chunk) error {
	if len(chunk.Embedding) != s.dimension {
		return fmt.Errorf("embedding dimension mismatch: got %d, want %d", len(chunk.Embedding), s.dimension)
	}

	query := `
		INSERT INTO chunks (id, document_id, content, embedding, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query,
		chunk.ID,
		chunk.DocumentID,
		chunk.Content,
		pgvector.NewVector(chunk.Embedding),
		chunk.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert chunk: %w", err)
	}
	return nil
}

// SearchChunks ranks the caller's chunks by cosine distance to the query
// embedding. The owner filter is part of the SQL itself, not left to the
// caller. Equal distances fall back to the store's natural (insertion) order.
func (s *PostgresStore) SearchChunks(ctx context.Context, q ScopedQuery, embedding []float32, limit int) ([]RetrievedChunk, error) {
	if q.UserID == "" {
		return nil, fmt.Errorf("scoped query requires a user id")
	}
	if len(embedding) != s.dimension {
		return nil, fmt.Errorf("embedding dimension mismatch: got %d, want %d", len(embedding), s.dimension)
	}

	var (
		rows *sql.Rows
		err  error
	)
	if q.DocumentID != "" {
		query := `
			SELECT c.content, d.id, d.name
			FROM chunks c
			JOIN documents d ON c.document_id = d.id
			WHERE d.user_id = $1 AND d.id = $3
			ORDER BY c.embedding <=> $2
			LIMIT $4
		`
		rows, err = s.db.QueryContext(ctx, query, q.UserID, pgvector.NewVector(embedding), q.DocumentID, limit)
	} else {
		query := `
			SELECT c.content, d.id, d.name
			FROM chunks c
			JOIN documents d ON c.document_id = d.id
			WHERE d.user_id = $1
			ORDER BY c.embedding <=> $2
			LIMIT $3
		`
		rows, err = s.db.QueryContext(ctx, query, q.UserID, pgvector.NewVector(embedding), limit)
	}
	if err != nil {
		return nil, fmt.Errorf("similarity search failed: %w", err)
	}
	defer rows.Close()

	var results []RetrievedChunk
	for rows.Next() {
		var rc RetrievedChunk
		if err := rows.Scan(&rc.Content, &rc.DocumentID, &rc.DocumentName); err != nil {
			return nil, fmt.Errorf("failed to scan search result: %w", err)
		}
		results = append(results, rc)
	}
	return results, rows.Err()
}
