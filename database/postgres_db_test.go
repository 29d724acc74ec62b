package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresStoreWithDB(db, zap.NewNop()), mock
}

func testEmbedding(fill float32) []float32 {
	v := make([]float32, DefaultEmbeddingDimension)
	for i := range v {
		v[i] = fill
	}
	return v
}

func TestCreateDocument(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectExec("INSERT INTO documents").
		WithArgs("doc-1", "user-1", "notes.txt", now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.CreateDocument(context.Background(), &Document{
		ID:        "doc-1",
		UserID:    "user-1",
		Name:      "notes.txt",
		CreatedAt: now,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListDocuments(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "user_id", "name", "created_at"}).
		AddRow("doc-2", "user-1", "newer.txt", now).
		AddRow("doc-1", "user-1", "older.txt", now.Add(-time.Hour))
	mock.ExpectQuery("SELECT id, user_id, name, created_at").
		WithArgs("user-1").
		WillReturnRows(rows)

	docs, err := store.ListDocuments(context.Background(), "user-1")

	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "newer.txt", docs[0].Name)
	assert.Equal(t, "older.txt", docs[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertChunk(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now()
	embedding := testEmbedding(0.5)

	mock.ExpectExec("INSERT INTO chunks").
		WithArgs("chunk-1", "doc-1", "some content", pgvector.NewVector(embedding), now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.InsertChunk(context.Background(), &Chunk{
		ID:         "chunk-1",
		DocumentID: "doc-1",
		Content:    "some content",
		Embedding:  embedding,
		CreatedAt:  now,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertChunkDimensionMismatch(t *testing.T) {
	store, mock := newMockStore(t)

	err := store.InsertChunk(context.Background(), &Chunk{
		ID:         "chunk-1",
		DocumentID: "doc-1",
		Content:    "content",
		Embedding:  []float32{0.1, 0.2, 0.3},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedding dimension mismatch")
	// No statement reaches the database.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchChunks(t *testing.T) {
	store, mock := newMockStore(t)
	embedding := testEmbedding(0.25)

	rows := sqlmock.NewRows([]string{"content", "id", "name"}).
		AddRow("closest", "doc-1", "alpha.txt").
		AddRow("runner up", "doc-2", "beta.txt")
	mock.ExpectQuery(`WHERE d\.user_id = \$1\s+ORDER BY c\.embedding <=> \$2`).
		WithArgs("user-1", pgvector.NewVector(embedding), 5).
		WillReturnRows(rows)

	results, err := store.SearchChunks(context.Background(), ScopedQuery{UserID: "user-1"}, embedding, 5)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "closest", results[0].Content)
	assert.Equal(t, "alpha.txt", results[0].DocumentName)
	assert.Equal(t, "beta.txt", results[1].DocumentName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchChunksScopedToDocument(t *testing.T) {
	store, mock := newMockStore(t)
	embedding := testEmbedding(0.25)

	rows := sqlmock.NewRows([]string{"content", "id", "name"}).
		AddRow("only from doc-7", "doc-7", "gamma.txt")
	mock.ExpectQuery(`WHERE d\.user_id = \$1 AND d\.id = \$3`).
		WithArgs("user-1", pgvector.NewVector(embedding), "doc-7", 5).
		WillReturnRows(rows)

	results, err := store.SearchChunks(context.Background(), ScopedQuery{UserID: "user-1", DocumentID: "doc-7"}, embedding, 5)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "doc-7", results[0].DocumentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchChunksRequiresOwner(t *testing.T) {
	store, mock := newMockStore(t)

	results, err := store.SearchChunks(context.Background(), ScopedQuery{}, testEmbedding(0.1), 5)

	require.Error(t, err)
	assert.Nil(t, results)
	assert.Contains(t, err.Error(), "requires a user id")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchChunksDimensionMismatch(t *testing.T) {
	store, mock := newMockStore(t)

	results, err := store.SearchChunks(context.Background(), ScopedQuery{UserID: "user-1"}, []float32{0.1}, 5)

	require.Error(t, err)
	assert.Nil(t, results)
	assert.Contains(t, err.Error(), "embedding dimension mismatch")
	assert.NoError(t, mock.ExpectationsWereMet())
}
