package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/baotran/docqa-be/database"
)

func newMockRepo(t *testing.T) (UserRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserRepo(db, zap.NewNop()), mock
}

func TestCreateUser(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectExec("INSERT INTO users").
		WithArgs("user-1", "bao@example.com", "hashed-password", now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CreateUser(context.Background(), &database.User{
		ID:        "user-1",
		Email:     "bao@example.com",
		Password:  "hashed-password",
		CreatedAt: now,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByEmail(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "email", "password", "created_at"}).
		AddRow("user-1", "bao@example.com", "hashed", now)
	mock.ExpectQuery("SELECT id, email, password, created_at").
		WithArgs("bao@example.com").
		WillReturnRows(rows)

	user, err := repo.GetUserByEmail(context.Background(), "bao@example.com")

	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "hashed", user.Password)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByEmailNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT id, email, password, created_at").
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "created_at"}))

	user, err := repo.GetUserByEmail(context.Background(), "nobody@example.com")

	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUser(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "email", "password", "created_at"}).
		AddRow("user-1", "bao@example.com", "hashed", now)
	mock.ExpectQuery("SELECT id, email, password, created_at").
		WithArgs("user-1").
		WillReturnRows(rows)

	user, err := repo.GetUser(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, "bao@example.com", user.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}
