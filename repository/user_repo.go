package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/baotran/docqa-be/database"
)

// ErrUserNotFound is returned when no user matches the lookup.
var ErrUserNotFound = errors.New("user not found")

type UserRepo interface {
	CreateUser(ctx context.Context, user *database.User) error
	GetUser(ctx context.Context, id string) (*database.User, error)
	GetUserByEmail(ctx context.Context, email string) (*database.User, error)
}

type userRepo struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewUserRepo(db *sql.DB, logger *zap.Logger) UserRepo {
	return &userRepo{
		db:     db,
		logger: logger,
	}
}

func (r *userRepo) CreateUser(ctx context.Context, user *database.User) error {
	query := `
		INSERT INTO users (id, email, password, created_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.ExecContext(ctx, query, user.ID, user.Email, user.Password, user.CreatedAt); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	r.logger.Debug("user created", zap.String("id", user.ID))
	return nil
}

func (r *userRepo) GetUser(ctx context.Context, id string) (*database.User, error) {
	query := `
		SELECT id, email, password, created_at
		FROM users
		WHERE id = $1
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepo) GetUserByEmail(ctx context.Context, email string) (*database.User, error) {
	query := `
		SELECT id, email, password, created_at
		FROM users
		WHERE email = $1
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *userRepo) scanUser(row *sql.Row) (*database.User, error) {
	var user database.User
	err := row.Scan(&user.ID, &user.Email, &user.Password, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}
