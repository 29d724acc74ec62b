package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/baotran/docqa-be/database"
	"github.com/baotran/docqa-be/repository"
	"github.com/baotran/docqa-be/types"
	"github.com/baotran/docqa-be/utils"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
)

const bcryptCost = 10

type UserService interface {
	Register(ctx context.Context, email, password string) (*types.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*types.AuthResponse, error)
	GetUser(ctx context.Context, id string) (*database.User, error)
}

type userService struct {
	repo repository.UserRepo
}

func NewUserService(repo repository.UserRepo) UserService {
	return &userService{
		repo: repo,
	}
}

func (s *userService) Register(ctx context.Context, email, password string) (*types.AuthResponse, error) {
	if len(password) < 6 {
		return nil, ErrPasswordTooShort
	}

	_, err := s.repo.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &database.User{
		ID:        uuid.NewString(),
		Email:     email,
		Password:  string(hashed),
		CreatedAt: time.Now(),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return s.authResponse(user)
}

func (s *userService) Login(ctx context.Context, email, password string) (*types.AuthResponse, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.authResponse(user)
}

func (s *userService) GetUser(ctx context.Context, id string) (*database.User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *userService) authResponse(user *database.User) (*types.AuthResponse, error) {
	token, err := utils.GenerateUserToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &types.AuthResponse{
		AccessToken: token,
		User: types.UserInfo{
			ID:    user.ID,
			Email: user.Email,
		},
	}, nil
}
