package service

import (
	"context"
	"errors"
	"fmt"

	"auth_api/internal/auth"
	"auth_api/internal/models"
	"auth_api/internal/storage"

	"github.com/gofrs/uuid"
)

// ErrInvalidCredentials covers both an unknown email and a wrong password.
// Callers must not be able to tell the two apart.
var ErrInvalidCredentials = errors.New("invalid credentials")

type Service interface {
	Register(ctx context.Context, name, email, password, role string) (models.User, error)
	Login(ctx context.Context, email, password string) (string, models.User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

type service struct {
	storage storage.Storage
	tokens  *auth.TokenManager
}

func NewService(st storage.Storage, tm *auth.TokenManager) *service {
	return &service{
		storage: st,
		tokens:  tm,
	}
}

func (s *service) Register(ctx context.Context, name, email, password, role string) (models.User, error) {
	const op = "service.Register"

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}

	if err := s.storage.CreateUser(ctx, user); err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, models.User, error) {
	const op = "service.Login"

	cred, err := s.storage.GetCredentialsByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return "", models.User{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return "", models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if ok := auth.CheckPasswordHash(cred.PasswordHash, password); !ok {
		return "", models.User{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	user, err := s.storage.GetUserByID(ctx, cred.UserID)
	if err != nil {
		return "", models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	jwtToken, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return jwtToken, user, nil
}

func (s *service) GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error) {
	const op = "service.GetUserByID"

	user, err := s.storage.GetUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (s *service) ListUsers(ctx context.Context) ([]models.User, error) {
	const op = "service.ListUsers"

	users, err := s.storage.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return users, nil
}
