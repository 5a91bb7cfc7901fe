package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/vendora/sales-api/internal/domains/accounts/domain"
	"github.com/vendora/sales-api/internal/domains/accounts/ports"
)

const bcryptCost = 10

// Service orchestrates account use cases.
type Service struct {
	repo   ports.Repository
	tokens ports.TokenIssuer
}

func NewService(repo ports.Repository, tokens ports.TokenIssuer) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Register creates a vendor account with a bcrypt-hashed credential.
func (s *Service) Register(ctx context.Context, email, name, surname, password string) (*domain.User, error) {
	if err := domain.ValidatePassword(password); err != nil {
		return nil, err
	}
	user, err := domain.NewUser(email, name, surname)
	if err != nil {
		return nil, err
	}
	if existing, err := s.repo.GetByEmail(ctx, user.Email); err == nil && existing != nil {
		return nil, ports.ErrEmailTaken
	} else if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	return s.repo.Create(ctx, user)
}

// Authenticate verifies credentials and returns a signed bearer token.
func (s *Service) Authenticate(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(password) == "" {
		return "", ports.ErrInvalidCredentials
	}
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return "", ports.ErrInvalidCredentials
		}
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ports.ErrInvalidCredentials
	}
	return s.tokens.Issue(user.ID, user.Email, user.Name, user.Surname)
}

// GetByID fetches an account by identifier.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all vendor accounts.
func (s *Service) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

var _ ports.Service = (*Service)(nil)
