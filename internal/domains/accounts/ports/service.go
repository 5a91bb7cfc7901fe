package ports

import (
	"context"

	"github.com/vendora/sales-api/internal/domains/accounts/domain"
)

// TokenIssuer signs bearer tokens carrying the user's identity claims.
type TokenIssuer interface {
	Issue(userID, email, name, surname string) (string, error)
}

// Service exposes account use cases to adapters.
type Service interface {
	Register(ctx context.Context, email, name, surname, password string) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
