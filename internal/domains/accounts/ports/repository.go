package ports

import (
	"context"
	"errors"

	"github.com/vendora/sales-api/internal/domains/accounts/domain"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Repository persists vendor accounts. Create assigns an ID when absent and
// returns ErrEmailTaken when the email is already registered.
type Repository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
