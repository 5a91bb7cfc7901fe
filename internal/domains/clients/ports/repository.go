package ports

import (
	"context"
	"errors"

	"github.com/vendora/sales-api/internal/domains/clients/domain"
)

var (
	ErrNotFound   = errors.New("client not found")
	ErrEmailTaken = errors.New("client email already registered")
)

// Repository persists clients. Create assigns an ID when absent and returns
// ErrEmailTaken on duplicate emails.
type Repository interface {
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	Save(ctx context.Context, client *domain.Client) (*domain.Client, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.Client, error)
	ListByVendor(ctx context.Context, vendorID string) ([]*domain.Client, error)
}
