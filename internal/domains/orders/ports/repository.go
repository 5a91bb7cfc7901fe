package ports

import (
	"context"
	"errors"

	"github.com/vendora/sales-api/internal/domains/orders/domain"
)

var (
	ErrNotFound = errors.New("order not found")
	// ErrClientNotFound is surfaced when the referenced client does not exist.
	ErrClientNotFound = errors.New("client not found")
)

// Repository persists orders. Create assigns an ID when absent.
type Repository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.Order, error)
	ListByVendor(ctx context.Context, vendorID string) ([]*domain.Order, error)
	ListByVendorAndStatus(ctx context.Context, vendorID string, status domain.Status) ([]*domain.Order, error)
}
