package ports

import (
	"context"
	"errors"
	"fmt"

	"github.com/vendora/sales-api/internal/domains/catalog/domain"
)

var ErrNotFound = errors.New("product not found")

// InsufficientStockError reports a reservation that exceeds available stock.
// The reservation performs no mutation when this error is returned.
type InsufficientStockError struct {
	ProductName string
	Requested   int64
	Available   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("product %q: requested %d exceeds available stock %d", e.ProductName, e.Requested, e.Available)
}

// Repository persists products and implements the atomic stock reservation.
type Repository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.Product, error)
	// Search matches text against name and description, best matches first.
	Search(ctx context.Context, text string, limit int) ([]*domain.Product, error)

	// Reserve atomically decrements stock by quantity when enough is
	// available, returning the updated product. Two concurrent reservations
	// for the last unit must not both succeed.
	Reserve(ctx context.Context, productID string, quantity int64) (*domain.Product, error)
	// Release is the compensating increment for a prior reservation.
	Release(ctx context.Context, productID string, quantity int64) error
}
