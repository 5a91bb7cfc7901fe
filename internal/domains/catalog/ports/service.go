package ports

import (
	"context"

	"github.com/vendora/sales-api/internal/domains/catalog/domain"
)

// Service exposes catalog use cases to adapters. Reserve and Release carry the
// repository's atomicity guarantees through to other bounded contexts.
type Service interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, id string, update domain.ProductUpdate) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.Product, error)
	Search(ctx context.Context, text string, limit int) ([]*domain.Product, error)
	Reserve(ctx context.Context, productID string, quantity int64) (*domain.Product, error)
	Release(ctx context.Context, productID string, quantity int64) error
}
