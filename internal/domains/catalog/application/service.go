package application

import (
	"context"
	"errors"
	"strings"

	"github.com/vendora/sales-api/internal/domains/catalog/domain"
	"github.com/vendora/sales-api/internal/domains/catalog/ports"
)

// DefaultSearchLimit caps search results when the caller passes no limit.
const DefaultSearchLimit = 10

// Service orchestrates catalog use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// Create persists a new product.
func (s *Service) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := *product
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, &clone)
}

// Get fetches a product by identifier.
func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Update merges fields into an existing product.
func (s *Service) Update(ctx context.Context, id string, update domain.ProductUpdate) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := product.Merge(update); err != nil {
		return nil, err
	}
	return s.repo.Save(ctx, product)
}

// Delete removes a product.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// List returns the whole catalog.
func (s *Service) List(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx)
}

// Search matches products by name or description, best matches first.
func (s *Service) Search(ctx context.Context, text string, limit int) ([]*domain.Product, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	return s.repo.Search(ctx, text, limit)
}

// Reserve atomically commits stock to an order line.
func (s *Service) Reserve(ctx context.Context, productID string, quantity int64) (*domain.Product, error) {
	if quantity <= 0 {
		return nil, errors.New("reserve quantity must be positive")
	}
	return s.repo.Reserve(ctx, productID, quantity)
}

// Release returns previously reserved stock to the catalog.
func (s *Service) Release(ctx context.Context, productID string, quantity int64) error {
	if quantity <= 0 {
		return errors.New("release quantity must be positive")
	}
	return s.repo.Release(ctx, productID, quantity)
}

var _ ports.Service = (*Service)(nil)
