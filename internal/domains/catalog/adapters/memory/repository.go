package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/vendora/sales-api/internal/domains/catalog/domain"
	"github.com/vendora/sales-api/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory catalog adapter. The mutex makes Reserve a
// serialized check-and-decrement, matching the conditional update the
// postgres adapter performs.
type Repository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
}

func NewRepository() *Repository {
	return &Repository{products: map[string]*domain.Product{}}
}

func (r *Repository) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := cloneProduct(product)
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == "" {
		clone.ID = uuid.NewString()
	}
	r.products[clone.ID] = clone
	return cloneProduct(clone), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneProduct(product), nil
}

func (r *Repository) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := cloneProduct(product)
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[clone.ID]; !ok {
		return nil, ports.ErrNotFound
	}
	r.products[clone.ID] = clone
	return cloneProduct(clone), nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		list = append(list, cloneProduct(product))
	}
	return list, nil
}

func (r *Repository) Search(_ context.Context, text string, limit int) ([]*domain.Product, error) {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" || limit <= 0 {
		return nil, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	type match struct {
		product *domain.Product
		score   int
	}
	var matches []match
	for _, product := range r.products {
		score := 0
		if strings.Contains(strings.ToLower(product.Name), needle) {
			score += 2
		}
		if strings.Contains(strings.ToLower(product.Description), needle) {
			score++
		}
		if score > 0 {
			matches = append(matches, match{product: cloneProduct(product), score: score})
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].product.Name < matches[j].product.Name
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	results := make([]*domain.Product, 0, len(matches))
	for _, m := range matches {
		results = append(results, m.product)
	}
	return results, nil
}

func (r *Repository) Reserve(_ context.Context, productID string, quantity int64) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[productID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if product.Stock < quantity {
		return nil, &ports.InsufficientStockError{
			ProductName: product.Name,
			Requested:   quantity,
			Available:   product.Stock,
		}
	}
	product.Stock -= quantity
	return cloneProduct(product), nil
}

func (r *Repository) Release(_ context.Context, productID string, quantity int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[productID]
	if !ok {
		return ports.ErrNotFound
	}
	product.Stock += quantity
	return nil
}

func cloneProduct(p *domain.Product) *domain.Product {
	clone := *p
	if p.Tags != nil {
		clone.Tags = append([]string(nil), p.Tags...)
	}
	return &clone
}
