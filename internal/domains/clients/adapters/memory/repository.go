package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/vendora/sales-api/internal/domains/clients/domain"
	"github.com/vendora/sales-api/internal/domains/clients/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory client persistence adapter.
type Repository struct {
	mu      sync.RWMutex
	clients map[string]*domain.Client
}

func NewRepository() *Repository {
	return &Repository{clients: map[string]*domain.Client{}}
}

func (r *Repository) Create(_ context.Context, client *domain.Client) (*domain.Client, error) {
	if client == nil {
		return nil, errors.New("client is nil")
	}
	clone := *client
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.clients {
		if existing.Email == clone.Email {
			return nil, ports.ErrEmailTaken
		}
	}
	if clone.ID == "" {
		clone.ID = uuid.NewString()
	}
	r.clients[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	client, ok := r.clients[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *client
	return &clone, nil
}

func (r *Repository) Save(_ context.Context, client *domain.Client) (*domain.Client, error) {
	if client == nil {
		return nil, errors.New("client is nil")
	}
	clone := *client
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[clone.ID]; !ok {
		return nil, ports.ErrNotFound
	}
	r.clients[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.clients, id)
	return nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Client, 0, len(r.clients))
	for _, client := range r.clients {
		clone := *client
		list = append(list, &clone)
	}
	return list, nil
}

func (r *Repository) ListByVendor(_ context.Context, vendorID string) ([]*domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*domain.Client
	for _, client := range r.clients {
		if client.VendorID == vendorID {
			clone := *client
			list = append(list, &clone)
		}
	}
	return list, nil
}
