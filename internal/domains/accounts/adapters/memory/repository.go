package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/vendora/sales-api/internal/domains/accounts/domain"
	"github.com/vendora/sales-api/internal/domains/accounts/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory account persistence adapter.
type Repository struct {
	mu      sync.RWMutex
	byID    map[string]*domain.User
	byEmail map[string]string
}

func NewRepository() *Repository {
	return &Repository{byID: map[string]*domain.User{}, byEmail: map[string]string{}}
}

func (r *Repository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	clone := *user
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byEmail[clone.Email]; taken {
		return nil, ports.ErrEmailTaken
	}
	if clone.ID == "" {
		clone.ID = uuid.NewString()
	}
	r.byID[clone.ID] = &clone
	r.byEmail[clone.Email] = clone.ID
	result := clone
	return &result, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byID[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *Repository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *r.byID[id]
	return &clone, nil
}

func (r *Repository) List(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]*domain.User, 0, len(r.byID))
	for _, user := range r.byID {
		clone := *user
		users = append(users, &clone)
	}
	return users, nil
}
