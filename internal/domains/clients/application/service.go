package application

import (
	"context"
	"errors"

	"github.com/vendora/sales-api/internal/domains/clients/domain"
	"github.com/vendora/sales-api/internal/domains/clients/ports"
	"github.com/vendora/sales-api/internal/shared/authz"
)

// Service orchestrates client use cases behind the ownership guard.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// Create persists a client owned by the caller.
func (s *Service) Create(ctx context.Context, callerID string, client *domain.Client) (*domain.Client, error) {
	if client == nil {
		return nil, errors.New("client is nil")
	}
	clone := *client
	clone.VendorID = callerID
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, &clone)
}

// Get returns a client the caller owns.
func (s *Service) Get(ctx context.Context, callerID, id string) (*domain.Client, error) {
	return s.loadOwned(ctx, callerID, id)
}

// Update merges the given fields into a client the caller owns.
func (s *Service) Update(ctx context.Context, callerID, id string, update ports.ClientUpdate) (*domain.Client, error) {
	client, err := s.loadOwned(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	if err := client.Merge(update.Email, update.Name, update.Surname, update.Company, update.Phone); err != nil {
		return nil, err
	}
	return s.repo.Save(ctx, client)
}

// Delete removes a client the caller owns.
func (s *Service) Delete(ctx context.Context, callerID, id string) error {
	if _, err := s.loadOwned(ctx, callerID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// List returns every client regardless of vendor.
func (s *Service) List(ctx context.Context) ([]*domain.Client, error) {
	return s.repo.List(ctx)
}

// ListByVendor returns the clients owned by the given vendor.
func (s *Service) ListByVendor(ctx context.Context, vendorID string) ([]*domain.Client, error) {
	return s.repo.ListByVendor(ctx, vendorID)
}

func (s *Service) loadOwned(ctx context.Context, callerID, id string) (*domain.Client, error) {
	client, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(client.VendorID, callerID); err != nil {
		return nil, err
	}
	return client, nil
}

var _ ports.Service = (*Service)(nil)
