package ports

import (
	"context"

	"github.com/vendora/sales-api/internal/domains/clients/domain"
)

// ClientUpdate carries optional update fields; empty strings leave the
// current value untouched.
type ClientUpdate struct {
	Email   string
	Name    string
	Surname string
	Company string
	Phone   string
}

// Service exposes client use cases to adapters. All mutations and owner-scoped
// reads are guarded against the calling vendor.
type Service interface {
	Create(ctx context.Context, callerID string, client *domain.Client) (*domain.Client, error)
	Get(ctx context.Context, callerID, id string) (*domain.Client, error)
	Update(ctx context.Context, callerID, id string, update ClientUpdate) (*domain.Client, error)
	Delete(ctx context.Context, callerID, id string) error
	List(ctx context.Context) ([]*domain.Client, error)
	ListByVendor(ctx context.Context, vendorID string) ([]*domain.Client, error)
}
