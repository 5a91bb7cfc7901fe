package ports

import (
	"context"

	catalogdomain "github.com/vendora/sales-api/internal/domains/catalog/domain"
)

// Service exposes the reporting use cases to adapters.
type Service interface {
	TopClients(ctx context.Context, limit int) ([]ClientRevenue, error)
	TopVendors(ctx context.Context, limit int) ([]VendorRevenue, error)
	SearchProducts(ctx context.Context, text string, limit int) ([]*catalogdomain.Product, error)
}
