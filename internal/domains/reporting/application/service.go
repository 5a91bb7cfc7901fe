package application

import (
	"context"

	catalogdomain "github.com/vendora/sales-api/internal/domains/catalog/domain"
	catalogports "github.com/vendora/sales-api/internal/domains/catalog/ports"
	"github.com/vendora/sales-api/internal/domains/reporting/ports"
)

// Default report sizes when the caller does not ask for a specific limit.
const (
	DefaultTopClientsLimit = 10
	DefaultTopVendorsLimit = 3
	DefaultSearchLimit     = 10
)

// Service answers revenue and discovery queries over the sales data.
type Service struct {
	reader  ports.Reader
	catalog catalogports.Service
}

func NewService(reader ports.Reader, catalog catalogports.Service) *Service {
	return &Service{reader: reader, catalog: catalog}
}

// TopClients returns the highest-revenue clients by completed-order total.
func (s *Service) TopClients(ctx context.Context, limit int) ([]ports.ClientRevenue, error) {
	if limit <= 0 {
		limit = DefaultTopClientsLimit
	}
	return s.reader.TopClients(ctx, limit)
}

// TopVendors returns the highest-revenue vendors by completed-order total.
func (s *Service) TopVendors(ctx context.Context, limit int) ([]ports.VendorRevenue, error) {
	if limit <= 0 {
		limit = DefaultTopVendorsLimit
	}
	return s.reader.TopVendors(ctx, limit)
}

// SearchProducts runs the catalog text search with the report default limit.
func (s *Service) SearchProducts(ctx context.Context, text string, limit int) ([]*catalogdomain.Product, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	return s.catalog.Search(ctx, text, limit)
}

var _ ports.Service = (*Service)(nil)
