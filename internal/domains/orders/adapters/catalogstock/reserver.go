// Package catalogstock bridges the order engine to the catalog context.
package catalogstock

import (
	"context"

	catalogports "github.com/vendora/sales-api/internal/domains/catalog/ports"
	"github.com/vendora/sales-api/internal/domains/orders/ports"
)

var _ ports.StockReserver = (*Reserver)(nil)

// Reserver adapts the catalog service to the order engine's stock port.
// Reservation errors, including insufficient-stock details, pass through
// unchanged so the transport layer can classify them.
type Reserver struct {
	catalog catalogports.Service
}

func NewReserver(catalog catalogports.Service) *Reserver {
	return &Reserver{catalog: catalog}
}

func (r *Reserver) Reserve(ctx context.Context, productID string, quantity int64) (*ports.ReservedProduct, error) {
	product, err := r.catalog.Reserve(ctx, productID, quantity)
	if err != nil {
		return nil, err
	}
	return &ports.ReservedProduct{
		ID:        product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
	}, nil
}

func (r *Reserver) Release(ctx context.Context, productID string, quantity int64) error {
	return r.catalog.Release(ctx, productID, quantity)
}
