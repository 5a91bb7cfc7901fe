// Package clientdir bridges the order engine to the clients context.
package clientdir

import (
	"context"
	"errors"

	clientports "github.com/vendora/sales-api/internal/domains/clients/ports"
	"github.com/vendora/sales-api/internal/domains/orders/ports"
)

var _ ports.ClientDirectory = (*Directory)(nil)

// Directory resolves client ownership straight from the client repository.
// The ownership decision itself belongs to the order engine, so the lookup
// deliberately skips the client service's caller guard.
type Directory struct {
	clients clientports.Repository
}

func NewDirectory(clients clientports.Repository) *Directory {
	return &Directory{clients: clients}
}

func (d *Directory) OwnerOf(ctx context.Context, clientID string) (string, error) {
	client, err := d.clients.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, clientports.ErrNotFound) {
			return "", ports.ErrClientNotFound
		}
		return "", err
	}
	return client.VendorID, nil
}
