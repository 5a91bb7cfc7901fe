package ports

import (
	"context"

	"github.com/vendora/sales-api/internal/domains/orders/domain"
)

// PlacementOrchestrator runs the order placement sequence, either inline or
// on a durable workflow engine.
type PlacementOrchestrator interface {
	PlaceOrder(ctx context.Context, callerID string, input PlaceOrderInput) (*domain.Order, error)
}
