package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ReservedProduct is the catalog view the order engine needs after a
// successful reservation: the captured price and the display name.
type ReservedProduct struct {
	ID        string
	Name      string
	UnitPrice decimal.Decimal
}

// StockReserver is the order engine's view of the catalog store. Reserve must
// be atomic with respect to concurrent reservations of the same product;
// Release is its compensating increment.
type StockReserver interface {
	Reserve(ctx context.Context, productID string, quantity int64) (*ReservedProduct, error)
	Release(ctx context.Context, productID string, quantity int64) error
}

// ClientDirectory resolves the owning vendor of a client record. Missing
// clients yield ErrClientNotFound.
type ClientDirectory interface {
	OwnerOf(ctx context.Context, clientID string) (string, error)
}

// Event captures an order lifecycle change for downstream consumers.
type Event struct {
	Type       string    `json:"type"`
	OrderID    string    `json:"order_id"`
	VendorID   string    `json:"vendor_id"`
	ClientID   string    `json:"client_id"`
	Total      string    `json:"total"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Event types emitted by the order engine.
const (
	EventOrderPlaced    = "order.placed"
	EventOrderUpdated   = "order.updated"
	EventOrderCompleted = "order.completed"
	EventOrderCanceled  = "order.canceled"
	EventOrderDeleted   = "order.deleted"
)

// EventPublisher delivers order lifecycle events. Delivery is best effort;
// the engine never fails an operation because publishing failed.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// NoopPublisher drops events; used when no broker is configured.
var NoopPublisher EventPublisher = noopPublisher{}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, Event) error { return nil }
