package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/vendora/sales-api/internal/domains/orders/domain"
)

// LineInput is one requested order line. UnitPrice is optional; when nil the
// catalog price at reservation time is captured instead.
type LineInput struct {
	ProductID string
	Quantity  int64
	UnitPrice *decimal.Decimal
}

// PlaceOrderInput carries an order placement request.
type PlaceOrderInput struct {
	ClientID string
	Lines    []LineInput
	// IdempotencyKey, when set, makes retries of the same payload replay the
	// originally placed order instead of reserving stock again.
	IdempotencyKey string
}

// UpdateOrderInput carries optional order changes; nil fields are untouched.
type UpdateOrderInput struct {
	ClientID *string
	Lines    *[]LineInput
	Status   *domain.Status
}

// Service exposes order use cases to adapters. Every operation is guarded
// against the calling vendor.
type Service interface {
	Place(ctx context.Context, callerID string, input PlaceOrderInput) (*domain.Order, error)
	Update(ctx context.Context, callerID, orderID string, input UpdateOrderInput) (*domain.Order, error)
	Delete(ctx context.Context, callerID, orderID string) error
	Get(ctx context.Context, callerID, orderID string) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	ListByVendor(ctx context.Context, vendorID string) ([]*domain.Order, error)
	ListByStatus(ctx context.Context, vendorID string, status domain.Status) ([]*domain.Order, error)
}
