package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	catalogports "github.com/vendora/sales-api/internal/domains/catalog/ports"
	"github.com/vendora/sales-api/internal/domains/orders/domain"
	ordersports "github.com/vendora/sales-api/internal/domains/orders/ports"
	"github.com/vendora/sales-api/internal/shared/authz"
)

const (
	// CheckClientOwnershipActivityName verifies the caller owns the order's client.
	CheckClientOwnershipActivityName = "orders.activities.CheckClientOwnership"
	// ReserveLineActivityName decrements stock for one order line.
	ReserveLineActivityName = "orders.activities.ReserveLine"
	// ReleaseLineActivityName compensates a prior reservation.
	ReleaseLineActivityName = "orders.activities.ReleaseLine"
	// PersistOrderActivityName stores the order built from reserved lines.
	PersistOrderActivityName = "orders.activities.PersistOrder"
)

// Application error types the workflow treats as non-retryable.
const (
	ErrTypeNotOwned          = "OrderNotOwned"
	ErrTypeClientNotFound    = "OrderClientNotFound"
	ErrTypeInsufficientStock = "OrderInsufficientStock"
	ErrTypeInvalidInput      = "OrderInvalidInput"
)

// OwnershipCheckInput identifies the caller and the client being ordered for.
type OwnershipCheckInput struct {
	CallerID string
	ClientID string
}

// ReleaseLineInput identifies a reservation to undo.
type ReleaseLineInput struct {
	ProductID string
	Quantity  int64
}

// PersistOrderInput carries the reserved lines into the persistence activity.
// RequestHash is the placement fingerprint stored alongside the idempotency
// key so replays outside the workflow resolve to the same order.
type PersistOrderInput struct {
	CallerID       string
	ClientID       string
	Lines          []domain.Line
	IdempotencyKey string
	RequestHash    string
}

// InsufficientStockDetail travels in the application error's details payload;
// the Go error chain does not survive the failure round trip, so the
// orchestrator rebuilds the stock error from these fields.
type InsufficientStockDetail struct {
	ProductName string
	Requested   int64
	Available   int64
}

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	stock       ordersports.StockReserver
	clients     ordersports.ClientDirectory
	repo        ordersports.Repository
	idempotency ordersports.IdempotencyStore
	events      ordersports.EventPublisher
}

// NewActivities wires the order collaborators into the Temporal activities bundle.
func NewActivities(stock ordersports.StockReserver, clients ordersports.ClientDirectory, repo ordersports.Repository, idempotency ordersports.IdempotencyStore, events ordersports.EventPublisher) *Activities {
	if events == nil {
		events = ordersports.NoopPublisher
	}
	return &Activities{
		stock:       stock,
		clients:     clients,
		repo:        repo,
		idempotency: idempotency,
		events:      events,
	}
}

// CheckClientOwnership resolves the client's owning vendor and matches it
// against the caller.
func (a *Activities) CheckClientOwnership(ctx context.Context, input OwnershipCheckInput) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.clients == nil {
		logger.Error("ownership activity not initialized", "clientId", input.ClientID)
		return errors.New("ownership activity not initialized")
	}
	ownerID, err := a.clients.OwnerOf(ctx, input.ClientID)
	if err != nil {
		logger.Error("CheckClientOwnership lookup failed", "clientId", input.ClientID, "error", err)
		return classifyError(err)
	}
	if err := authz.Authorize(ownerID, input.CallerID); err != nil {
		logger.Error("CheckClientOwnership denied", "clientId", input.ClientID)
		return classifyError(err)
	}
	return nil
}

// ReserveLine decrements stock for one line and returns it with the captured
// unit price.
func (a *Activities) ReserveLine(ctx context.Context, input ordersports.LineInput) (*domain.Line, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.stock == nil {
		logger.Error("reserve activity not initialized", "productId", input.ProductID)
		return nil, errors.New("reserve activity not initialized")
	}
	if input.Quantity <= 0 {
		return nil, temporal.NewNonRetryableApplicationError(domain.ErrInvalidQuantity.Error(), ErrTypeInvalidInput, domain.ErrInvalidQuantity)
	}
	logger.Info("ReserveLine activity started", "productId", input.ProductID, "quantity", input.Quantity)
	product, err := a.stock.Reserve(ctx, input.ProductID, input.Quantity)
	if err != nil {
		logger.Error("ReserveLine activity failed", "productId", input.ProductID, "error", err)
		return nil, classifyError(err)
	}
	price := product.UnitPrice
	if input.UnitPrice != nil {
		price = *input.UnitPrice
	}
	return &domain.Line{
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    input.Quantity,
		UnitPrice:   price,
	}, nil
}

// ReleaseLine returns reserved stock after a downstream failure.
func (a *Activities) ReleaseLine(ctx context.Context, input ReleaseLineInput) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.stock == nil {
		logger.Error("release activity not initialized", "productId", input.ProductID)
		return errors.New("release activity not initialized")
	}
	logger.Info("ReleaseLine activity started", "productId", input.ProductID, "quantity", input.Quantity)
	if err := a.stock.Release(ctx, input.ProductID, input.Quantity); err != nil {
		logger.Error("ReleaseLine activity failed", "productId", input.ProductID, "error", err)
		return err
	}
	return nil
}

// PersistOrder builds the pending order from the reserved lines and stores it.
func (a *Activities) PersistOrder(ctx context.Context, input PersistOrderInput) (*domain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.repo == nil {
		logger.Error("persist activity not initialized", "clientId", input.ClientID)
		return nil, errors.New("persist activity not initialized")
	}
	order, err := domain.NewOrder(input.CallerID, input.ClientID, input.Lines)
	if err != nil {
		return nil, temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeInvalidInput, err)
	}
	placed, err := a.repo.Create(ctx, order)
	if err != nil {
		logger.Error("PersistOrder activity failed", "clientId", input.ClientID, "error", err)
		return nil, err
	}
	if a.idempotency != nil && input.IdempotencyKey != "" {
		if _, err := a.idempotency.Save(ctx, ordersports.IdempotencyRecord{
			Key:         input.IdempotencyKey,
			RequestHash: input.RequestHash,
			OrderID:     placed.ID,
		}); err != nil && !errors.Is(err, ordersports.ErrIdempotencyConflict) {
			logger.Error("PersistOrder idempotency save failed", "orderId", placed.ID, "error", err)
		}
	}
	_ = a.events.Publish(ctx, ordersports.Event{
		Type:     ordersports.EventOrderPlaced,
		OrderID:  placed.ID,
		VendorID: placed.VendorID,
		ClientID: placed.ClientID,
		Total:    placed.Total.String(),
		Status:   string(placed.Status),
	})
	logger.Info("PersistOrder activity completed", "orderId", placed.ID)
	return placed, nil
}

func classifyError(err error) error {
	var stockErr *catalogports.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeInsufficientStock, err, InsufficientStockDetail{
			ProductName: stockErr.ProductName,
			Requested:   stockErr.Requested,
			Available:   stockErr.Available,
		})
	case errors.Is(err, authz.ErrNotOwned):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeNotOwned, err)
	case errors.Is(err, ordersports.ErrClientNotFound):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeClientNotFound, err)
	case errors.Is(err, catalogports.ErrNotFound):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeInvalidInput, err)
	default:
		return err
	}
}
