package application

import (
	"context"
	"errors"
	"time"

	"github.com/vendora/sales-api/internal/domains/orders/domain"
	"github.com/vendora/sales-api/internal/domains/orders/ports"
	"github.com/vendora/sales-api/internal/shared/authz"
)

// Service orchestrates order use cases: ownership-guarded placement with
// all-or-nothing stock reservation, lifecycle updates, and owner-scoped reads.
type Service struct {
	repo        ports.Repository
	stock       ports.StockReserver
	clients     ports.ClientDirectory
	idempotency ports.IdempotencyStore
	events      ports.EventPublisher
}

type Option func(*Service)

// WithIdempotencyStore enables idempotent placement via client-supplied keys.
func WithIdempotencyStore(store ports.IdempotencyStore) Option {
	return func(s *Service) { s.idempotency = store }
}

// WithEventPublisher injects the lifecycle event sink.
func WithEventPublisher(publisher ports.EventPublisher) Option {
	return func(s *Service) { s.events = publisher }
}

func NewService(repo ports.Repository, stock ports.StockReserver, clients ports.ClientDirectory, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		stock:   stock,
		clients: clients,
		events:  ports.NoopPublisher,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.events == nil {
		s.events = ports.NoopPublisher
	}
	return s
}

// Place validates the order against the caller's ownership of the client,
// reserves every line atomically as a unit, and persists a pending order.
// A failed line releases all prior reservations, so an order either fully
// succeeds or leaves stock untouched.
func (s *Service) Place(ctx context.Context, callerID string, input ports.PlaceOrderInput) (*domain.Order, error) {
	if callerID == "" {
		return nil, authz.ErrNotOwned
	}
	var requestHash string
	if s.idempotency != nil && input.IdempotencyKey != "" {
		var err error
		requestHash, err = FingerprintPlaceOrder(input)
		if err != nil {
			return nil, err
		}
		record, err := s.idempotency.Get(ctx, input.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if record != nil {
			if record.RequestHash != requestHash {
				return nil, ports.ErrIdempotencyConflict
			}
			return s.repo.GetByID(ctx, record.OrderID)
		}
	}

	ownerID, err := s.clients.OwnerOf(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(ownerID, callerID); err != nil {
		return nil, err
	}

	lines, err := s.reserveAll(ctx, input.Lines)
	if err != nil {
		return nil, err
	}

	order, err := domain.NewOrder(callerID, input.ClientID, lines)
	if err != nil {
		s.releaseAll(ctx, lines)
		return nil, mapError(err)
	}
	placed, err := s.repo.Create(ctx, order)
	if err != nil {
		s.releaseAll(ctx, lines)
		return nil, err
	}

	if s.idempotency != nil && input.IdempotencyKey != "" {
		if _, err := s.idempotency.Save(ctx, ports.IdempotencyRecord{
			Key:         input.IdempotencyKey,
			RequestHash: requestHash,
			OrderID:     placed.ID,
		}); err != nil && !errors.Is(err, ports.ErrIdempotencyConflict) {
			return nil, err
		}
	}

	s.publish(ctx, ports.EventOrderPlaced, placed)
	return placed, nil
}

// Update applies partial changes to an order the caller owns. New lines
// replace the previous reservation: the new set is reserved first (all or
// nothing), then the old reservation is released. Status moves drive the
// pending→completed/canceled lifecycle; canceling returns reserved stock.
func (s *Service) Update(ctx context.Context, callerID, orderID string, input ports.UpdateOrderInput) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(order.VendorID, callerID); err != nil {
		return nil, err
	}

	if input.ClientID != nil && *input.ClientID != order.ClientID {
		ownerID, err := s.clients.OwnerOf(ctx, *input.ClientID)
		if err != nil {
			return nil, err
		}
		if err := authz.Authorize(ownerID, callerID); err != nil {
			return nil, err
		}
		order.ClientID = *input.ClientID
	}

	// Reservations made in this call are undone if the save fails; stock held
	// by the stored order is released only once the new state is persisted.
	var reserved, released []domain.Line
	if input.Lines != nil {
		if order.Status != domain.StatusPending {
			return nil, mapError(domain.ErrInvalidTransition)
		}
		newLines, err := s.reserveAll(ctx, *input.Lines)
		if err != nil {
			return nil, err
		}
		previous := order.Lines
		if err := order.ReplaceLines(newLines); err != nil {
			s.releaseAll(ctx, newLines)
			return nil, mapError(err)
		}
		reserved = newLines
		released = previous
	}

	eventType := ports.EventOrderUpdated
	if input.Status != nil {
		wasPending := order.Status == domain.StatusPending
		if err := order.TransitionTo(*input.Status); err != nil {
			s.releaseAll(ctx, reserved)
			return nil, mapError(err)
		}
		if wasPending && order.Status == domain.StatusCanceled {
			// A canceled pending order no longer commits inventory.
			released = append(released, order.Lines...)
			eventType = ports.EventOrderCanceled
		}
		if wasPending && order.Status == domain.StatusCompleted {
			eventType = ports.EventOrderCompleted
		}
	}

	updated, err := s.repo.Save(ctx, order)
	if err != nil {
		s.releaseAll(ctx, reserved)
		return nil, err
	}
	s.releaseAll(ctx, released)
	s.publish(ctx, eventType, updated)
	return updated, nil
}

// Delete removes an order the caller owns, returning reserved stock when the
// order was still pending.
func (s *Service) Delete(ctx context.Context, callerID, orderID string) error {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if err := authz.Authorize(order.VendorID, callerID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, orderID); err != nil {
		return err
	}
	if order.Status == domain.StatusPending {
		s.releaseAll(ctx, order.Lines)
	}
	s.publish(ctx, ports.EventOrderDeleted, order)
	return nil
}

// Get returns an order the caller owns.
func (s *Service) Get(ctx context.Context, callerID, orderID string) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(order.VendorID, callerID); err != nil {
		return nil, err
	}
	return order, nil
}

// List returns every order regardless of vendor.
func (s *Service) List(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.List(ctx)
}

// ListByVendor returns the caller's own orders.
func (s *Service) ListByVendor(ctx context.Context, vendorID string) ([]*domain.Order, error) {
	return s.repo.ListByVendor(ctx, vendorID)
}

// ListByStatus returns the caller's own orders in one lifecycle state.
func (s *Service) ListByStatus(ctx context.Context, vendorID string, status domain.Status) ([]*domain.Order, error) {
	return s.repo.ListByVendorAndStatus(ctx, vendorID, status)
}

// reserveAll reserves every line in request order. On the first failure it
// releases the prior reservations in reverse order and returns the error, so
// no partial reservation survives.
func (s *Service) reserveAll(ctx context.Context, inputs []ports.LineInput) ([]domain.Line, error) {
	if len(inputs) == 0 {
		return nil, mapError(domain.ErrNoLines)
	}
	reserved := make([]domain.Line, 0, len(inputs))
	for _, in := range inputs {
		if in.Quantity <= 0 {
			s.releaseAll(ctx, reserved)
			return nil, mapError(domain.ErrInvalidQuantity)
		}
		product, err := s.stock.Reserve(ctx, in.ProductID, in.Quantity)
		if err != nil {
			s.releaseAll(ctx, reserved)
			return nil, err
		}
		price := product.UnitPrice
		if in.UnitPrice != nil {
			price = *in.UnitPrice
		}
		reserved = append(reserved, domain.Line{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    in.Quantity,
			UnitPrice:   price,
		})
	}
	return reserved, nil
}

func (s *Service) releaseAll(ctx context.Context, lines []domain.Line) {
	for i := len(lines) - 1; i >= 0; i-- {
		_ = s.stock.Release(ctx, lines[i].ProductID, lines[i].Quantity)
	}
}

func (s *Service) publish(ctx context.Context, eventType string, order *domain.Order) {
	if order == nil {
		return
	}
	_ = s.events.Publish(ctx, ports.Event{
		Type:       eventType,
		OrderID:    order.ID,
		VendorID:   order.VendorID,
		ClientID:   order.ClientID,
		Total:      order.Total.String(),
		Status:     string(order.Status),
		OccurredAt: time.Now().UTC(),
	})
}

var _ ports.Service = (*Service)(nil)
