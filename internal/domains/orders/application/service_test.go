package application

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendora/sales-api/internal/domains/orders/domain"
	"github.com/vendora/sales-api/internal/domains/orders/ports"
	"github.com/vendora/sales-api/internal/shared/authz"
)

type fakeOrderRepo struct {
	mu      sync.Mutex
	orders  map[string]*domain.Order
	saveErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]*domain.Order{}}
}

func (r *fakeOrderRepo) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *order
	if clone.ID == "" {
		clone.ID = uuid.NewString()
	}
	r.orders[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *order
	return &clone, nil
}

func (r *fakeOrderRepo) Save(_ context.Context, order *domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	if _, ok := r.orders[order.ID]; !ok {
		return nil, ports.ErrNotFound
	}
	clone := *order
	r.orders[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

func (r *fakeOrderRepo) List(_ context.Context) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		clone := *order
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeOrderRepo) ListByVendor(_ context.Context, vendorID string) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Order
	for _, order := range r.orders {
		if order.VendorID == vendorID {
			clone := *order
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ListByVendorAndStatus(_ context.Context, vendorID string, status domain.Status) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Order
	for _, order := range r.orders {
		if order.VendorID == vendorID && order.Status == status {
			clone := *order
			out = append(out, &clone)
		}
	}
	return out, nil
}

type fakeProduct struct {
	name  string
	price decimal.Decimal
	stock int64
}

type fakeStock struct {
	mu       sync.Mutex
	products map[string]*fakeProduct
	failOn   string
	failErr  error
}

func newFakeStock() *fakeStock {
	return &fakeStock{products: map[string]*fakeProduct{}}
}

func (s *fakeStock) add(id, name string, price string, stock int64) {
	s.products[id] = &fakeProduct{name: name, price: decimal.RequireFromString(price), stock: stock}
}

func (s *fakeStock) level(id string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id].stock
}

func (s *fakeStock) Reserve(_ context.Context, productID string, quantity int64) (*ports.ReservedProduct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOn == productID {
		return nil, s.failErr
	}
	product, ok := s.products[productID]
	if !ok {
		return nil, errors.New("product not found")
	}
	if product.stock < quantity {
		return nil, errors.New("insufficient stock")
	}
	product.stock -= quantity
	return &ports.ReservedProduct{ID: productID, Name: product.name, UnitPrice: product.price}, nil
}

func (s *fakeStock) Release(_ context.Context, productID string, quantity int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if product, ok := s.products[productID]; ok {
		product.stock += quantity
	}
	return nil
}

type fakeDirectory struct {
	owners map[string]string
}

func (d *fakeDirectory) OwnerOf(_ context.Context, clientID string) (string, error) {
	owner, ok := d.owners[clientID]
	if !ok {
		return "", ports.ErrClientNotFound
	}
	return owner, nil
}

type fakeIdempotencyStore struct {
	mu      sync.Mutex
	records map[string]ports.IdempotencyRecord
}

func newFakeIdempotencyStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{records: map[string]ports.IdempotencyRecord{}}
}

func (s *fakeIdempotencyStore) Get(_ context.Context, key string) (*ports.IdempotencyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[key]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (s *fakeIdempotencyStore) Save(_ context.Context, record ports.IdempotencyRecord) (*ports.IdempotencyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.records[record.Key]; ok {
		if existing.RequestHash != record.RequestHash || existing.OrderID != record.OrderID {
			return &existing, ports.ErrIdempotencyConflict
		}
		return &existing, nil
	}
	s.records[record.Key] = record
	return &record, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []ports.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event ports.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, event := range p.events {
		out = append(out, event.Type)
	}
	return out
}

type orderFixture struct {
	service   *Service
	repo      *fakeOrderRepo
	stock     *fakeStock
	directory *fakeDirectory
	idem      *fakeIdempotencyStore
	events    *recordingPublisher
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		repo:      newFakeOrderRepo(),
		stock:     newFakeStock(),
		directory: &fakeDirectory{owners: map[string]string{"client-1": "vendor-1", "client-2": "vendor-2"}},
		idem:      newFakeIdempotencyStore(),
		events:    &recordingPublisher{},
	}
	f.stock.add("prod-1", "Widget", "10.00", 100)
	f.stock.add("prod-2", "Gadget", "25.50", 10)
	f.service = NewService(f.repo, f.stock, f.directory,
		WithIdempotencyStore(f.idem),
		WithEventPublisher(f.events),
	)
	return f
}

func TestPlaceOrderCapturesPricesAndDecrementsStock(t *testing.T) {
	f := newOrderFixture()

	order, err := f.service.Place(context.Background(), "vendor-1", ports.PlaceOrderInput{
		ClientID: "client-1",
		Lines: []ports.LineInput{
			{ProductID: "prod-1", Quantity: 3},
			{ProductID: "prod-2", Quantity: 2},
		},
	})
	require.NoError(t, err)
	require.Len(t, order.Lines, 2)

	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Equal(t, "Widget", order.Lines[0].ProductName)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("81.00")), "total was %s", order.Total)
	assert.EqualValues(t, 97, f.stock.level("prod-1"))
	assert.EqualValues(t, 8, f.stock.level("prod-2"))
	assert.Equal(t, []string{ports.EventOrderPlaced}, f.events.types())
}

func TestPlaceOrderHonorsRequestedUnitPrice(t *testing.T) {
	f := newOrderFixture()
	discounted := decimal.RequireFromString("8.00")

	order, err := f.service.Place(context.Background(), "vendor-1", ports.PlaceOrderInput{
		ClientID: "client-1",
		Lines:    []ports.LineInput{{ProductID: "prod-1", Quantity: 2, UnitPrice: &discounted}},
	})
	require.NoError(t, err)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("16.00")))
}

func TestPlaceOrderReleasesEarlierLinesWhenOneFails(t *testing.T) {
	f := newOrderFixture()
	f.stock.failOn = "prod-2"
	f.stock.failErr = errors.New("insufficient stock")

	_, err := f.service.Place(context.Background(), "vendor-1", ports.PlaceOrderInput{
		ClientID: "client-1",
		Lines: []ports.LineInput{
			{ProductID: "prod-1", Quantity: 5},
			{ProductID: "prod-2", Quantity: 1},
		},
	})
	require.Error(t, err)

	assert.EqualValues(t, 100, f.stock.level("prod-1"), "failed placement must leave stock untouched")
	assert.Empty(t, f.events.types())
	orders, _ := f.repo.List(context.Background())
	assert.Empty(t, orders)
}

func TestPlaceOrderRejectsForeignClient(t *testing.T) {
	f := newOrderFixture()

	_, err := f.service.Place(context.Background(), "vendor-1", ports.PlaceOrderInput{
		ClientID: "client-2",
		Lines:    []ports.LineInput{{ProductID: "prod-1", Quantity: 1}},
	})
	require.ErrorIs(t, err, authz.ErrNotOwned)
	assert.EqualValues(t, 100, f.stock.level("prod-1"))
}

func TestPlaceOrderUnknownClient(t *testing.T) {
	f := newOrderFixture()

	_, err := f.service.Place(context.Background(), "vendor-1", ports.PlaceOrderInput{
		ClientID: "missing",
		Lines:    []ports.LineInput{{ProductID: "prod-1", Quantity: 1}},
	})
	require.ErrorIs(t, err, ports.ErrClientNotFound)
}

func TestPlaceOrderRejectsEmptyLines(t *testing.T) {
	f := newOrderFixture()

	_, err := f.service.Place(context.Background(), "vendor-1", ports.PlaceOrderInput{ClientID: "client-1"})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrNoLines)
}

func TestPlaceOrderRejectsNonPositiveQuantity(t *testing.T) {
	f := newOrderFixture()

	_, err := f.service.Place(context.Background(), "vendor-1", ports.PlaceOrderInput{
		ClientID: "client-1",
		Lines:    []ports.LineInput{{ProductID: "prod-1", Quantity: 0}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestPlaceOrderIdempotentReplay(t *testing.T) {
	f := newOrderFixture()
	input := ports.PlaceOrderInput{
		ClientID:       "client-1",
		Lines:          []ports.LineInput{{ProductID: "prod-1", Quantity: 4}},
		IdempotencyKey: "retry-key",
	}

	first, err := f.service.Place(context.Background(), "vendor-1", input)
	require.NoError(t, err)

	second, err := f.service.Place(context.Background(), "vendor-1", input)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.EqualValues(t, 96, f.stock.level("prod-1"), "replay must not reserve again")
	assert.Equal(t, []string{ports.EventOrderPlaced}, f.events.types())
}

func TestPlaceOrderIdempotencyKeyReusedWithDifferentPayload(t *testing.T) {
	f := newOrderFixture()
	input := ports.PlaceOrderInput{
		ClientID:       "client-1",
		Lines:          []ports.LineInput{{ProductID: "prod-1", Quantity: 4}},
		IdempotencyKey: "retry-key",
	}
	_, err := f.service.Place(context.Background(), "vendor-1", input)
	require.NoError(t, err)

	input.Lines[0].Quantity = 5
	_, err = f.service.Place(context.Background(), "vendor-1", input)
	require.ErrorIs(t, err, ports.ErrIdempotencyConflict)
	assert.EqualValues(t, 96, f.stock.level("prod-1"))
}

func TestUpdateOrderReplacesLinesAndRestoresOldReservation(t *testing.T) {
	f := newOrderFixture()
	order := placeOrder(t, f, "vendor-1", "client-1", ports.LineInput{ProductID: "prod-1", Quantity: 10})
	require.EqualValues(t, 90, f.stock.level("prod-1"))

	newLines := []ports.LineInput{{ProductID: "prod-2", Quantity: 3}}
	updated, err := f.service.Update(context.Background(), "vendor-1", order.ID, ports.UpdateOrderInput{Lines: &newLines})
	require.NoError(t, err)

	assert.EqualValues(t, 100, f.stock.level("prod-1"), "old lines released")
	assert.EqualValues(t, 7, f.stock.level("prod-2"), "new lines reserved")
	require.Len(t, updated.Lines, 1)
	assert.True(t, updated.Total.Equal(decimal.RequireFromString("76.50")))
}

func TestUpdateOrderKeepsOldReservationWhenNewLinesFail(t *testing.T) {
	f := newOrderFixture()
	order := placeOrder(t, f, "vendor-1", "client-1", ports.LineInput{ProductID: "prod-1", Quantity: 10})

	newLines := []ports.LineInput{{ProductID: "prod-2", Quantity: 999}}
	_, err := f.service.Update(context.Background(), "vendor-1", order.ID, ports.UpdateOrderInput{Lines: &newLines})
	require.Error(t, err)

	assert.EqualValues(t, 90, f.stock.level("prod-1"), "failed update must keep the original reservation")
	assert.EqualValues(t, 10, f.stock.level("prod-2"))

	kept, err := f.service.Get(context.Background(), "vendor-1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.Lines, kept.Lines)
}

func TestUpdateOrderFailedSaveKeepsStoredReservation(t *testing.T) {
	f := newOrderFixture()
	order := placeOrder(t, f, "vendor-1", "client-1", ports.LineInput{ProductID: "prod-1", Quantity: 3})
	require.EqualValues(t, 97, f.stock.level("prod-1"))

	f.repo.saveErr = errors.New("connection reset")
	newLines := []ports.LineInput{{ProductID: "prod-2", Quantity: 2}}
	_, err := f.service.Update(context.Background(), "vendor-1", order.ID, ports.UpdateOrderInput{Lines: &newLines})
	require.Error(t, err)

	assert.EqualValues(t, 97, f.stock.level("prod-1"), "stored order still holds its reservation")
	assert.EqualValues(t, 10, f.stock.level("prod-2"), "reservation for unsaved lines must be undone")

	f.repo.saveErr = nil
	kept, err := f.service.Get(context.Background(), "vendor-1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.Lines, kept.Lines)
}

func TestUpdateOrderFailedSaveKeepsCancelReservation(t *testing.T) {
	f := newOrderFixture()
	order := placeOrder(t, f, "vendor-1", "client-1", ports.LineInput{ProductID: "prod-1", Quantity: 6})
	require.EqualValues(t, 94, f.stock.level("prod-1"))

	f.repo.saveErr = errors.New("connection reset")
	canceled := domain.StatusCanceled
	_, err := f.service.Update(context.Background(), "vendor-1", order.ID, ports.UpdateOrderInput{Status: &canceled})
	require.Error(t, err)

	assert.EqualValues(t, 94, f.stock.level("prod-1"), "stock returns only once the cancel is persisted")

	f.repo.saveErr = nil
	kept, err := f.service.Get(context.Background(), "vendor-1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, kept.Status)
}

func TestUpdateOrderCancelReturnsStock(t *testing.T) {
	f := newOrderFixture()
	order := placeOrder(t, f, "vendor-1", "client-1", ports.LineInput{ProductID: "prod-1", Quantity: 6})
	require.EqualValues(t, 94, f.stock.level("prod-1"))

	canceled := domain.StatusCanceled
	updated, err := f.service.Update(context.Background(), "vendor-1", order.ID, ports.UpdateOrderInput{Status: &canceled})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCanceled, updated.Status)
	assert.EqualValues(t, 100, f.stock.level("prod-1"))
	assert.Contains(t, f.events.types(), ports.EventOrderCanceled)
}

func TestUpdateOrderCompleteKeepsStockCommitted(t *testing.T) {
	f := newOrderFixture()
	order := placeOrder(t, f, "vendor-1", "client-1", ports.LineInput{ProductID: "prod-1", Quantity: 6})

	completed := domain.StatusCompleted
	updated, err := f.service.Update(context.Background(), "vendor-1", order.ID, ports.UpdateOrderInput{Status: &completed})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, updated.Status)
	assert.EqualValues(t, 94, f.stock.level("prod-1"), "completed orders keep stock committed")
	assert.Contains(t, f.events.types(), ports.EventOrderCompleted)
}

func TestUpdateOrderRejectsLineEditAfterCompletion(t *testing.T) {
	f := newOrderFixture()
	order := placeOrder(t, f, "vendor-1", "client-1", ports.LineInput{ProductID: "prod-1", Quantity: 2})

	completed := domain.StatusCompleted
	_, err := f.service.Update(context.Background(), "vendor-1", order.ID, ports.UpdateOrderInput{Status: &completed})
	require.NoError(t, err)

	newLines := []ports.LineInput{{ProductID: "prod-2", Quantity: 1}}
	_, err = f.service.Update(context.Background(), "vendor-1", order.ID, ports.UpdateOrderInput{Lines: &newLines})
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.EqualValues(t, 10, f.stock.level("prod-2"))
}

func TestUpdateOrderRejectsTransitionOutOfTerminalState(t *testing.T) {
	f := newOrderFixture()
	order := placeOrder(t, f, "vendor-1", "client-1", ports.LineInput{ProductID: "prod-1", Quantity: 2})

	canceled := domain.StatusCanceled
	_, err := f.service.Update(context.Background(), "vendor-1", order.ID, ports.UpdateOrderInput{Status: &canceled})
	require.NoError(t, err)

	completed := domain.StatusCompleted
	_, err = f.service.Update(context.Background(), "vendor-1", order.ID, ports.UpdateOrderInput{Status: &completed})
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUpdateOrderReassignClientRequiresOwnership(t *testing.T) {
	f := newOrderFixture()
	order := placeOrder(t, f, "vendor-1", "client-1", ports.LineInput{ProductID: "prod-1", Quantity: 1})

	foreign := "client-2"
	_, err := f.service.Update(context.Background(), "vendor-1", order.ID, ports.UpdateOrderInput{ClientID: &foreign})
	require.ErrorIs(t, err, authz.ErrNotOwned)
}

func TestUpdateOrderForeignVendorDenied(t *testing.T) {
	f := newOrderFixture()
	order := placeOrder(t, f, "vendor-1", "client-1", ports.LineInput{ProductID: "prod-1", Quantity: 1})

	canceled := domain.StatusCanceled
	_, err := f.service.Update(context.Background(), "vendor-2", order.ID, ports.UpdateOrderInput{Status: &canceled})
	require.ErrorIs(t, err, authz.ErrNotOwned)

	kept, err := f.service.Get(context.Background(), "vendor-1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, kept.Status)
}

func TestDeletePendingOrderReturnsStock(t *testing.T) {
	f := newOrderFixture()
	order := placeOrder(t, f, "vendor-1", "client-1", ports.LineInput{ProductID: "prod-1", Quantity: 7})
	require.EqualValues(t, 93, f.stock.level("prod-1"))

	require.NoError(t, f.service.Delete(context.Background(), "vendor-1", order.ID))
	assert.EqualValues(t, 100, f.stock.level("prod-1"))

	_, err := f.service.Get(context.Background(), "vendor-1", order.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
	assert.Contains(t, f.events.types(), ports.EventOrderDeleted)
}

func TestDeleteCompletedOrderKeepsStockCommitted(t *testing.T) {
	f := newOrderFixture()
	order := placeOrder(t, f, "vendor-1", "client-1", ports.LineInput{ProductID: "prod-1", Quantity: 7})

	completed := domain.StatusCompleted
	_, err := f.service.Update(context.Background(), "vendor-1", order.ID, ports.UpdateOrderInput{Status: &completed})
	require.NoError(t, err)

	require.NoError(t, f.service.Delete(context.Background(), "vendor-1", order.ID))
	assert.EqualValues(t, 93, f.stock.level("prod-1"))
}

func TestDeleteForeignOrderDenied(t *testing.T) {
	f := newOrderFixture()
	order := placeOrder(t, f, "vendor-1", "client-1", ports.LineInput{ProductID: "prod-1", Quantity: 1})

	err := f.service.Delete(context.Background(), "vendor-2", order.ID)
	require.ErrorIs(t, err, authz.ErrNotOwned)
}

func TestGetUnknownOrder(t *testing.T) {
	f := newOrderFixture()

	_, err := f.service.Get(context.Background(), "vendor-1", uuid.NewString())
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestListByVendorAndStatus(t *testing.T) {
	f := newOrderFixture()
	first := placeOrder(t, f, "vendor-1", "client-1", ports.LineInput{ProductID: "prod-1", Quantity: 1})
	placeOrder(t, f, "vendor-1", "client-1", ports.LineInput{ProductID: "prod-1", Quantity: 1})

	completed := domain.StatusCompleted
	_, err := f.service.Update(context.Background(), "vendor-1", first.ID, ports.UpdateOrderInput{Status: &completed})
	require.NoError(t, err)

	pending, err := f.service.ListByStatus(context.Background(), "vendor-1", domain.StatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	done, err := f.service.ListByStatus(context.Background(), "vendor-1", domain.StatusCompleted)
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, first.ID, done[0].ID)

	mine, err := f.service.ListByVendor(context.Background(), "vendor-1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	other, err := f.service.ListByVendor(context.Background(), "vendor-2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestFingerprintPlaceOrderStable(t *testing.T) {
	price := decimal.RequireFromString("9.99")
	input := ports.PlaceOrderInput{
		ClientID: "client-1",
		Lines:    []ports.LineInput{{ProductID: "prod-1", Quantity: 2, UnitPrice: &price}},
	}

	first, err := FingerprintPlaceOrder(input)
	require.NoError(t, err)
	second, err := FingerprintPlaceOrder(input)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	input.Lines[0].Quantity = 3
	changed, err := FingerprintPlaceOrder(input)
	require.NoError(t, err)
	assert.NotEqual(t, first, changed)
}

func placeOrder(t *testing.T, f *orderFixture, vendorID, clientID string, lines ...ports.LineInput) *domain.Order {
	t.Helper()
	order, err := f.service.Place(context.Background(), vendorID, ports.PlaceOrderInput{ClientID: clientID, Lines: lines})
	require.NoError(t, err)
	return order
}
