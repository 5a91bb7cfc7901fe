package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	catalogports "github.com/vendora/sales-api/internal/domains/catalog/ports"
	ordersmemory "github.com/vendora/sales-api/internal/domains/orders/adapters/memory"
	"github.com/vendora/sales-api/internal/domains/orders/application"
	"github.com/vendora/sales-api/internal/domains/orders/domain"
	ordersports "github.com/vendora/sales-api/internal/domains/orders/ports"
)

type countingStock struct {
	reserveCalls int
}

func (s *countingStock) Reserve(_ context.Context, _ string, _ int64) (*ordersports.ReservedProduct, error) {
	s.reserveCalls++
	return nil, errors.New("unexpected reservation")
}

func (s *countingStock) Release(_ context.Context, _ string, _ int64) error {
	return nil
}

type staticDirectory struct{}

func (staticDirectory) OwnerOf(_ context.Context, _ string) (string, error) {
	return "vendor-1", nil
}

func TestPersistOrderStoresRequestHashForInlineReplay(t *testing.T) {
	repo := ordersmemory.NewRepository()
	idem := ordersmemory.NewIdempotencyStore()
	stock := &countingStock{}
	acts := NewActivities(stock, staticDirectory{}, repo, idem, nil)

	unitPrice := decimal.RequireFromString("10.00")
	command := ordersports.PlaceOrderInput{
		ClientID:       "client-1",
		Lines:          []ordersports.LineInput{{ProductID: "prod-1", Quantity: 2}},
		IdempotencyKey: "retry-1",
	}
	hash, err := application.FingerprintPlaceOrder(command)
	require.NoError(t, err)

	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestActivityEnvironment()
	env.RegisterActivity(acts.PersistOrder)

	val, err := env.ExecuteActivity(acts.PersistOrder, PersistOrderInput{
		CallerID: "vendor-1",
		ClientID: "client-1",
		Lines: []domain.Line{
			{ProductID: "prod-1", ProductName: "Widget", Quantity: 2, UnitPrice: unitPrice},
		},
		IdempotencyKey: command.IdempotencyKey,
		RequestHash:    hash,
	})
	require.NoError(t, err)
	var placed domain.Order
	require.NoError(t, val.Get(&placed))

	record, err := idem.Get(context.Background(), command.IdempotencyKey)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, hash, record.RequestHash)
	assert.Equal(t, placed.ID, record.OrderID)

	// An inline retry of the same key and payload resolves against the store
	// instead of reserving again.
	inline := application.NewService(repo, stock, staticDirectory{},
		application.WithIdempotencyStore(idem),
	)
	replayed, err := inline.Place(context.Background(), "vendor-1", command)
	require.NoError(t, err)
	assert.Equal(t, placed.ID, replayed.ID)
	assert.Zero(t, stock.reserveCalls)
}

func TestClassifyErrorAttachesStockDetails(t *testing.T) {
	stockErr := &catalogports.InsufficientStockError{ProductName: "Widget", Requested: 5, Available: 2}

	classified := classifyError(stockErr)

	var appErr *temporal.ApplicationError
	require.ErrorAs(t, classified, &appErr)
	assert.Equal(t, ErrTypeInsufficientStock, appErr.Type())
	require.True(t, appErr.HasDetails())

	var detail InsufficientStockDetail
	require.NoError(t, appErr.Details(&detail))
	assert.Equal(t, "Widget", detail.ProductName)
	assert.EqualValues(t, 5, detail.Requested)
	assert.EqualValues(t, 2, detail.Available)
}
