package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountsdomain "github.com/vendora/sales-api/internal/domains/accounts/domain"
	accountsmemory "github.com/vendora/sales-api/internal/domains/accounts/adapters/memory"
	catalogmemory "github.com/vendora/sales-api/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/vendora/sales-api/internal/domains/catalog/application"
	catalogdomain "github.com/vendora/sales-api/internal/domains/catalog/domain"
	clientsdomain "github.com/vendora/sales-api/internal/domains/clients/domain"
	clientsmemory "github.com/vendora/sales-api/internal/domains/clients/adapters/memory"
	ordersdomain "github.com/vendora/sales-api/internal/domains/orders/domain"
	ordersmemory "github.com/vendora/sales-api/internal/domains/orders/adapters/memory"
	reportingmemory "github.com/vendora/sales-api/internal/domains/reporting/adapters/memory"
)

type reportFixture struct {
	service *Service
	orders  *ordersmemory.Repository
	clients *clientsmemory.Repository
	users   *accountsmemory.Repository
	catalog *catalogmemory.Repository
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()
	f := &reportFixture{
		orders:  ordersmemory.NewRepository(),
		clients: clientsmemory.NewRepository(),
		users:   accountsmemory.NewRepository(),
		catalog: catalogmemory.NewRepository(),
	}
	reader := reportingmemory.NewReader(f.orders, f.clients, f.users)
	f.service = NewService(reader, catalogapp.NewService(f.catalog))
	return f
}

func (f *reportFixture) addVendor(t *testing.T, email, name string) string {
	t.Helper()
	user, err := f.users.Create(context.Background(), &accountsdomain.User{
		Email: email, Name: name, Surname: "Vendor", PasswordHash: "x",
	})
	require.NoError(t, err)
	return user.ID
}

func (f *reportFixture) addClient(t *testing.T, vendorID, email, name string) string {
	t.Helper()
	client, err := f.clients.Create(context.Background(), &clientsdomain.Client{
		Email: email, Name: name, Surname: "Client", VendorID: vendorID,
	})
	require.NoError(t, err)
	return client.ID
}

func (f *reportFixture) addOrder(t *testing.T, vendorID, clientID, total string, status ordersdomain.Status) {
	t.Helper()
	order, err := ordersdomain.NewOrder(vendorID, clientID, []ordersdomain.Line{{
		ProductID:   "prod",
		ProductName: "Any",
		Quantity:    1,
		UnitPrice:   decimal.RequireFromString(total),
	}})
	require.NoError(t, err)
	require.NoError(t, order.TransitionTo(status))
	_, err = f.orders.Create(context.Background(), order)
	require.NoError(t, err)
}

func TestTopClientsSumsCompletedOrdersOnly(t *testing.T) {
	f := newReportFixture(t)
	vendor := f.addVendor(t, "vendor@example.com", "Vera")
	clientA := f.addClient(t, vendor, "a@example.com", "Alice")
	clientB := f.addClient(t, vendor, "b@example.com", "Bruno")
	clientC := f.addClient(t, vendor, "c@example.com", "Clara")

	f.addOrder(t, vendor, clientA, "100.00", ordersdomain.StatusCompleted)
	f.addOrder(t, vendor, clientA, "50.00", ordersdomain.StatusCompleted)
	f.addOrder(t, vendor, clientB, "200.00", ordersdomain.StatusCompleted)
	f.addOrder(t, vendor, clientC, "500.00", ordersdomain.StatusPending)

	rows, err := f.service.TopClients(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, rows, 2, "clients without completed orders must not appear")

	assert.Equal(t, clientB, rows[0].ClientID)
	assert.True(t, rows[0].Total.Equal(decimal.RequireFromString("200.00")))
	assert.Equal(t, "Bruno", rows[0].Name)
	assert.Equal(t, clientA, rows[1].ClientID)
	assert.True(t, rows[1].Total.Equal(decimal.RequireFromString("150.00")))
}

func TestTopClientsTruncatesToLimit(t *testing.T) {
	f := newReportFixture(t)
	vendor := f.addVendor(t, "vendor@example.com", "Vera")
	for i := 0; i < 12; i++ {
		clientID := f.addClient(t, vendor, string(rune('a'+i))+"@example.com", "Client")
		f.addOrder(t, vendor, clientID, "10.00", ordersdomain.StatusCompleted)
	}

	rows, err := f.service.TopClients(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, rows, DefaultTopClientsLimit)

	rows, err = f.service.TopClients(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, rows, 5)
}

func TestTopVendorsRanksByCompletedRevenue(t *testing.T) {
	f := newReportFixture(t)
	small := f.addVendor(t, "small@example.com", "Sol")
	big := f.addVendor(t, "big@example.com", "Bea")
	mid := f.addVendor(t, "mid@example.com", "Max")
	idle := f.addVendor(t, "idle@example.com", "Ida")

	smallClient := f.addClient(t, small, "sc@example.com", "SC")
	bigClient := f.addClient(t, big, "bc@example.com", "BC")
	midClient := f.addClient(t, mid, "mc@example.com", "MC")
	idleClient := f.addClient(t, idle, "ic@example.com", "IC")

	f.addOrder(t, small, smallClient, "10.00", ordersdomain.StatusCompleted)
	f.addOrder(t, big, bigClient, "300.00", ordersdomain.StatusCompleted)
	f.addOrder(t, big, bigClient, "100.00", ordersdomain.StatusCompleted)
	f.addOrder(t, mid, midClient, "90.00", ordersdomain.StatusCompleted)
	f.addOrder(t, idle, idleClient, "999.00", ordersdomain.StatusCanceled)

	rows, err := f.service.TopVendors(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, big, rows[0].VendorID)
	assert.True(t, rows[0].Total.Equal(decimal.RequireFromString("400.00")))
	assert.Equal(t, "Bea", rows[0].Name)
	assert.Equal(t, mid, rows[1].VendorID)
	assert.Equal(t, small, rows[2].VendorID)
}

func TestSearchProductsUsesDefaultLimit(t *testing.T) {
	f := newReportFixture(t)
	for i := 0; i < 15; i++ {
		product, err := catalogdomain.NewProduct("Steel Bolt", "fastener", nil, decimal.RequireFromString("1.00"), 10)
		require.NoError(t, err)
		_, err = f.catalog.Create(context.Background(), product)
		require.NoError(t, err)
	}

	results, err := f.service.SearchProducts(context.Background(), "bolt", 0)
	require.NoError(t, err)
	assert.Len(t, results, DefaultSearchLimit)
}
