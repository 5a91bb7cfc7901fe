package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	accountports "github.com/vendora/sales-api/internal/domains/accounts/ports"
	clientports "github.com/vendora/sales-api/internal/domains/clients/ports"
	ordersdomain "github.com/vendora/sales-api/internal/domains/orders/domain"
	orderports "github.com/vendora/sales-api/internal/domains/orders/ports"
	"github.com/vendora/sales-api/internal/domains/reporting/ports"
)

var _ ports.Reader = (*Reader)(nil)

// Reader aggregates completed-order revenue straight from the repositories.
// Suits the in-memory wiring where no SQL aggregation is available.
type Reader struct {
	orders  orderports.Repository
	clients clientports.Repository
	users   accountports.Repository
}

func NewReader(orders orderports.Repository, clients clientports.Repository, users accountports.Repository) *Reader {
	return &Reader{orders: orders, clients: clients, users: users}
}

func (r *Reader) TopClients(ctx context.Context, limit int) ([]ports.ClientRevenue, error) {
	totals, err := r.completedTotals(ctx, func(o *ordersdomain.Order) string { return o.ClientID })
	if err != nil {
		return nil, err
	}
	rows := make([]ports.ClientRevenue, 0, len(totals))
	for clientID, total := range totals {
		row := ports.ClientRevenue{ClientID: clientID, Total: total}
		if client, err := r.clients.GetByID(ctx, clientID); err == nil {
			row.Name = client.Name
			row.Surname = client.Surname
			row.Email = client.Email
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Total.Equal(rows[j].Total) {
			return rows[i].Total.GreaterThan(rows[j].Total)
		}
		return rows[i].ClientID < rows[j].ClientID
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (r *Reader) TopVendors(ctx context.Context, limit int) ([]ports.VendorRevenue, error) {
	totals, err := r.completedTotals(ctx, func(o *ordersdomain.Order) string { return o.VendorID })
	if err != nil {
		return nil, err
	}
	rows := make([]ports.VendorRevenue, 0, len(totals))
	for vendorID, total := range totals {
		row := ports.VendorRevenue{VendorID: vendorID, Total: total}
		if user, err := r.users.GetByID(ctx, vendorID); err == nil {
			row.Name = user.Name
			row.Surname = user.Surname
			row.Email = user.Email
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Total.Equal(rows[j].Total) {
			return rows[i].Total.GreaterThan(rows[j].Total)
		}
		return rows[i].VendorID < rows[j].VendorID
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (r *Reader) completedTotals(ctx context.Context, keyOf func(*ordersdomain.Order) string) (map[string]decimal.Decimal, error) {
	orders, err := r.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	totals := map[string]decimal.Decimal{}
	for _, order := range orders {
		if order.Status != ordersdomain.StatusCompleted {
			continue
		}
		key := keyOf(order)
		totals[key] = totals[key].Add(order.Total)
	}
	return totals, nil
}
