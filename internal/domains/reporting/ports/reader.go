package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// ClientRevenue is one row of the top-clients report: a client and the summed
// total of their completed orders.
type ClientRevenue struct {
	ClientID string
	Name     string
	Surname  string
	Email    string
	Total    decimal.Decimal
}

// VendorRevenue is one row of the top-vendors report: a vendor and the summed
// total of the completed orders they placed.
type VendorRevenue struct {
	VendorID string
	Name     string
	Surname  string
	Email    string
	Total    decimal.Decimal
}

// Reader aggregates completed-order revenue. Rows come back ordered by total
// descending, already truncated to the requested limit.
type Reader interface {
	TopClients(ctx context.Context, limit int) ([]ClientRevenue, error)
	TopVendors(ctx context.Context, limit int) ([]VendorRevenue, error)
}
