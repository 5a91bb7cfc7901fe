package postgres

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vendora/sales-api/internal/domains/reporting/ports"
)

var _ ports.Reader = (*Reader)(nil)

// Reader answers revenue reports with SQL aggregation over completed orders.
type Reader struct {
	db *gorm.DB
}

func NewReader(db *gorm.DB) *Reader {
	return &Reader{db: db}
}

type clientRevenueRow struct {
	ClientID string          `gorm:"column:client_id"`
	Name     string          `gorm:"column:name"`
	Surname  string          `gorm:"column:surname"`
	Email    string          `gorm:"column:email"`
	Total    decimal.Decimal `gorm:"column:total"`
}

type vendorRevenueRow struct {
	VendorID string          `gorm:"column:vendor_id"`
	Name     string          `gorm:"column:name"`
	Surname  string          `gorm:"column:surname"`
	Email    string          `gorm:"column:email"`
	Total    decimal.Decimal `gorm:"column:total"`
}

const topClientsQuery = `
SELECT o.client_id, COALESCE(c.name, '') AS name, COALESCE(c.surname, '') AS surname, COALESCE(c.email, '') AS email, SUM(o.total) AS total
FROM orders o
LEFT JOIN clients c ON c.id = o.client_id
WHERE o.status = 'COMPLETED'
GROUP BY o.client_id, c.name, c.surname, c.email
ORDER BY SUM(o.total) DESC, o.client_id ASC
LIMIT ?`

const topVendorsQuery = `
SELECT o.vendor_id, COALESCE(u.name, '') AS name, COALESCE(u.surname, '') AS surname, COALESCE(u.email, '') AS email, SUM(o.total) AS total
FROM orders o
LEFT JOIN users u ON u.id = o.vendor_id
WHERE o.status = 'COMPLETED'
GROUP BY o.vendor_id, u.name, u.surname, u.email
ORDER BY SUM(o.total) DESC, o.vendor_id ASC
LIMIT ?`

func (r *Reader) TopClients(ctx context.Context, limit int) ([]ports.ClientRevenue, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var rows []clientRevenueRow
	if err := r.db.WithContext(ctx).Raw(topClientsQuery, limit).Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]ports.ClientRevenue, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.ClientRevenue{
			ClientID: row.ClientID,
			Name:     row.Name,
			Surname:  row.Surname,
			Email:    row.Email,
			Total:    row.Total,
		})
	}
	return out, nil
}

func (r *Reader) TopVendors(ctx context.Context, limit int) ([]ports.VendorRevenue, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var rows []vendorRevenueRow
	if err := r.db.WithContext(ctx).Raw(topVendorsQuery, limit).Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]ports.VendorRevenue, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.VendorRevenue{
			VendorID: row.VendorID,
			Name:     row.Name,
			Surname:  row.Surname,
			Email:    row.Email,
			Total:    row.Total,
		})
	}
	return out, nil
}

func (r *Reader) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres reporting reader not configured")
	}
	return nil
}
