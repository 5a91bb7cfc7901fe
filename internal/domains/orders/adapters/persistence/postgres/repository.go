package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vendora/sales-api/internal/domains/orders/domain"
	"github.com/vendora/sales-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM. Lines travel with the
// order row as a JSON document; the denormalized total keeps revenue queries
// off the line payload.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&orderRecord{})
	}
	return repo
}

type lineRecord struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type orderRecord struct {
	ID        string          `gorm:"primaryKey;column:id;size:36"`
	VendorID  string          `gorm:"column:vendor_id;size:36;index"`
	ClientID  string          `gorm:"column:client_id;size:36;index"`
	Lines     []lineRecord    `gorm:"column:lines;serializer:json;type:jsonb"`
	Total     decimal.Decimal `gorm:"column:total;type:numeric(14,2)"`
	Status    string          `gorm:"column:status;size:16;index"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := *order
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	if clone.ID == "" {
		clone.ID = uuid.NewString()
	}
	record := toRecord(&clone)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := *order
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(&clone)
	result := r.db.WithContext(ctx).Model(&orderRecord{}).Where("id = ?", record.ID).
		Select("client_id", "lines", "total", "status").Updates(&record)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, record.ID)
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&orderRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) List(ctx context.Context) ([]*domain.Order, error) {
	return r.find(ctx, nil)
}

func (r *Repository) ListByVendor(ctx context.Context, vendorID string) ([]*domain.Order, error) {
	return r.find(ctx, map[string]any{"vendor_id": vendorID})
}

func (r *Repository) ListByVendorAndStatus(ctx context.Context, vendorID string, status domain.Status) ([]*domain.Order, error) {
	return r.find(ctx, map[string]any{"vendor_id": vendorID, "status": string(status)})
}

func (r *Repository) find(ctx context.Context, where map[string]any) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if where != nil {
		query = query.Where(where)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	lines := make([]lineRecord, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, lineRecord{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
		})
	}
	return orderRecord{
		ID:       order.ID,
		VendorID: order.VendorID,
		ClientID: order.ClientID,
		Lines:    lines,
		Total:    order.Total,
		Status:   string(order.Status),
	}
}

func (r orderRecord) toDomain() *domain.Order {
	lines := make([]domain.Line, 0, len(r.Lines))
	for _, line := range r.Lines {
		lines = append(lines, domain.Line{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
		})
	}
	return &domain.Order{
		ID:       r.ID,
		VendorID: r.VendorID,
		ClientID: r.ClientID,
		Lines:    lines,
		Total:    r.Total,
		Status:   domain.Status(r.Status),
	}
}
