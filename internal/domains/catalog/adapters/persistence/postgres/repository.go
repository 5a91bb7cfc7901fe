package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vendora/sales-api/internal/domains/catalog/domain"
	"github.com/vendora/sales-api/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists products in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&productRecord{})
	}
	return repo
}

type productRecord struct {
	ID          string          `gorm:"primaryKey;column:id;size:36"`
	Name        string          `gorm:"column:name;index"`
	Description string          `gorm:"column:description"`
	Tags        pq.StringArray  `gorm:"column:tags;type:text[]"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	Stock       int64           `gorm:"column:stock"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Create inserts a new product.
func (r *Repository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := *product
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

// GetByID fetches a product by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Save updates catalog fields. Stock is written as an absolute count here;
// concurrent order flows must go through Reserve/Release instead.
func (r *Repository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	record := toRecord(product)
	result := r.db.WithContext(ctx).Model(&productRecord{}).Where("id = ?", record.ID).
		Updates(map[string]any{
			"name":        record.Name,
			"description": record.Description,
			"tags":        record.Tags,
			"price":       record.Price,
			"stock":       record.Stock,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, record.ID)
}

// Delete removes a product by identifier.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&productRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns the whole catalog.
func (r *Repository) List(ctx context.Context) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []productRecord
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products, nil
}

// Search matches name/description case-insensitively, name matches ranked first.
func (r *Repository) Search(ctx context.Context, text string, limit int) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	pattern := "%" + text + "%"
	var records []productRecord
	err := r.db.WithContext(ctx).
		Where("name ILIKE ? OR description ILIKE ?", pattern, pattern).
		Clauses(clause.OrderBy{Expression: gorm.Expr("(name ILIKE ?) DESC, name ASC", pattern)}).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products, nil
}

// Reserve decrements stock with a single conditional UPDATE so concurrent
// reservations for the same product cannot drive it negative.
func (r *Repository) Reserve(ctx context.Context, productID string, quantity int64) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	result := r.db.WithContext(ctx).Model(&productRecord{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// Either the product is missing or stock ran short; reload to tell.
		product, err := r.GetByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		return nil, &ports.InsufficientStockError{
			ProductName: product.Name,
			Requested:   quantity,
			Available:   product.Stock,
		}
	}
	return r.GetByID(ctx, productID)
}

// Release adds previously reserved stock back.
func (r *Repository) Release(ctx context.Context, productID string, quantity int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&productRecord{}).
		Where("id = ?", productID).
		UpdateColumn("stock", gorm.Expr("stock + ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres catalog repository not configured")
	}
	return nil
}

func toRecord(product *domain.Product) productRecord {
	return productRecord{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Tags:        pq.StringArray(product.Tags),
		Price:       product.Price,
		Stock:       product.Stock,
	}
}

func (r productRecord) toDomain() *domain.Product {
	return &domain.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Tags:        []string(r.Tags),
		Price:       r.Price,
		Stock:       r.Stock,
	}
}
