package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/vendora/sales-api/internal/domains/clients/domain"
	"github.com/vendora/sales-api/internal/domains/clients/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists clients in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&clientRecord{})
	}
	return repo
}

type clientRecord struct {
	ID        string    `gorm:"primaryKey;column:id;size:36"`
	Email     string    `gorm:"column:email;uniqueIndex"`
	Name      string    `gorm:"column:name"`
	Surname   string    `gorm:"column:surname"`
	Company   string    `gorm:"column:company"`
	Phone     string    `gorm:"column:phone"`
	VendorID  string    `gorm:"column:vendor_id;size:36;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (clientRecord) TableName() string { return "clients" }

// Create inserts a new client, mapping unique-email violations to ErrEmailTaken.
func (r *Repository) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if client == nil {
		return nil, errors.New("client is nil")
	}
	clone := *client
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	if clone.ID == "" {
		clone.ID = uuid.NewString()
	}
	record := toRecord(&clone)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ports.ErrEmailTaken
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// GetByID fetches a client by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record clientRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Save updates an existing client.
func (r *Repository) Save(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if client == nil {
		return nil, errors.New("client is nil")
	}
	record := toRecord(client)
	result := r.db.WithContext(ctx).Model(&clientRecord{}).Where("id = ?", record.ID).
		Updates(map[string]any{
			"email":   record.Email,
			"name":    record.Name,
			"surname": record.Surname,
			"company": record.Company,
			"phone":   record.Phone,
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return nil, ports.ErrEmailTaken
		}
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, record.ID)
}

// Delete removes a client by identifier.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&clientRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns all clients.
func (r *Repository) List(ctx context.Context) ([]*domain.Client, error) {
	return r.find(ctx, nil)
}

// ListByVendor returns the clients owned by one vendor.
func (r *Repository) ListByVendor(ctx context.Context, vendorID string) ([]*domain.Client, error) {
	return r.find(ctx, map[string]any{"vendor_id": vendorID})
}

func (r *Repository) find(ctx context.Context, where map[string]any) ([]*domain.Client, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []clientRecord
	query := r.db.WithContext(ctx)
	if where != nil {
		query = query.Where(where)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	clients := make([]*domain.Client, 0, len(records))
	for i := range records {
		clients = append(clients, records[i].toDomain())
	}
	return clients, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres client repository not configured")
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func toRecord(client *domain.Client) clientRecord {
	return clientRecord{
		ID:       client.ID,
		Email:    client.Email,
		Name:     client.Name,
		Surname:  client.Surname,
		Company:  client.Company,
		Phone:    client.Phone,
		VendorID: client.VendorID,
	}
}

func (r clientRecord) toDomain() *domain.Client {
	return &domain.Client{
		ID:       r.ID,
		Email:    r.Email,
		Name:     r.Name,
		Surname:  r.Surname,
		Company:  r.Company,
		Phone:    r.Phone,
		VendorID: r.VendorID,
	}
}
