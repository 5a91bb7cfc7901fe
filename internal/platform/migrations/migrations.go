package migrations

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&userRecord{},
		&clientRecord{},
		&productRecord{},
		&orderRecord{},
		&idempotencyRecord{},
	)
}

// User schema mirrors the accounts Postgres adapter.
type userRecord struct {
	ID           string    `gorm:"primaryKey;column:id;size:36"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	Name         string    `gorm:"column:name"`
	Surname      string    `gorm:"column:surname"`
	PasswordHash string    `gorm:"column:password_hash"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Client schema mirrors the clients Postgres adapter.
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

// Product schema mirrors the catalog Postgres adapter.
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

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID        string          `gorm:"primaryKey;column:id;size:36"`
	VendorID  string          `gorm:"column:vendor_id;size:36;index"`
	ClientID  string          `gorm:"column:client_id;size:36;index"`
	Lines     []byte          `gorm:"column:lines;type:jsonb"`
	Total     decimal.Decimal `gorm:"column:total;type:numeric(14,2)"`
	Status    string          `gorm:"column:status;size:16;index"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Idempotency key schema mirrors the orders Postgres adapter.
type idempotencyRecord struct {
	Key         string    `gorm:"primaryKey;column:key;size:128"`
	RequestHash string    `gorm:"column:request_hash;size:64"`
	OrderID     string    `gorm:"column:order_id;size:36"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (idempotencyRecord) TableName() string { return "order_idempotency_keys" }
