package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName     = errors.New("product name is required")
	ErrNegativePrice = errors.New("product price must not be negative")
	ErrNegativeStock = errors.New("product stock must not be negative")
)

// Product is a catalog entry. Stock must never fall below zero; the
// repository's Reserve operation is the only path allowed to decrement it.
type Product struct {
	ID          string
	Name        string
	Description string
	Tags        []string
	Price       decimal.Decimal
	Stock       int64
}

// NewProduct validates and constructs a product.
func NewProduct(name, description string, tags []string, price decimal.Decimal, stock int64) (*Product, error) {
	product := &Product{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Tags:        tags,
		Price:       price,
		Stock:       stock,
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	return product, nil
}

// Validate enforces invariants on the catalog entry.
func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrEmptyName
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	if p.Stock < 0 {
		return ErrNegativeStock
	}
	return nil
}

// ProductUpdate carries optional update fields. Nil pointers leave the current
// value untouched; Stock replaces the absolute count, it is not a delta.
type ProductUpdate struct {
	Name        *string
	Description *string
	Tags        *[]string
	Price       *decimal.Decimal
	Stock       *int64
}

// Merge applies the update and re-validates.
func (p *Product) Merge(update ProductUpdate) error {
	if update.Name != nil {
		p.Name = strings.TrimSpace(*update.Name)
	}
	if update.Description != nil {
		p.Description = strings.TrimSpace(*update.Description)
	}
	if update.Tags != nil {
		p.Tags = *update.Tags
	}
	if update.Price != nil {
		p.Price = *update.Price
	}
	if update.Stock != nil {
		p.Stock = *update.Stock
	}
	return p.Validate()
}
