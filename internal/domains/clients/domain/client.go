package domain

import (
	"errors"
	"strings"
)

var (
	ErrInvalidEmail = errors.New("client email must contain '@'")
	ErrEmptyName    = errors.New("client name is required")
	ErrEmptySurname = errors.New("client surname is required")
)

// Client is a customer record owned by the vendor that created it. Every
// mutation must pass the ownership guard against VendorID.
type Client struct {
	ID      string
	Email   string
	Name    string
	Surname string
	Company string
	Phone   string
	// VendorID is the owning vendor account; set once at creation.
	VendorID string
}

// NewClient validates and constructs a client owned by the given vendor.
func NewClient(email, name, surname, company, phone, vendorID string) (*Client, error) {
	client := &Client{
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Name:     strings.TrimSpace(name),
		Surname:  strings.TrimSpace(surname),
		Company:  strings.TrimSpace(company),
		Phone:    strings.TrimSpace(phone),
		VendorID: vendorID,
	}
	if err := client.Validate(); err != nil {
		return nil, err
	}
	return client, nil
}

// Validate enforces invariants on the record.
func (c *Client) Validate() error {
	if !strings.Contains(c.Email, "@") {
		return ErrInvalidEmail
	}
	if c.Name == "" {
		return ErrEmptyName
	}
	if c.Surname == "" {
		return ErrEmptySurname
	}
	return nil
}

// Merge applies non-empty update fields, leaving ownership untouched.
func (c *Client) Merge(email, name, surname, company, phone string) error {
	if strings.TrimSpace(email) != "" {
		c.Email = strings.ToLower(strings.TrimSpace(email))
	}
	if strings.TrimSpace(name) != "" {
		c.Name = strings.TrimSpace(name)
	}
	if strings.TrimSpace(surname) != "" {
		c.Surname = strings.TrimSpace(surname)
	}
	if strings.TrimSpace(company) != "" {
		c.Company = strings.TrimSpace(company)
	}
	if strings.TrimSpace(phone) != "" {
		c.Phone = strings.TrimSpace(phone)
	}
	return c.Validate()
}
