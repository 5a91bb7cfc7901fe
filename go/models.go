package salesapiserver

import "github.com/shopspring/decimal"

// User is the account representation returned over HTTP. Password material
// never leaves the accounts context.
type User struct {
	Id      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

// RegisterUserRequest creates a vendor account.
type RegisterUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Password string `json:"password"`
}

// LoginRequest exchanges credentials for a bearer token.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the signed token.
type LoginResponse struct {
	Token string `json:"token"`
}

// Client is one buyer record owned by a vendor.
type Client struct {
	Id       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Company  string `json:"company,omitempty"`
	Phone    string `json:"phone,omitempty"`
	VendorId string `json:"vendor_id"`
}

// ClientRequest creates or updates a client. Empty fields are left untouched
// on update.
type ClientRequest struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
}

// Product is one catalog entry.
type Product struct {
	Id          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
}

// ProductRequest creates a product.
type ProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Tags        []string        `json:"tags"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
}

// ProductUpdateRequest patches a product; nil fields are untouched.
type ProductUpdateRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Tags        *[]string        `json:"tags"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int64           `json:"stock"`
}

// OrderLine is one line of a placed order with the price captured at
// reservation time.
type OrderLine struct {
	ProductId   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// Order is the purchase representation returned over HTTP.
type Order struct {
	Id       string          `json:"id"`
	VendorId string          `json:"vendor_id"`
	ClientId string          `json:"client_id"`
	Lines    []OrderLine     `json:"lines"`
	Total    decimal.Decimal `json:"total"`
	Status   string          `json:"status"`
}

// OrderLineRequest is one requested line. UnitPrice overrides the catalog
// price when present.
type OrderLineRequest struct {
	ProductId string           `json:"product_id"`
	Quantity  int64            `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// PlaceOrderRequest places an order for one of the caller's clients.
type PlaceOrderRequest struct {
	ClientId string             `json:"client_id"`
	Lines    []OrderLineRequest `json:"lines"`
}

// UpdateOrderRequest patches an order; nil fields are untouched.
type UpdateOrderRequest struct {
	ClientId *string             `json:"client_id"`
	Lines    *[]OrderLineRequest `json:"lines"`
	Status   *string             `json:"status"`
}

// ClientRevenue is one top-clients report row.
type ClientRevenue struct {
	ClientId string          `json:"client_id"`
	Name     string          `json:"name"`
	Surname  string          `json:"surname"`
	Email    string          `json:"email"`
	Total    decimal.Decimal `json:"total"`
}

// VendorRevenue is one top-vendors report row.
type VendorRevenue struct {
	VendorId string          `json:"vendor_id"`
	Name     string          `json:"name"`
	Surname  string          `json:"surname"`
	Email    string          `json:"email"`
	Total    decimal.Decimal `json:"total"`
}
