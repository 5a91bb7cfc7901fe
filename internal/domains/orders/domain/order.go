package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Status enumerates the order lifecycle.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusCanceled  Status = "CANCELED"
)

var (
	ErrEmptyClient       = errors.New("order client is required")
	ErrEmptyVendor       = errors.New("order vendor is required")
	ErrNoLines           = errors.New("order must have at least one line")
	ErrInvalidQuantity   = errors.New("line quantity must be greater than zero")
	ErrInvalidStatus     = errors.New("order status is invalid")
	ErrInvalidTransition = errors.New("invalid order status transition")
)

// Line is one ordered product with the unit price captured at reservation
// time. The captured price keeps historical totals stable when the catalog
// price changes later.
type Line struct {
	ProductID   string
	ProductName string
	Quantity    int64
	UnitPrice   decimal.Decimal
}

// Order is the purchase aggregate. An order is only valid when its client's
// owning vendor equals the order's vendor equals the acting caller.
type Order struct {
	ID       string
	VendorID string
	ClientID string
	Lines    []Line
	Total    decimal.Decimal
	Status   Status
}

// NewOrder validates and constructs a pending order with its total computed
// from the captured line prices.
func NewOrder(vendorID, clientID string, lines []Line) (*Order, error) {
	order := &Order{
		VendorID: vendorID,
		ClientID: clientID,
		Lines:    lines,
		Status:   StatusPending,
	}
	order.Total = ComputeTotal(lines)
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// ComputeTotal sums quantity times captured unit price over all lines.
func ComputeTotal(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(line.Quantity)))
	}
	return total
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if o.VendorID == "" {
		return ErrEmptyVendor
	}
	if o.ClientID == "" {
		return ErrEmptyClient
	}
	if len(o.Lines) == 0 {
		return ErrNoLines
	}
	for _, line := range o.Lines {
		if line.Quantity <= 0 {
			return ErrInvalidQuantity
		}
	}
	if !isValidStatus(o.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// ReplaceLines swaps the line set and recomputes the total. Line items are
// only editable while the order is pending.
func (o *Order) ReplaceLines(lines []Line) error {
	if o.Status != StatusPending {
		return ErrInvalidTransition
	}
	o.Lines = lines
	o.Total = ComputeTotal(lines)
	return o.Validate()
}

// TransitionTo moves the order through its lifecycle. COMPLETED and CANCELED
// are terminal; setting the current status again is a no-op.
func (o *Order) TransitionTo(next Status) error {
	if !isValidStatus(next) {
		return ErrInvalidStatus
	}
	if next == o.Status {
		return nil
	}
	if o.Status != StatusPending {
		return ErrInvalidTransition
	}
	o.Status = next
	return nil
}

func isValidStatus(status Status) bool {
	switch status {
	case StatusPending, StatusCompleted, StatusCanceled:
		return true
	default:
		return false
	}
}
