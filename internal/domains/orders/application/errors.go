package application

import (
	"errors"
	"fmt"

	"github.com/vendora/sales-api/internal/domains/orders/domain"
)

// ErrInvalidInput marks rejections caused by the request itself, as opposed
// to missing resources or authorization failures.
var ErrInvalidInput = errors.New("invalid order input")

var validationErrors = []error{
	domain.ErrEmptyClient,
	domain.ErrEmptyVendor,
	domain.ErrNoLines,
	domain.ErrInvalidQuantity,
	domain.ErrInvalidStatus,
	domain.ErrInvalidTransition,
}

func mapError(err error) error {
	for _, sentinel := range validationErrors {
		if errors.Is(err, sentinel) {
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}
	return err
}
