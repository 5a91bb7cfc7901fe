package salesapiserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	accountsdomain "github.com/vendora/sales-api/internal/domains/accounts/domain"
	accountsports "github.com/vendora/sales-api/internal/domains/accounts/ports"
	catalogdomain "github.com/vendora/sales-api/internal/domains/catalog/domain"
	catalogports "github.com/vendora/sales-api/internal/domains/catalog/ports"
	clientsdomain "github.com/vendora/sales-api/internal/domains/clients/domain"
	clientsports "github.com/vendora/sales-api/internal/domains/clients/ports"
	ordersapp "github.com/vendora/sales-api/internal/domains/orders/application"
	ordersdomain "github.com/vendora/sales-api/internal/domains/orders/domain"
	ordersports "github.com/vendora/sales-api/internal/domains/orders/ports"
	"github.com/vendora/sales-api/internal/shared/authz"
	apierrors "github.com/vendora/sales-api/internal/shared/errors"
	"github.com/vendora/sales-api/internal/shared/identity"
)

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	apierrors.Respond(c, problem)
}

// respondError preserves the existing call sites while returning RFC 7807 responses.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	var problem apierrors.ProblemDetail
	switch status {
	case http.StatusBadRequest:
		problem = apierrors.ErrBadRequest.WithDetail(err.Error())
	case http.StatusNotFound:
		problem = apierrors.ErrNotFound.WithDetail(err.Error())
	case http.StatusUnauthorized:
		problem = apierrors.ErrUnauthorized.WithDetail(err.Error())
	case http.StatusForbidden:
		problem = apierrors.ErrForbidden.WithDetail(err.Error())
	default:
		problem = apierrors.ErrInternal.WithDetail(err.Error())
	}
	respondProblem(c, problem)
}

var notFoundErrors = []error{
	accountsports.ErrNotFound,
	clientsports.ErrNotFound,
	catalogports.ErrNotFound,
	ordersports.ErrNotFound,
	ordersports.ErrClientNotFound,
}

var validationErrors = []error{
	accountsdomain.ErrInvalidEmail,
	accountsdomain.ErrEmptyName,
	accountsdomain.ErrEmptySurname,
	accountsdomain.ErrWeakPassword,
	clientsdomain.ErrInvalidEmail,
	clientsdomain.ErrEmptyName,
	clientsdomain.ErrEmptySurname,
	catalogdomain.ErrEmptyName,
	catalogdomain.ErrNegativePrice,
	catalogdomain.ErrNegativeStock,
	ordersdomain.ErrEmptyClient,
	ordersdomain.ErrNoLines,
	ordersdomain.ErrInvalidQuantity,
	ordersdomain.ErrInvalidStatus,
	ordersapp.ErrInvalidInput,
}

// respondServiceError classifies application errors into problem responses.
func respondServiceError(c *gin.Context, err error) {
	var stockErr *catalogports.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		respondProblem(c, apierrors.NewInsufficientStockProblem(stockErr.ProductName, stockErr.Requested, stockErr.Available))
		return
	case errors.Is(err, authz.ErrNotOwned):
		respondProblem(c, apierrors.ErrForbidden.WithDetail("you do not own this resource"))
		return
	case errors.Is(err, identity.ErrNoIdentity):
		respondProblem(c, apierrors.ErrUnauthorized.WithDetail("authentication required"))
		return
	case errors.Is(err, accountsports.ErrInvalidCredentials):
		respondProblem(c, apierrors.ErrUnauthorized.WithDetail("invalid credentials"))
		return
	case errors.Is(err, accountsports.ErrEmailTaken), errors.Is(err, clientsports.ErrEmailTaken):
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
		return
	case errors.Is(err, ordersports.ErrIdempotencyConflict):
		respondProblem(c, apierrors.ErrConflict.WithDetail("idempotency key reused with a different payload"))
		return
	case errors.Is(err, ordersdomain.ErrInvalidTransition):
		respondProblem(c, apierrors.ErrConflict.WithDetail(err.Error()))
		return
	}
	for _, sentinel := range notFoundErrors {
		if errors.Is(err, sentinel) {
			respondProblem(c, apierrors.ErrNotFound.WithDetail(err.Error()))
			return
		}
	}
	for _, sentinel := range validationErrors {
		if errors.Is(err, sentinel) {
			respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
			return
		}
	}
	respondProblem(c, apierrors.ErrInternal.WithDetail(err.Error()))
}
