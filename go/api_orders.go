package salesapiserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	ordersdomain "github.com/vendora/sales-api/internal/domains/orders/domain"
	ordersports "github.com/vendora/sales-api/internal/domains/orders/ports"
	"github.com/vendora/sales-api/internal/shared/identity"
)

// IdempotencyKeyHeader lets clients retry order placement safely.
const IdempotencyKeyHeader = "Idempotency-Key"

// OrdersAPI implements the order endpoints. Placement runs through the
// orchestrator so deployments can choose durable or inline execution.
type OrdersAPI struct {
	service   ordersports.Service
	placement ordersports.PlacementOrchestrator
}

// NewOrdersAPI wires dependencies.
func NewOrdersAPI(service ordersports.Service, placement ordersports.PlacementOrchestrator) OrdersAPI {
	return OrdersAPI{service: service, placement: placement}
}

func fromDomainOrder(order *ordersdomain.Order) Order {
	lines := make([]OrderLine, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, OrderLine{
			ProductId:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
		})
	}
	return Order{
		Id:       order.ID,
		VendorId: order.VendorID,
		ClientId: order.ClientID,
		Lines:    lines,
		Total:    order.Total,
		Status:   string(order.Status),
	}
}

func fromDomainOrders(orders []*ordersdomain.Order) []Order {
	result := make([]Order, 0, len(orders))
	for _, order := range orders {
		result = append(result, fromDomainOrder(order))
	}
	return result
}

func toLineInputs(lines []OrderLineRequest) []ordersports.LineInput {
	result := make([]ordersports.LineInput, 0, len(lines))
	for _, line := range lines {
		result = append(result, ordersports.LineInput{
			ProductID: line.ProductId,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}
	return result
}

func parseStatus(raw string) (ordersdomain.Status, error) {
	status := ordersdomain.Status(strings.ToUpper(strings.TrimSpace(raw)))
	switch status {
	case ordersdomain.StatusPending, ordersdomain.StatusCompleted, ordersdomain.StatusCanceled:
		return status, nil
	default:
		return "", ordersdomain.ErrInvalidStatus
	}
}

// Post /v1/orders
// Place an order for one of the caller's clients
func (api *OrdersAPI) PlaceOrder(c *gin.Context) {
	caller, err := identity.CurrentUser(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	var payload PlaceOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := api.placement.PlaceOrder(c.Request.Context(), caller.ID, ordersports.PlaceOrderInput{
		ClientID:       payload.ClientId,
		Lines:          toLineInputs(payload.Lines),
		IdempotencyKey: strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader)),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromDomainOrder(order))
}

// Get /v1/orders/:orderId
// Fetch one of the caller's orders
func (api *OrdersAPI) GetOrder(c *gin.Context) {
	caller, err := identity.CurrentUser(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	order, err := api.service.Get(c.Request.Context(), caller.ID, c.Param("orderId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainOrder(order))
}

// Patch /v1/orders/:orderId
// Patch one of the caller's orders
func (api *OrdersAPI) UpdateOrder(c *gin.Context) {
	caller, err := identity.CurrentUser(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	var payload UpdateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	input := ordersports.UpdateOrderInput{ClientID: payload.ClientId}
	if payload.Lines != nil {
		lines := toLineInputs(*payload.Lines)
		input.Lines = &lines
	}
	if payload.Status != nil {
		status, err := parseStatus(*payload.Status)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		input.Status = &status
	}
	order, err := api.service.Update(c.Request.Context(), caller.ID, c.Param("orderId"), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainOrder(order))
}

// Delete /v1/orders/:orderId
// Delete one of the caller's orders
func (api *OrdersAPI) DeleteOrder(c *gin.Context) {
	caller, err := identity.CurrentUser(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if err := api.service.Delete(c.Request.Context(), caller.ID, c.Param("orderId")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /v1/orders?status=...&all=true
// List the caller's orders, optionally filtered by status; all=true lists
// every vendor's orders
func (api *OrdersAPI) ListOrders(c *gin.Context) {
	caller, err := identity.CurrentUser(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if c.Query("all") == "true" {
		orders, err := api.service.List(c.Request.Context())
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, fromDomainOrders(orders))
		return
	}
	if raw := c.Query("status"); raw != "" {
		status, err := parseStatus(raw)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		orders, err := api.service.ListByStatus(c.Request.Context(), caller.ID, status)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, fromDomainOrders(orders))
		return
	}
	orders, err := api.service.ListByVendor(c.Request.Context(), caller.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainOrders(orders))
}
