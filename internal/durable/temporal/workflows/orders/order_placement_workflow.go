package orders

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/vendora/sales-api/internal/domains/orders/domain"
	"github.com/vendora/sales-api/internal/domains/orders/ports"
	orderactivities "github.com/vendora/sales-api/internal/platform/temporal/activities/orders"
)

const (
	// OrderPlacementWorkflowName is the public identifier for registering the workflow.
	OrderPlacementWorkflowName = "orders.workflows.Placement"
	// OrderPlacementTaskQueue is the queue consumed by the worker processing order workflows.
	OrderPlacementTaskQueue = "ORDER_PLACEMENT"
)

// OrderPlacementWorkflowInput captures the payload required to place an order.
// RequestHash is precomputed by the orchestrator from the command payload.
type OrderPlacementWorkflowInput struct {
	CallerID    string
	Command     ports.PlaceOrderInput
	RequestHash string
	TraceID     string
}

// OrderPlacementWorkflow reserves stock line by line and persists the order.
// Reservations made before a failure are compensated with releases, so a
// failed placement leaves the catalog untouched.
func OrderPlacementWorkflow(ctx workflow.Context, input OrderPlacementWorkflowInput) (*domain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("OrderPlacementWorkflow started", withTraceID(input.TraceID, "clientId", input.Command.ClientID)...)

	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
			NonRetryableErrorTypes: []string{
				orderactivities.ErrTypeNotOwned,
				orderactivities.ErrTypeClientNotFound,
				orderactivities.ErrTypeInsufficientStock,
				orderactivities.ErrTypeInvalidInput,
			},
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	if err := workflow.ExecuteActivity(ctx, orderactivities.CheckClientOwnershipActivityName,
		orderactivities.OwnershipCheckInput{CallerID: input.CallerID, ClientID: input.Command.ClientID},
	).Get(ctx, nil); err != nil {
		logger.Error("OrderPlacementWorkflow ownership check failed", withTraceID(input.TraceID, "error", err)...)
		return nil, err
	}

	reserved := make([]domain.Line, 0, len(input.Command.Lines))
	release := func() {
		// Compensations must run even when the workflow context is canceled.
		cleanupCtx, cancel := workflow.NewDisconnectedContext(ctx)
		defer cancel()
		cleanupCtx = workflow.WithActivityOptions(cleanupCtx, options)
		for i := len(reserved) - 1; i >= 0; i-- {
			line := reserved[i]
			if err := workflow.ExecuteActivity(cleanupCtx, orderactivities.ReleaseLineActivityName,
				orderactivities.ReleaseLineInput{ProductID: line.ProductID, Quantity: line.Quantity},
			).Get(cleanupCtx, nil); err != nil {
				logger.Error("OrderPlacementWorkflow compensation failed",
					withTraceID(input.TraceID, "productId", line.ProductID, "error", err)...)
			}
		}
	}

	for _, lineInput := range input.Command.Lines {
		var line domain.Line
		err := workflow.ExecuteActivity(ctx, orderactivities.ReserveLineActivityName, lineInput).Get(ctx, &line)
		if err != nil {
			logger.Error("OrderPlacementWorkflow reservation failed",
				withTraceID(input.TraceID, "productId", lineInput.ProductID, "error", err)...)
			release()
			return nil, err
		}
		reserved = append(reserved, line)
	}

	var order domain.Order
	err := workflow.ExecuteActivity(ctx, orderactivities.PersistOrderActivityName,
		orderactivities.PersistOrderInput{
			CallerID:       input.CallerID,
			ClientID:       input.Command.ClientID,
			Lines:          reserved,
			IdempotencyKey: input.Command.IdempotencyKey,
			RequestHash:    input.RequestHash,
		},
	).Get(ctx, &order)
	if err != nil {
		logger.Error("OrderPlacementWorkflow persistence failed", withTraceID(input.TraceID, "error", err)...)
		release()
		return nil, err
	}

	logger.Info("OrderPlacementWorkflow completed", withTraceID(input.TraceID, "orderId", order.ID)...)
	return &order, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
