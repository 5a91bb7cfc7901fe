package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	catalogports "github.com/vendora/sales-api/internal/domains/catalog/ports"
	"github.com/vendora/sales-api/internal/domains/orders/application"
	"github.com/vendora/sales-api/internal/domains/orders/domain"
	"github.com/vendora/sales-api/internal/domains/orders/ports"
	orderworkflows "github.com/vendora/sales-api/internal/durable/temporal/workflows/orders"
	orderactivities "github.com/vendora/sales-api/internal/platform/temporal/activities/orders"
	"github.com/vendora/sales-api/internal/shared/authz"
)

var (
	_ ports.PlacementOrchestrator = (*TemporalOrderWorkflows)(nil)
	_ ports.PlacementOrchestrator = (*InlineOrderWorkflows)(nil)
)

// TemporalOrderWorkflows starts order placement workflows on a Temporal cluster.
type TemporalOrderWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalOrderWorkflows wires a Temporal client into the orchestrator.
func NewTemporalOrderWorkflows(c client.Client) *TemporalOrderWorkflows {
	return &TemporalOrderWorkflows{client: c, taskQueue: orderworkflows.OrderPlacementTaskQueue}
}

// PlaceOrder starts the durable workflow that reserves stock and persists the
// order. A reused idempotency key maps to the same workflow ID, so retries
// attach to the original run instead of placing twice.
func (o *TemporalOrderWorkflows) PlaceOrder(ctx context.Context, callerID string, input ports.PlaceOrderInput) (*domain.Order, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal order workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := buildPlacementWorkflowID(input, traceComponent)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	var requestHash string
	if strings.TrimSpace(input.IdempotencyKey) != "" {
		hash, err := application.FingerprintPlaceOrder(input)
		if err != nil {
			return nil, err
		}
		requestHash = hash
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.OrderPlacementWorkflow,
		orderworkflows.OrderPlacementWorkflowInput{CallerID: callerID, Command: input, RequestHash: requestHash, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) && strings.TrimSpace(input.IdempotencyKey) != "" {
			existingRun := o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
			var order domain.Order
			if err := existingRun.Get(ctx, &order); err != nil {
				return nil, restoreSentinel(err)
			}
			return &order, nil
		}
		return nil, err
	}
	var order domain.Order
	if err := run.Get(ctx, &order); err != nil {
		return nil, restoreSentinel(err)
	}
	return &order, nil
}

// InlineOrderWorkflows executes the service directly without Temporal, useful
// for tests or dev fallbacks.
type InlineOrderWorkflows struct {
	service ports.Service
}

// NewInlineOrderWorkflows wraps the order service for synchronous execution.
func NewInlineOrderWorkflows(service ports.Service) *InlineOrderWorkflows {
	return &InlineOrderWorkflows{service: service}
}

// PlaceOrder delegates to the application service without durable orchestration.
func (o *InlineOrderWorkflows) PlaceOrder(ctx context.Context, callerID string, input ports.PlaceOrderInput) (*domain.Order, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline order workflows not configured")
	}
	return o.service.Place(ctx, callerID, input)
}

// restoreSentinel maps workflow application errors back onto the sentinels
// the transport layer classifies.
func restoreSentinel(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	switch appErr.Type() {
	case orderactivities.ErrTypeNotOwned:
		return fmt.Errorf("%w: %s", authz.ErrNotOwned, appErr.Message())
	case orderactivities.ErrTypeClientNotFound:
		return fmt.Errorf("%w: %s", ports.ErrClientNotFound, appErr.Message())
	case orderactivities.ErrTypeInsufficientStock:
		// The original Go error does not survive the failure round trip, so
		// the stock error is rebuilt from the details payload.
		var detail orderactivities.InsufficientStockDetail
		if appErr.HasDetails() {
			if err := appErr.Details(&detail); err != nil {
				return fmt.Errorf("decoding insufficient stock details: %w", err)
			}
		}
		return &catalogports.InsufficientStockError{
			ProductName: detail.ProductName,
			Requested:   detail.Requested,
			Available:   detail.Available,
		}
	case orderactivities.ErrTypeInvalidInput:
		return fmt.Errorf("%w: %s", application.ErrInvalidInput, appErr.Message())
	default:
		return err
	}
}

func buildPlacementWorkflowID(input ports.PlaceOrderInput, traceComponent string) string {
	if key := strings.TrimSpace(input.IdempotencyKey); key != "" {
		return fmt.Sprintf("order-placement-idem-%s", hashIdempotencyKey(key))
	}
	return fmt.Sprintf("order-placement-%s", traceComponent)
}

func hashIdempotencyKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	// Use the first 16 hex chars to keep workflow IDs readable while remaining deterministic.
	return hex.EncodeToString(sum[:8])
}

func workflowTraceComponent(ctx context.Context) string {
	traceComponent := workflowTraceID(ctx)
	if traceComponent != "" {
		return traceComponent
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	traceID := spanCtx.TraceID()
	if !traceID.IsValid() {
		return ""
	}
	return traceID.String()
}
