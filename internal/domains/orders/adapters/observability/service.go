package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	ordersdomain "github.com/vendora/sales-api/internal/domains/orders/domain"
	ordersports "github.com/vendora/sales-api/internal/domains/orders/ports"
)

const tracerName = "github.com/vendora/sales-api/internal/domains/orders/adapters/observability/service"

// Service decorates the order service with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core order service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) Place(ctx context.Context, callerID string, input ordersports.PlaceOrderInput) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.Place",
		trace.WithAttributes(
			attribute.String("order.client_id", input.ClientID),
			attribute.Int("order.line_count", len(input.Lines)),
		))
	defer span.End()

	s.logInfo(ctx, "placing order", slog.String("client.id", input.ClientID), slog.Int("lines", len(input.Lines)))
	result, err := s.inner.Place(ctx, callerID, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to place order", slog.String("client.id", input.ClientID))
	}
	span.SetAttributes(attribute.String("order.id", result.ID))
	s.metrics.recordPlaced(ctx, result.Status)
	s.logInfo(ctx, "order placed", slog.String("order.id", result.ID), slog.String("total", result.Total.String()))
	return result, nil
}

func (s *Service) Update(ctx context.Context, callerID, orderID string, input ordersports.UpdateOrderInput) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.Update", trace.WithAttributes(attribute.String("order.id", orderID)))
	defer span.End()

	s.logInfo(ctx, "updating order", slog.String("order.id", orderID))
	result, err := s.inner.Update(ctx, callerID, orderID, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update order", slog.String("order.id", orderID))
	}
	s.metrics.recordStatus(ctx, result.Status)
	s.logInfo(ctx, "order updated", slog.String("order.id", result.ID), slog.String("status", string(result.Status)))
	return result, nil
}

func (s *Service) Delete(ctx context.Context, callerID, orderID string) error {
	ctx, span := s.tracer.Start(ctx, "OrderService.Delete", trace.WithAttributes(attribute.String("order.id", orderID)))
	defer span.End()

	s.logInfo(ctx, "deleting order", slog.String("order.id", orderID))
	if err := s.inner.Delete(ctx, callerID, orderID); err != nil {
		return s.handleError(ctx, span, err, "failed to delete order", slog.String("order.id", orderID))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "order deleted", slog.String("order.id", orderID))
	return nil
}

func (s *Service) Get(ctx context.Context, callerID, orderID string) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.Get", trace.WithAttributes(attribute.String("order.id", orderID)))
	defer span.End()

	result, err := s.inner.Get(ctx, callerID, orderID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("order.id", orderID))
	}
	return result, nil
}

func (s *Service) List(ctx context.Context) ([]*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.List")
	defer span.End()

	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("order.count", len(result)))
	return result, nil
}

func (s *Service) ListByVendor(ctx context.Context, vendorID string) ([]*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListByVendor")
	defer span.End()

	result, err := s.inner.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list vendor orders")
	}
	span.SetAttributes(attribute.Int("order.count", len(result)))
	return result, nil
}

func (s *Service) ListByStatus(ctx context.Context, vendorID string, status ordersdomain.Status) ([]*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListByStatus",
		trace.WithAttributes(attribute.String("order.status", string(status))))
	defer span.End()

	result, err := s.inner.ListByStatus(ctx, vendorID, status)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders by status")
	}
	span.SetAttributes(attribute.Int("order.count", len(result)))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	ordersPlaced  metric.Int64Counter
	statusChanges metric.Int64Counter
	ordersDeleted metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersPlaced, _ := m.Int64Counter("orders.service.placed", metric.WithDescription("Number of orders placed"))
	statusChanges, _ := m.Int64Counter("orders.service.status_changes", metric.WithDescription("Number of order status changes"))
	ordersDeleted, _ := m.Int64Counter("orders.service.deleted", metric.WithDescription("Number of orders deleted"))
	return serviceMetrics{ordersPlaced: ordersPlaced, statusChanges: statusChanges, ordersDeleted: ordersDeleted}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, status ordersdomain.Status) {
	if m.ordersPlaced != nil {
		m.ordersPlaced.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}

func (m serviceMetrics) recordStatus(ctx context.Context, status ordersdomain.Status) {
	if m.statusChanges != nil {
		m.statusChanges.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	if m.ordersDeleted != nil {
		m.ordersDeleted.Add(ctx, 1)
	}
}

var _ ordersports.Service = (*Service)(nil)
