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

	ordertypes "github.com/Apurer/go-gin-shop-server/internal/domains/orders/application/types"
	orderdomain "github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
	orderports "github.com/Apurer/go-gin-shop-server/internal/domains/orders/ports"
)

const tracerName = "github.com/Apurer/go-gin-shop-server/internal/domains/orders/adapters/observability/service"

// Service decorates the order service with tracing, logging, and metrics.
type Service struct {
	inner   orderports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

// New wraps the core order service.
func New(inner orderports.Service, opts ...Option) orderports.Service {
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
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

func (s *Service) PlaceOrder(ctx context.Context, input ordertypes.PlaceOrderInput) (*orderdomain.Order, error) {
	attrs := []slog.Attr{slog.Int64("memberId", input.MemberID), slog.Int64("itemId", input.ItemID), slog.Int("count", input.Count)}
	ctx, span := s.tracer.Start(ctx, "OrderService.PlaceOrder", trace.WithAttributes(
		attribute.Int64("member.id", input.MemberID),
		attribute.Int64("item.id", input.ItemID),
		attribute.Int("order.count", input.Count),
	))
	defer span.End()
	s.logger.LogAttrs(ctx, slog.LevelInfo, "placing order", attrs...)
	order, err := s.inner.PlaceOrder(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to place order", attrs...)
	}
	span.SetAttributes(attribute.Int64("order.id", order.ID))
	s.metrics.recordPlaced(ctx)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "order placed", slog.Int64("orderId", order.ID), slog.Int("totalPrice", order.TotalPrice()))
	return order, nil
}

func (s *Service) CancelOrder(ctx context.Context, id int64) (*orderdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CancelOrder", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()
	order, err := s.inner.CancelOrder(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to cancel order", slog.Int64("orderId", id))
	}
	s.metrics.recordCancelled(ctx)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "order cancelled", slog.Int64("orderId", id))
	return order, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*orderdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetByID", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()
	return s.inner.GetByID(ctx, id)
}

func (s *Service) Search(ctx context.Context, search orderdomain.OrderSearch) ([]*orderdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.Search", trace.WithAttributes(
		attribute.String("order.search.status", string(search.Status)),
		attribute.Int("order.search.filters", len(search.Filters())),
	))
	defer span.End()
	orders, err := s.inner.Search(ctx, search)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "order search failed", slog.String("status", string(search.Status)))
	}
	span.SetAttributes(attribute.Int("order.search.results", len(orders)))
	return orders, nil
}

func (s *Service) ListWithMemberDelivery(ctx context.Context, page orderdomain.Page) ([]*orderdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListWithMemberDelivery", pageAttributes(page))
	defer span.End()
	orders, err := s.inner.ListWithMemberDelivery(ctx, page)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	return orders, nil
}

func (s *Service) ListWithItems(ctx context.Context, page orderdomain.Page) ([]*orderdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListWithItems", pageAttributes(page))
	defer span.End()
	orders, err := s.inner.ListWithItems(ctx, page)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders with items")
	}
	return orders, nil
}

func pageAttributes(page orderdomain.Page) trace.SpanStartOption {
	return trace.WithAttributes(attribute.Int("page.offset", page.Offset), attribute.Int("page.limit", page.Limit))
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	return err
}

type serviceMetrics struct {
	placed    metric.Int64Counter
	cancelled metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	placed, _ := m.Int64Counter("orders.service.placed", metric.WithDescription("Number of orders placed"))
	cancelled, _ := m.Int64Counter("orders.service.cancelled", metric.WithDescription("Number of orders cancelled"))
	return serviceMetrics{placed: placed, cancelled: cancelled}
}

func (m serviceMetrics) recordPlaced(ctx context.Context) {
	if m.placed != nil {
		m.placed.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordCancelled(ctx context.Context) {
	if m.cancelled != nil {
		m.cancelled.Add(ctx, 1)
	}
}

var _ orderports.Service = (*Service)(nil)
