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

	itemdomain "github.com/Apurer/go-gin-shop-server/internal/domains/items/domain"
	itemports "github.com/Apurer/go-gin-shop-server/internal/domains/items/ports"
)

const tracerName = "github.com/Apurer/go-gin-shop-server/internal/domains/items/adapters/observability/service"

// Service decorates the item service with tracing, logging, and metrics.
type Service struct {
	inner   itemports.Service
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

// New wraps the core item service.
func New(inner itemports.Service, opts ...Option) itemports.Service {
	s := &Service{
		inner:  inner,
		tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
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

func (s *Service) Save(ctx context.Context, item *itemdomain.Item) (*itemdomain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "ItemService.Save")
	defer span.End()
	saved, err := s.inner.Save(ctx, item)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to save item")
	}
	span.SetAttributes(attribute.Int64("item.id", saved.ID))
	s.metrics.recordSaved(ctx)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "item saved", slog.Int64("itemId", saved.ID), slog.Int("stockQuantity", saved.StockQuantity))
	return saved, nil
}

func (s *Service) Update(ctx context.Context, id int64, changes itemports.ItemChanges) (*itemdomain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "ItemService.Update", trace.WithAttributes(attribute.Int64("item.id", id)))
	defer span.End()
	updated, err := s.inner.Update(ctx, id, changes)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update item", slog.Int64("itemId", id))
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "item updated", slog.Int64("itemId", id), slog.Int("stockQuantity", updated.StockQuantity))
	return updated, nil
}

func (s *Service) List(ctx context.Context) ([]*itemdomain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "ItemService.List")
	defer span.End()
	items, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list items")
	}
	span.SetAttributes(attribute.Int("item.count", len(items)))
	return items, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*itemdomain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "ItemService.GetByID", trace.WithAttributes(attribute.Int64("item.id", id)))
	defer span.End()
	return s.inner.GetByID(ctx, id)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	return err
}

type serviceMetrics struct {
	saved metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	saved, _ := m.Int64Counter("items.service.saved", metric.WithDescription("Number of items added to the catalogue"))
	return serviceMetrics{saved: saved}
}

func (m serviceMetrics) recordSaved(ctx context.Context) {
	if m.saved != nil {
		m.saved.Add(ctx, 1)
	}
}

var _ itemports.Service = (*Service)(nil)
