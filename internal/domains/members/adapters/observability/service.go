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

	memberdomain "github.com/Apurer/go-gin-shop-server/internal/domains/members/domain"
	memberports "github.com/Apurer/go-gin-shop-server/internal/domains/members/ports"
)

const tracerName = "github.com/Apurer/go-gin-shop-server/internal/domains/members/adapters/observability/service"

// Service decorates the member service with tracing, logging, and metrics.
type Service struct {
	inner   memberports.Service
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

// New wraps the core member service.
func New(inner memberports.Service, opts ...Option) memberports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
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
		s.logger = defaultLogger()
	}
	return s
}

func (s *Service) Register(ctx context.Context, member *memberdomain.Member) (int64, error) {
	name := ""
	if member != nil {
		name = member.Name
	}
	ctx, span := s.tracer.Start(ctx, "MemberService.Register", trace.WithAttributes(attribute.String("member.name", name)))
	defer span.End()
	s.logInfo(ctx, "registering member", slog.String("name", name))
	id, err := s.inner.Register(ctx, member)
	if err != nil {
		return 0, s.handleError(ctx, span, err, "failed to register member", slog.String("name", name))
	}
	span.SetAttributes(attribute.Int64("member.id", id))
	s.metrics.recordRegistered(ctx)
	s.logInfo(ctx, "member registered", slog.Int64("id", id))
	return id, nil
}

func (s *Service) List(ctx context.Context) ([]*memberdomain.Member, error) {
	ctx, span := s.tracer.Start(ctx, "MemberService.List")
	defer span.End()
	members, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list members")
	}
	span.SetAttributes(attribute.Int("member.count", len(members)))
	return members, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*memberdomain.Member, error) {
	ctx, span := s.tracer.Start(ctx, "MemberService.GetByID", trace.WithAttributes(attribute.Int64("member.id", id)))
	defer span.End()
	return s.inner.GetByID(ctx, id)
}

func (s *Service) UpdateName(ctx context.Context, id int64, name string) (*memberdomain.Member, error) {
	ctx, span := s.tracer.Start(ctx, "MemberService.UpdateName", trace.WithAttributes(attribute.Int64("member.id", id)))
	defer span.End()
	member, err := s.inner.UpdateName(ctx, id, name)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update member name", slog.Int64("id", id))
	}
	s.metrics.recordRenamed(ctx)
	s.logInfo(ctx, "member renamed", slog.Int64("id", id), slog.String("name", member.Name))
	return member, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
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

type serviceMetrics struct {
	registered metric.Int64Counter
	renamed    metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	registered, _ := m.Int64Counter("members.service.registered", metric.WithDescription("Number of members registered"))
	renamed, _ := m.Int64Counter("members.service.renamed", metric.WithDescription("Number of member name updates"))
	return serviceMetrics{registered: registered, renamed: renamed}
}

func (m serviceMetrics) recordRegistered(ctx context.Context) {
	if m.registered != nil {
		m.registered.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordRenamed(ctx context.Context) {
	if m.renamed != nil {
		m.renamed.Add(ctx, 1)
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ memberports.Service = (*Service)(nil)
