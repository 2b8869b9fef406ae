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

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

const tracerName = "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/observability/service"

// Service decorates the catalog port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
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

// New wires a decorator around the catalog service.
func New(inner ports.Service, opts ...Option) ports.Service {
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

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "Catalog.GetByID", trace.WithAttributes(attribute.String("product.id", id)))
	defer span.End()

	product, err := s.inner.GetByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load product", slog.String("product.id", id))
	}
	s.metrics.recordLookup(ctx)
	return product, nil
}

func (s *Service) ListByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "Catalog.ListByCategory", trace.WithAttributes(attribute.String("catalog.category", category)))
	defer span.End()

	products, err := s.inner.ListByCategory(ctx, category)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list category", slog.String("catalog.category", category))
	}
	span.SetAttributes(attribute.Int("catalog.result.count", len(products)))
	s.metrics.recordListing(ctx, "category")
	return products, nil
}

func (s *Service) Browse(ctx context.Context, query ports.BrowseQuery) ([]*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "Catalog.Browse", trace.WithAttributes(
		attribute.String("catalog.category", query.Category),
		attribute.String("catalog.size", query.Size),
		attribute.String("catalog.sort", query.Sort),
	))
	defer span.End()

	products, err := s.inner.Browse(ctx, query)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to browse catalog",
			slog.String("catalog.category", query.Category), slog.String("catalog.sort", query.Sort))
	}
	span.SetAttributes(attribute.Int("catalog.result.count", len(products)))
	s.logger.LogAttrs(ctx, slog.LevelDebug, "catalog browsed",
		slog.String("catalog.category", query.Category), slog.Int("count", len(products)))
	s.metrics.recordListing(ctx, "browse")
	return products, nil
}

func (s *Service) Featured(ctx context.Context, query ports.FeaturedQuery) ([]*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "Catalog.Featured", trace.WithAttributes(
		attribute.String("catalog.category", query.Category),
		attribute.Int("catalog.limit", query.Limit),
	))
	defer span.End()

	products, err := s.inner.Featured(ctx, query)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load featured products", slog.String("catalog.category", query.Category))
	}
	s.metrics.recordListing(ctx, "featured")
	return products, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	lookups  metric.Int64Counter
	listings metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	lookups, _ := m.Int64Counter("catalog.service.lookups", metric.WithDescription("Product detail lookups"))
	listings, _ := m.Int64Counter("catalog.service.listings", metric.WithDescription("Product listings served"))
	return serviceMetrics{lookups: lookups, listings: listings}
}

func (m serviceMetrics) recordLookup(ctx context.Context) {
	if m.lookups != nil {
		m.lookups.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordListing(ctx context.Context, kind string) {
	if m.listings != nil {
		m.listings.Add(ctx, 1, metric.WithAttributes(attribute.String("catalog.listing", kind)))
	}
}

var _ ports.Service = (*Service)(nil)
