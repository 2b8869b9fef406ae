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

	cartports "github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-storefront/internal/domains/wishlist/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/wishlist/ports"
)

const tracerName = "github.com/Apurer/go-gin-storefront/internal/domains/wishlist/adapters/observability/service"

// Service decorates a wishlist port with tracing, logging, and metrics.
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

func New(inner ports.Service, opts ...Option) ports.Service {
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
	return s
}

func (s *Service) Wishlist(ctx context.Context) domain.Wishlist { return s.inner.Wishlist(ctx) }

func (s *Service) Items(ctx context.Context) []domain.Item { return s.inner.Items(ctx) }

func (s *Service) IsInWishlist(ctx context.Context, productID string) bool {
	return s.inner.IsInWishlist(ctx, productID)
}

func (s *Service) Count(ctx context.Context) int { return s.inner.Count(ctx) }

func (s *Service) Subscribe(listener ports.Listener) func() { return s.inner.Subscribe(listener) }

func (s *Service) AddItem(ctx context.Context, item domain.Item) (domain.Wishlist, error) {
	ctx, span := s.tracer.Start(ctx, "Wishlist.AddItem", trace.WithAttributes(attribute.String("product.id", item.ProductID)))
	defer span.End()

	w, err := s.inner.AddItem(ctx, item)
	if err != nil {
		return w, s.handleError(ctx, span, err, "failed to save wishlist item", slog.String("product.id", item.ProductID))
	}
	s.metrics.record(ctx, "add")
	s.logger.LogAttrs(ctx, slog.LevelInfo, "wishlist item saved", slog.String("product.id", item.ProductID), slog.Int("wishlist.count", w.Count()))
	return w, nil
}

func (s *Service) RemoveItem(ctx context.Context, productID string) (domain.Wishlist, error) {
	ctx, span := s.tracer.Start(ctx, "Wishlist.RemoveItem", trace.WithAttributes(attribute.String("product.id", productID)))
	defer span.End()

	w, err := s.inner.RemoveItem(ctx, productID)
	if err != nil {
		return w, s.handleError(ctx, span, err, "failed to remove wishlist item", slog.String("product.id", productID))
	}
	s.metrics.record(ctx, "remove")
	return w, nil
}

func (s *Service) Toggle(ctx context.Context, item domain.Item) (domain.Wishlist, bool, error) {
	ctx, span := s.tracer.Start(ctx, "Wishlist.Toggle", trace.WithAttributes(attribute.String("product.id", item.ProductID)))
	defer span.End()

	w, added, err := s.inner.Toggle(ctx, item)
	if err != nil {
		return w, added, s.handleError(ctx, span, err, "failed to toggle wishlist item", slog.String("product.id", item.ProductID))
	}
	span.SetAttributes(attribute.Bool("wishlist.added", added))
	if added {
		s.metrics.record(ctx, "add")
	} else {
		s.metrics.record(ctx, "remove")
	}
	return w, added, nil
}

func (s *Service) Clear(ctx context.Context) (domain.Wishlist, error) {
	ctx, span := s.tracer.Start(ctx, "Wishlist.Clear")
	defer span.End()

	w, err := s.inner.Clear(ctx)
	if err != nil {
		return w, s.handleError(ctx, span, err, "failed to clear wishlist")
	}
	s.metrics.record(ctx, "clear")
	return w, nil
}

func (s *Service) MoveToCart(ctx context.Context, productID string, cart cartports.Service, catalog catalogports.Service) (domain.Wishlist, error) {
	ctx, span := s.tracer.Start(ctx, "Wishlist.MoveToCart", trace.WithAttributes(attribute.String("product.id", productID)))
	defer span.End()

	w, err := s.inner.MoveToCart(ctx, productID, cart, catalog)
	if err != nil {
		return w, s.handleError(ctx, span, err, "failed to move wishlist item to cart", slog.String("product.id", productID))
	}
	s.metrics.record(ctx, "move_to_cart")
	s.logger.LogAttrs(ctx, slog.LevelInfo, "wishlist item moved to cart", slog.String("product.id", productID))
	return w, nil
}

func (s *Service) Flush(ctx context.Context) error {
	if err := s.inner.Flush(ctx); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "wishlist flush incomplete", slog.String("error", err.Error()))
		return err
	}
	return nil
}

func (s *Service) Close(ctx context.Context) error {
	return s.inner.Close(ctx)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	return err
}

type serviceMetrics struct {
	mutations metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	mutations, _ := m.Int64Counter("wishlist.service.mutations", metric.WithDescription("Wishlist transitions by operation"))
	return serviceMetrics{mutations: mutations}
}

func (m serviceMetrics) record(ctx context.Context, op string) {
	if m.mutations == nil {
		return
	}
	m.mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("wishlist.operation", op)))
}

var _ ports.Service = (*Service)(nil)
