package observability

import (
	"context"
	"io"
	"log/slog"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
)

const tracerName = "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/observability/service"

// Service decorates a cart port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create cart instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the cart service.
func New(inner ports.Service, opts ...Option) ports.Service {
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

func (s *Service) Cart(ctx context.Context) domain.Cart { return s.inner.Cart(ctx) }

func (s *Service) Items(ctx context.Context) []domain.LineItem { return s.inner.Items(ctx) }

func (s *Service) TotalItems(ctx context.Context) int { return s.inner.TotalItems(ctx) }

func (s *Service) TotalPrice(ctx context.Context) decimal.Decimal { return s.inner.TotalPrice(ctx) }

func (s *Service) Summary(ctx context.Context) domain.Summary { return s.inner.Summary(ctx) }

func (s *Service) Subscribe(listener ports.Listener) func() { return s.inner.Subscribe(listener) }

// AddItem adds a line or merges it into an existing one.
func (s *Service) AddItem(ctx context.Context, item domain.LineItem) (domain.Cart, error) {
	attrs := keyAttrs(item.Key())
	ctx, span := s.tracer.Start(ctx, "Cart.AddItem", trace.WithAttributes(append(attrs, attribute.Int("cart.quantity", item.Quantity))...))
	defer span.End()

	cart, err := s.inner.AddItem(ctx, item)
	if err != nil {
		return cart, s.handleError(ctx, span, err, "failed to add cart item", keyLogAttrs(item.Key())...)
	}
	s.metrics.recordMutation(ctx, "add")
	s.metrics.recordUnits(ctx, int64(item.Quantity))
	s.logInfo(ctx, "cart item added", append(keyLogAttrs(item.Key()), slog.Int("cart.total_items", cart.TotalItems()))...)
	return cart, nil
}

func (s *Service) RemoveItem(ctx context.Context, key domain.Key) (domain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "Cart.RemoveItem", trace.WithAttributes(keyAttrs(key)...))
	defer span.End()

	cart, err := s.inner.RemoveItem(ctx, key)
	if err != nil {
		return cart, s.handleError(ctx, span, err, "failed to remove cart item", keyLogAttrs(key)...)
	}
	s.metrics.recordMutation(ctx, "remove")
	s.logInfo(ctx, "cart item removed", keyLogAttrs(key)...)
	return cart, nil
}

func (s *Service) UpdateQuantity(ctx context.Context, key domain.Key, quantity int) (domain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "Cart.UpdateQuantity", trace.WithAttributes(append(keyAttrs(key), attribute.Int("cart.quantity", quantity))...))
	defer span.End()

	cart, err := s.inner.UpdateQuantity(ctx, key, quantity)
	if err != nil {
		return cart, s.handleError(ctx, span, err, "failed to update cart quantity", append(keyLogAttrs(key), slog.Int("cart.quantity", quantity))...)
	}
	s.metrics.recordMutation(ctx, "update")
	return cart, nil
}

func (s *Service) AdjustQuantity(ctx context.Context, key domain.Key, delta int) (domain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "Cart.AdjustQuantity", trace.WithAttributes(append(keyAttrs(key), attribute.Int("cart.delta", delta))...))
	defer span.End()

	cart, err := s.inner.AdjustQuantity(ctx, key, delta)
	if err != nil {
		return cart, s.handleError(ctx, span, err, "failed to adjust cart quantity", keyLogAttrs(key)...)
	}
	s.metrics.recordMutation(ctx, "adjust")
	return cart, nil
}

func (s *Service) Clear(ctx context.Context) (domain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "Cart.Clear")
	defer span.End()

	cart, err := s.inner.Clear(ctx)
	if err != nil {
		return cart, s.handleError(ctx, span, err, "failed to clear cart")
	}
	s.metrics.recordMutation(ctx, "clear")
	s.logInfo(ctx, "cart cleared")
	return cart, nil
}

func (s *Service) Flush(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "Cart.Flush")
	defer span.End()
	if err := s.inner.Flush(ctx); err != nil {
		return s.handleError(ctx, span, err, "failed to flush cart snapshot")
	}
	return nil
}

func (s *Service) Close(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "Cart.Close")
	defer span.End()
	if err := s.inner.Close(ctx); err != nil {
		return s.handleError(ctx, span, err, "failed to close cart")
	}
	return nil
}

func keyAttrs(key domain.Key) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("product.id", key.ProductID),
		attribute.String("product.size", key.Size),
		attribute.String("product.color", key.Color),
	}
}

func keyLogAttrs(key domain.Key) []slog.Attr {
	return []slog.Attr{
		slog.String("product.id", key.ProductID),
		slog.String("product.size", key.Size),
		slog.String("product.color", key.Color),
	}
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	mutations metric.Int64Counter
	units     metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	mutations, _ := m.Int64Counter("cart.service.mutations", metric.WithDescription("Cart transitions by operation"))
	units, _ := m.Int64Counter("cart.service.units_added", metric.WithDescription("Units added to carts"))
	return serviceMetrics{mutations: mutations, units: units}
}

func (m serviceMetrics) recordMutation(ctx context.Context, op string) {
	if m.mutations != nil {
		m.mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("cart.operation", op)))
	}
}

func (m serviceMetrics) recordUnits(ctx context.Context, n int64) {
	if m.units != nil {
		m.units.Add(ctx, n)
	}
}

var _ ports.Service = (*Service)(nil)
