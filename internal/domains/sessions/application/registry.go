package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	cartcodec "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/codec"
	cartobs "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/observability"
	cartapp "github.com/Apurer/go-gin-storefront/internal/domains/cart/application"
	cartdomain "github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	cartports "github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
	"github.com/Apurer/go-gin-storefront/internal/domains/sessions/ports"
	wishlistcodec "github.com/Apurer/go-gin-storefront/internal/domains/wishlist/adapters/codec"
	wishlistobs "github.com/Apurer/go-gin-storefront/internal/domains/wishlist/adapters/observability"
	wishlistapp "github.com/Apurer/go-gin-storefront/internal/domains/wishlist/application"
	wishlistdomain "github.com/Apurer/go-gin-storefront/internal/domains/wishlist/domain"
	wishlistports "github.com/Apurer/go-gin-storefront/internal/domains/wishlist/ports"
	"github.com/Apurer/go-gin-storefront/internal/platform/blobstore"
	"github.com/Apurer/go-gin-storefront/internal/shared/statestore"
)

// MaxShopperIDLength bounds the storage scope.
const MaxShopperIDLength = 128

// Registry keeps one cart and wishlist per shopper in memory.
type Registry struct {
	backend      blobstore.Backend
	writer       statestore.Writer
	logger       *slog.Logger
	tracer       trace.Tracer
	meter        metric.Meter
	writeTimeout time.Duration
	now          func() time.Time
	active       metric.Int64UpDownCounter

	mu       sync.Mutex
	sessions map[string]*entry
	closed   bool
}

type entry struct {
	ready    chan struct{}
	session  *ports.Session
	err      error
	lastSeen atomic.Int64
	holds    atomic.Int32
}

type Option func(*Registry)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(r *Registry) {
		r.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(r *Registry) {
		r.meter = m
	}
}

// WithWriter routes snapshot writes somewhere other than the backend, such as
// a durable workflow dispatcher. Reads still come from the backend.
func WithWriter(w statestore.Writer) Option {
	return func(r *Registry) {
		r.writer = w
	}
}

func WithWriteTimeout(d time.Duration) Option {
	return func(r *Registry) {
		r.writeTimeout = d
	}
}

// WithClock overrides the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRegistry builds a registry persisting to backend.
func NewRegistry(backend blobstore.Backend, opts ...Option) *Registry {
	r := &Registry{
		backend:  backend,
		writer:   backend,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
		sessions: make(map[string]*entry),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if r.writer == nil {
		r.writer = backend
	}
	if r.meter != nil {
		r.active, _ = r.meter.Int64UpDownCounter("sessions.active", metric.WithDescription("Shopper sessions held in memory"))
	}
	return r
}

// ValidateShopperID rejects ids that are empty, too long, or would escape their scope.
func ValidateShopperID(id string) error {
	switch {
	case strings.TrimSpace(id) == "":
		return fmt.Errorf("%w: empty", ports.ErrInvalidShopper)
	case len(id) > MaxShopperIDLength:
		return fmt.Errorf("%w: longer than %d characters", ports.ErrInvalidShopper, MaxShopperIDLength)
	case strings.ContainsAny(id, blobstore.KeySeparator+"/ \t\r\n"):
		return fmt.Errorf("%w: contains a reserved character", ports.ErrInvalidShopper)
	}
	return nil
}

// Get returns the shopper's session, restoring both stores on first access.
// Concurrent first calls for the same shopper share one load. A load that
// cannot read storage is not cached, so the next Get retries it.
func (r *Registry) Get(ctx context.Context, shopperID string) (*ports.Session, error) {
	e, err := r.get(ctx, shopperID, false)
	if err != nil {
		return nil, err
	}
	return e.session, nil
}

// Acquire is Get for long-lived consumers such as event streams: the session
// is exempt from PurgeIdle until release is called. Release counts as a touch.
func (r *Registry) Acquire(ctx context.Context, shopperID string) (*ports.Session, func(), error) {
	e, err := r.get(ctx, shopperID, true)
	if err != nil {
		return nil, nil, err
	}
	var once sync.Once
	release := func() {
		once.Do(func() {
			e.lastSeen.Store(r.now().UnixNano())
			e.holds.Add(-1)
		})
	}
	return e.session, release, nil
}

func (r *Registry) get(ctx context.Context, shopperID string, hold bool) (*entry, error) {
	if err := ValidateShopperID(shopperID); err != nil {
		return nil, err
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, ports.ErrClosed
	}
	e, ok := r.sessions[shopperID]
	if !ok {
		e = &entry{ready: make(chan struct{})}
		r.sessions[shopperID] = e
	}
	e.lastSeen.Store(r.now().UnixNano())
	if hold {
		e.holds.Add(1)
	}
	r.mu.Unlock()

	if !ok {
		session, err := r.open(ctx, shopperID)
		if err != nil {
			r.mu.Lock()
			if r.sessions[shopperID] == e {
				delete(r.sessions, shopperID)
			}
			r.mu.Unlock()
			e.err = err
			close(e.ready)
			r.logger.LogAttrs(ctx, slog.LevelError, "session load failed",
				slog.String("shopper.id", shopperID), slog.String("error", err.Error()))
			return nil, err
		}
		e.session = session
		close(e.ready)
		if r.active != nil {
			r.active.Add(ctx, 1)
		}
		return e, nil
	}
	select {
	case <-e.ready:
		if e.err != nil {
			return nil, e.err
		}
		return e, nil
	case <-ctx.Done():
		if hold {
			e.holds.Add(-1)
		}
		return nil, ctx.Err()
	}
}

func (r *Registry) open(ctx context.Context, shopperID string) (*ports.Session, error) {
	scoped := blobstore.Scoped(r.backend, shopperID)
	writer := blobstore.ScopedWriter(r.writer, shopperID)
	logger := r.logger.With(slog.String("shopper.id", shopperID))

	cart, err := statestore.Load[cartdomain.Cart](ctx, scoped, cartports.StorageKey, cartcodec.JSON{}, cartdomain.Cart{}, logger)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrUnavailable, err)
	}
	wishlist, err := statestore.Load[wishlistdomain.Wishlist](ctx, scoped, wishlistports.StorageKey, wishlistcodec.JSON{}, wishlistdomain.Wishlist{}, logger)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrUnavailable, err)
	}

	persistOpts := []statestore.PersisterOption{
		statestore.WithLogger(logger),
		statestore.WithMeter(r.meter),
		statestore.WithWriteTimeout(r.writeTimeout),
	}
	cartSvc := cartapp.NewService(cart,
		statestore.NewPersister[cartdomain.Cart](cartports.StorageKey, cartcodec.JSON{}, writer, persistOpts...))
	wishlistSvc := wishlistapp.NewService(wishlist,
		statestore.NewPersister[wishlistdomain.Wishlist](wishlistports.StorageKey, wishlistcodec.JSON{}, writer, persistOpts...))

	logger.LogAttrs(ctx, slog.LevelDebug, "session opened",
		slog.Int("cart.lines", cart.Len()), slog.Int("wishlist.count", wishlist.Count()))

	return &ports.Session{
		ShopperID: shopperID,
		Cart:      cartobs.New(cartSvc, cartobs.WithLogger(logger), cartobs.WithTracer(r.tracer), cartobs.WithMeter(r.meter)),
		Wishlist:  wishlistobs.New(wishlistSvc, wishlistobs.WithLogger(logger), wishlistobs.WithTracer(r.tracer), wishlistobs.WithMeter(r.meter)),
	}, nil
}

// Len reports how many sessions are held in memory.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// PurgeIdle flushes and evicts sessions not touched within olderThan. Sessions
// held through Acquire are kept. An evicted shopper is restored from storage on
// the next Get.
func (r *Registry) PurgeIdle(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := r.now().Add(-olderThan).UnixNano()

	r.mu.Lock()
	var idle []*entry
	for id, e := range r.sessions {
		select {
		case <-e.ready:
		default:
			continue
		}
		if e.holds.Load() == 0 && e.lastSeen.Load() < cutoff {
			idle = append(idle, e)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	err := r.closeAll(ctx, idle)
	if len(idle) > 0 {
		r.logger.LogAttrs(ctx, slog.LevelInfo, "idle sessions purged", slog.Int("count", len(idle)))
	}
	return len(idle), err
}

// Close flushes every session and refuses further Gets.
func (r *Registry) Close(ctx context.Context) error {
	r.mu.Lock()
	r.closed = true
	all := make([]*entry, 0, len(r.sessions))
	for id, e := range r.sessions {
		all = append(all, e)
		delete(r.sessions, id)
	}
	r.mu.Unlock()
	return r.closeAll(ctx, all)
}

func (r *Registry) closeAll(ctx context.Context, entries []*entry) error {
	var errs []error
	for _, e := range entries {
		select {
		case <-e.ready:
		case <-ctx.Done():
			return errors.Join(append(errs, ctx.Err())...)
		}
		s := e.session
		if s == nil {
			continue
		}
		if err := s.Cart.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("close cart for %s: %w", s.ShopperID, err))
		}
		if err := s.Wishlist.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("close wishlist for %s: %w", s.ShopperID, err))
		}
		if r.active != nil {
			r.active.Add(ctx, -1)
		}
	}
	return errors.Join(errs...)
}

var _ ports.Registry = (*Registry)(nil)
