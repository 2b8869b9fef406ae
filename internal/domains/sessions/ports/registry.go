package ports

import (
	"context"
	"errors"
	"time"

	cartports "github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
	wishlistports "github.com/Apurer/go-gin-storefront/internal/domains/wishlist/ports"
)

// ErrInvalidShopper is returned for shopper ids that cannot scope storage.
var ErrInvalidShopper = errors.New("invalid shopper id")

// ErrClosed is returned once the registry has been shut down.
var ErrClosed = errors.New("session registry closed")

// ErrUnavailable is returned when a session cannot be restored from storage.
var ErrUnavailable = errors.New("session storage unavailable")

// Session is the pair of item stores owned by one shopper. The shopper id is
// an opaque storage scope, comparable to a browser profile.
type Session struct {
	ShopperID string
	Cart      cartports.Service
	Wishlist  wishlistports.Service
}

// Registry hands out sessions, loading them from storage on first use.
// Acquire pins the session against idle eviction until release is called.
type Registry interface {
	Get(ctx context.Context, shopperID string) (*Session, error)
	Acquire(ctx context.Context, shopperID string) (session *Session, release func(), err error)
	PurgeIdle(ctx context.Context, olderThan time.Duration) (int, error)
	Len() int
	Close(ctx context.Context) error
}
