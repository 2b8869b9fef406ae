package ports

import (
	"context"

	cartports "github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-storefront/internal/domains/wishlist/domain"
)

// StorageKey namespaces the persisted wishlist snapshot.
const StorageKey = "luxe-wishlist"

type Listener func(wishlist domain.Wishlist, version uint64)

// Persister observes committed wishlists and writes them out in the background.
type Persister interface {
	Observe(wishlist domain.Wishlist, version uint64)
	Flush(ctx context.Context) error
	Close(ctx context.Context) error
}

// Service exposes wishlist use cases to adapters.
type Service interface {
	Wishlist(ctx context.Context) domain.Wishlist
	Items(ctx context.Context) []domain.Item
	AddItem(ctx context.Context, item domain.Item) (domain.Wishlist, error)
	RemoveItem(ctx context.Context, productID string) (domain.Wishlist, error)
	IsInWishlist(ctx context.Context, productID string) bool
	Count(ctx context.Context) int
	Toggle(ctx context.Context, item domain.Item) (domain.Wishlist, bool, error)
	Clear(ctx context.Context) (domain.Wishlist, error)
	// MoveToCart adds one unit of the product's default variant to cart and
	// removes it from the wishlist.
	MoveToCart(ctx context.Context, productID string, cart cartports.Service, catalog catalogports.Service) (domain.Wishlist, error)
	Subscribe(listener Listener) (unsubscribe func())
	Flush(ctx context.Context) error
	Close(ctx context.Context) error
}
