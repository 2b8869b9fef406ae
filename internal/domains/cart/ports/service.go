package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
)

// StorageKey namespaces the persisted cart snapshot.
const StorageKey = "luxe-cart"

// Listener is notified after every committed cart transition.
type Listener func(cart domain.Cart, version uint64)

// Service exposes cart use cases to adapters.
type Service interface {
	Cart(ctx context.Context) domain.Cart
	Items(ctx context.Context) []domain.LineItem
	AddItem(ctx context.Context, item domain.LineItem) (domain.Cart, error)
	RemoveItem(ctx context.Context, key domain.Key) (domain.Cart, error)
	UpdateQuantity(ctx context.Context, key domain.Key, quantity int) (domain.Cart, error)
	AdjustQuantity(ctx context.Context, key domain.Key, delta int) (domain.Cart, error)
	Clear(ctx context.Context) (domain.Cart, error)
	TotalItems(ctx context.Context) int
	TotalPrice(ctx context.Context) decimal.Decimal
	Summary(ctx context.Context) domain.Summary
	Subscribe(listener Listener) (unsubscribe func())
	Flush(ctx context.Context) error
	Close(ctx context.Context) error
}
