package ports

import (
	"context"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
)

// Persister observes committed carts and writes them out in the background.
type Persister interface {
	Observe(cart domain.Cart, version uint64)
	Flush(ctx context.Context) error
	Close(ctx context.Context) error
}
