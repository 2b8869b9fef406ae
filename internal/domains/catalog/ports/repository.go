package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
)

var ErrNotFound = errors.New("product not found")

// Repository is the read-only catalog source. List returns products in catalog order.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	ListByCategory(ctx context.Context, category domain.Category) ([]*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
}
