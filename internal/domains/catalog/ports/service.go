package ports

import (
	"context"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
)

// BrowseQuery mirrors the shop page filters.
type BrowseQuery struct {
	Category string
	Size     string
	Sort     string
}

// FeaturedQuery selects a capped showcase listing.
type FeaturedQuery struct {
	Category string
	Limit    int
}

// Service exposes catalog use cases to adapters.
type Service interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	ListByCategory(ctx context.Context, category string) ([]*domain.Product, error)
	Browse(ctx context.Context, query BrowseQuery) ([]*domain.Product, error)
	Featured(ctx context.Context, query FeaturedQuery) ([]*domain.Product, error)
}
