package memory

import (
	"context"
	"sync"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository serves a fixed catalog from memory in insertion order.
type Repository struct {
	mu       sync.RWMutex
	products []*domain.Product
	byID     map[string]*domain.Product
}

// NewRepository builds a repository over products; nil or empty seeds the default catalog.
func NewRepository(products ...*domain.Product) *Repository {
	if len(products) == 0 {
		products = SeedProducts()
	}
	r := &Repository{byID: make(map[string]*domain.Product, len(products))}
	for _, p := range products {
		r.products = append(r.products, p.Clone())
		r.byID[p.ID] = r.products[len(r.products)-1]
	}
	return r
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return p.Clone(), nil
}

func (r *Repository) ListByCategory(_ context.Context, category domain.Category) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		if p.InCategory(category) {
			list = append(list, p.Clone())
		}
	}
	return list, nil
}

func (r *Repository) List(ctx context.Context) ([]*domain.Product, error) {
	return r.ListByCategory(ctx, domain.CategoryAll)
}
