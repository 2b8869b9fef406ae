package application

import (
	"context"
	"fmt"

	cartapp "github.com/Apurer/go-gin-storefront/internal/domains/cart/application"
	cartports "github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
	catalogdomain "github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-storefront/internal/domains/wishlist/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/wishlist/ports"
	"github.com/Apurer/go-gin-storefront/internal/shared/statestore"
)

// Service runs wishlist transitions against a snapshot store.
type Service struct {
	store     *statestore.Store[domain.Wishlist]
	persister ports.Persister
}

func NewService(initial domain.Wishlist, persister ports.Persister) *Service {
	s := &Service{
		store:     statestore.New(initial),
		persister: persister,
	}
	if persister != nil {
		s.store.Subscribe(persister.Observe)
	}
	return s
}

// ItemFromProduct snapshots the catalog fields a wishlist keeps.
func ItemFromProduct(product *catalogdomain.Product) domain.Item {
	if product == nil {
		return domain.Item{}
	}
	return domain.Item{
		ProductID:     product.ID,
		Name:          product.Name,
		Price:         product.Price,
		OriginalPrice: product.OriginalPrice,
		Image:         product.PrimaryImage(),
		Category:      string(product.Category),
	}
}

func (s *Service) Wishlist(context.Context) domain.Wishlist {
	return s.store.State()
}

func (s *Service) Items(context.Context) []domain.Item {
	return s.store.State().Items()
}

func (s *Service) AddItem(_ context.Context, item domain.Item) (domain.Wishlist, error) {
	w, err := s.store.Update(func(w domain.Wishlist) (domain.Wishlist, error) {
		return w.Add(item)
	})
	return w, mapError(err)
}

func (s *Service) RemoveItem(_ context.Context, productID string) (domain.Wishlist, error) {
	return s.store.Update(func(w domain.Wishlist) (domain.Wishlist, error) {
		return w.Remove(productID), nil
	})
}

func (s *Service) IsInWishlist(_ context.Context, productID string) bool {
	return s.store.State().Contains(productID)
}

func (s *Service) Count(context.Context) int {
	return s.store.State().Count()
}

func (s *Service) Toggle(_ context.Context, item domain.Item) (domain.Wishlist, bool, error) {
	var added bool
	w, err := s.store.Update(func(w domain.Wishlist) (domain.Wishlist, error) {
		next, ok, err := w.Toggle(item)
		added = ok
		return next, err
	})
	return w, added, mapError(err)
}

func (s *Service) Clear(context.Context) (domain.Wishlist, error) {
	return s.store.Update(func(w domain.Wishlist) (domain.Wishlist, error) {
		return w.Clear(), nil
	})
}

// MoveToCart re-reads the product from the catalog so the cart line carries
// current pricing, then drops the saved item.
func (s *Service) MoveToCart(ctx context.Context, productID string, cart cartports.Service, catalog catalogports.Service) (domain.Wishlist, error) {
	if !s.store.State().Contains(productID) {
		return s.store.State(), fmt.Errorf("%w: %s", ErrNotInWishlist, productID)
	}
	product, err := catalog.GetByID(ctx, productID)
	if err != nil {
		return s.store.State(), err
	}
	line, err := cartapp.DefaultLineItem(product)
	if err != nil {
		return s.store.State(), err
	}
	if _, err := cart.AddItem(ctx, line); err != nil {
		return s.store.State(), err
	}
	return s.RemoveItem(ctx, productID)
}

func (s *Service) Subscribe(listener ports.Listener) func() {
	if listener == nil {
		return func() {}
	}
	return s.store.Subscribe(statestore.Listener[domain.Wishlist](listener))
}

func (s *Service) Flush(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}
	return s.persister.Flush(ctx)
}

func (s *Service) Close(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}
	return s.persister.Close(ctx)
}

var _ ports.Service = (*Service)(nil)
