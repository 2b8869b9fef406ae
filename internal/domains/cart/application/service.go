package application

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
	"github.com/Apurer/go-gin-storefront/internal/shared/statestore"
)

// Service runs cart transitions against a snapshot store.
type Service struct {
	store     *statestore.Store[domain.Cart]
	persister ports.Persister
}

// NewService seeds the cart with initial. A non-nil persister observes every
// transition and is flushed on Close.
func NewService(initial domain.Cart, persister ports.Persister) *Service {
	s := &Service{
		store:     statestore.New(initial),
		persister: persister,
	}
	if persister != nil {
		s.store.Subscribe(persister.Observe)
	}
	return s
}

func (s *Service) Cart(context.Context) domain.Cart {
	return s.store.State()
}

func (s *Service) Items(context.Context) []domain.LineItem {
	return s.store.State().Items()
}

func (s *Service) AddItem(_ context.Context, item domain.LineItem) (domain.Cart, error) {
	cart, err := s.store.Update(func(c domain.Cart) (domain.Cart, error) {
		return c.Add(item)
	})
	return cart, mapError(err)
}

func (s *Service) RemoveItem(_ context.Context, key domain.Key) (domain.Cart, error) {
	return s.store.Update(func(c domain.Cart) (domain.Cart, error) {
		return c.Remove(key), nil
	})
}

func (s *Service) UpdateQuantity(_ context.Context, key domain.Key, quantity int) (domain.Cart, error) {
	cart, err := s.store.Update(func(c domain.Cart) (domain.Cart, error) {
		return c.UpdateQuantity(key, quantity)
	})
	return cart, mapError(err)
}

// AdjustQuantity moves a line's quantity by delta, never below one. This is
// what the cart page steppers do.
func (s *Service) AdjustQuantity(_ context.Context, key domain.Key, delta int) (domain.Cart, error) {
	cart, err := s.store.Update(func(c domain.Cart) (domain.Cart, error) {
		line, ok := c.Find(key)
		if !ok {
			return c, nil
		}
		return c.UpdateQuantity(key, max(1, line.Quantity+delta))
	})
	return cart, mapError(err)
}

func (s *Service) Clear(context.Context) (domain.Cart, error) {
	return s.store.Update(func(c domain.Cart) (domain.Cart, error) {
		return c.Clear(), nil
	})
}

func (s *Service) TotalItems(context.Context) int {
	return s.store.State().TotalItems()
}

func (s *Service) TotalPrice(context.Context) decimal.Decimal {
	return s.store.State().TotalPrice()
}

func (s *Service) Summary(context.Context) domain.Summary {
	return s.store.State().Summary()
}

func (s *Service) Subscribe(listener ports.Listener) func() {
	if listener == nil {
		return func() {}
	}
	return s.store.Subscribe(statestore.Listener[domain.Cart](listener))
}

// Flush waits for the persister to write the latest cart.
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
