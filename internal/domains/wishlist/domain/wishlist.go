package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrMissingProduct = errors.New("product id is required")

// Item is a saved product. Fields are a snapshot taken when it was saved.
type Item struct {
	ProductID     string
	Name          string
	Price         decimal.Decimal
	OriginalPrice decimal.NullDecimal
	Image         string
	Category      string
}

// Wishlist is an immutable, insertion-ordered set of items keyed by product id.
type Wishlist struct {
	items []Item
}

// New rebuilds a wishlist from persisted items, keeping the first entry per id.
func New(items []Item) Wishlist {
	var w Wishlist
	for _, item := range items {
		if item.ProductID == "" {
			continue
		}
		w, _ = w.Add(item)
	}
	return w
}

func (w Wishlist) Items() []Item {
	out := make([]Item, len(w.items))
	copy(out, w.items)
	return out
}

func (w Wishlist) Count() int { return len(w.items) }

func (w Wishlist) Contains(productID string) bool {
	return w.index(productID) >= 0
}

func (w Wishlist) Find(productID string) (Item, bool) {
	if i := w.index(productID); i >= 0 {
		return w.items[i], true
	}
	return Item{}, false
}

// Add appends item. Saving an id that is already present is a no-op.
func (w Wishlist) Add(item Item) (Wishlist, error) {
	if item.ProductID == "" {
		return w, ErrMissingProduct
	}
	if w.Contains(item.ProductID) {
		return w, nil
	}
	next := make([]Item, 0, len(w.items)+1)
	next = append(next, w.items...)
	next = append(next, item)
	return Wishlist{items: next}, nil
}

// Remove drops the item with productID; absent ids are a no-op.
func (w Wishlist) Remove(productID string) Wishlist {
	i := w.index(productID)
	if i < 0 {
		return w
	}
	next := make([]Item, 0, len(w.items)-1)
	next = append(next, w.items[:i]...)
	next = append(next, w.items[i+1:]...)
	return Wishlist{items: next}
}

// Toggle removes item when saved and saves it otherwise. added reports which.
func (w Wishlist) Toggle(item Item) (next Wishlist, added bool, err error) {
	if w.Contains(item.ProductID) {
		return w.Remove(item.ProductID), false, nil
	}
	next, err = w.Add(item)
	return next, err == nil, err
}

func (w Wishlist) Clear() Wishlist { return Wishlist{} }

func (w Wishlist) index(productID string) int {
	for i := range w.items {
		if w.items[i].ProductID == productID {
			return i
		}
	}
	return -1
}
