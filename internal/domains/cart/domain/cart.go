package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInvalidQuantity is returned when a line would hold fewer than one unit.
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// ErrMissingProduct is returned for a line without a product id.
var ErrMissingProduct = errors.New("product id is required")

// Key identifies a cart line. Two lines with the same key are the same line.
type Key struct {
	ProductID string
	Size      string
	Color     string
}

// LineItem is a product variant held in the cart. Display fields and prices are
// a snapshot taken when the line was first added.
type LineItem struct {
	ProductID     string
	Name          string
	Image         string
	Price         decimal.Decimal
	OriginalPrice decimal.NullDecimal
	Size          string
	Color         string
	Quantity      int
}

func (l LineItem) Key() Key {
	return Key{ProductID: l.ProductID, Size: l.Size, Color: l.Color}
}

// Subtotal is the unit price times quantity.
func (l LineItem) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is an immutable snapshot of a shopper's cart. Every transition returns a
// new Cart and leaves the receiver untouched. The zero value is an empty cart.
type Cart struct {
	items      []LineItem
	totalItems int
	totalPrice decimal.Decimal
}

// New builds a cart from persisted lines. Lines sharing a key are merged and
// lines with a non-positive quantity are dropped.
func New(items []LineItem) Cart {
	var c Cart
	for _, item := range items {
		if item.ProductID == "" || item.Quantity < 1 {
			continue
		}
		c = c.merge(item)
	}
	return c
}

// Items returns a copy of the lines in insertion order.
func (c Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c Cart) Len() int { return len(c.items) }

func (c Cart) IsEmpty() bool { return len(c.items) == 0 }

// TotalItems is the sum of quantities over all lines.
func (c Cart) TotalItems() int { return c.totalItems }

// TotalPrice is the sum of price times quantity over all lines.
func (c Cart) TotalPrice() decimal.Decimal { return c.totalPrice }

// Find returns the line stored under key.
func (c Cart) Find(key Key) (LineItem, bool) {
	if i := c.index(key); i >= 0 {
		return c.items[i], true
	}
	return LineItem{}, false
}

// Add appends item, or adds its quantity to the existing line with the same key.
// An existing line keeps its stored price and display fields.
func (c Cart) Add(item LineItem) (Cart, error) {
	if item.ProductID == "" {
		return c, ErrMissingProduct
	}
	if item.Quantity < 1 {
		return c, ErrInvalidQuantity
	}
	return c.merge(item), nil
}

// Remove drops the line with key. Removing an absent key is a no-op.
func (c Cart) Remove(key Key) Cart {
	i := c.index(key)
	if i < 0 {
		return c
	}
	removed := c.items[i]
	next := make([]LineItem, 0, len(c.items)-1)
	next = append(next, c.items[:i]...)
	next = append(next, c.items[i+1:]...)
	return Cart{
		items:      next,
		totalItems: c.totalItems - removed.Quantity,
		totalPrice: c.totalPrice.Sub(removed.Subtotal()),
	}
}

// UpdateQuantity sets the quantity of the line with key. Unknown keys are a no-op.
func (c Cart) UpdateQuantity(key Key, quantity int) (Cart, error) {
	if quantity < 1 {
		return c, ErrInvalidQuantity
	}
	i := c.index(key)
	if i < 0 {
		return c, nil
	}
	old := c.items[i]
	updated := old
	updated.Quantity = quantity

	next := c.Items()
	next[i] = updated
	return Cart{
		items:      next,
		totalItems: c.totalItems - old.Quantity + quantity,
		totalPrice: c.totalPrice.Sub(old.Subtotal()).Add(updated.Subtotal()),
	}, nil
}

// Clear returns the empty cart.
func (c Cart) Clear() Cart {
	return Cart{}
}

func (c Cart) merge(item LineItem) Cart {
	var added decimal.Decimal
	next := c.Items()
	if i := c.index(item.Key()); i >= 0 {
		next[i].Quantity += item.Quantity
		added = next[i].Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
	} else {
		next = append(next, item)
		added = item.Subtotal()
	}
	return Cart{
		items:      next,
		totalItems: c.totalItems + item.Quantity,
		totalPrice: c.totalPrice.Add(added),
	}
}

func (c Cart) index(key Key) int {
	for i := range c.items {
		if c.items[i].Key() == key {
			return i
		}
	}
	return -1
}
