package mapper

import (
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
)

// LineItem is the transport shape of a cart line.
type LineItem struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Image         string   `json:"image"`
	Size          string   `json:"size"`
	Color         string   `json:"color"`
	Quantity      int      `json:"quantity"`
	LineTotal     float64  `json:"lineTotal"`
}

// Summary mirrors the order summary panel.
type Summary struct {
	Subtotal     float64 `json:"subtotal"`
	Shipping     float64 `json:"shipping"`
	Total        float64 `json:"total"`
	FreeShipping bool    `json:"freeShipping"`
	Remaining    float64 `json:"remainingForFreeShipping"`
}

// Cart is the response body for every cart endpoint.
type Cart struct {
	Items      []LineItem `json:"items"`
	TotalItems int        `json:"totalItems"`
	TotalPrice float64    `json:"totalPrice"`
	Summary    Summary    `json:"summary"`
}

// AddItemRequest selects a catalog product variant to put in the cart.
type AddItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Size      string `json:"size" binding:"required"`
	Color     string `json:"color" binding:"required"`
	Quantity  *int   `json:"quantity"`
}

// Qty defaults an omitted quantity to one.
func (r AddItemRequest) Qty() int {
	if r.Quantity == nil {
		return 1
	}
	return *r.Quantity
}

// UpdateQuantityRequest sets or moves the quantity of a line.
type UpdateQuantityRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
	Delta     int    `json:"delta"`
}

func (r UpdateQuantityRequest) Key() domain.Key {
	return domain.Key{ProductID: r.ProductID, Size: r.Size, Color: r.Color}
}

// FromDomainCart converts a cart snapshot to its transport representation.
func FromDomainCart(cart domain.Cart) Cart {
	out := Cart{
		Items:      make([]LineItem, 0, cart.Len()),
		TotalItems: cart.TotalItems(),
		TotalPrice: cart.TotalPrice().InexactFloat64(),
		Summary:    FromDomainSummary(cart.Summary()),
	}
	for _, item := range cart.Items() {
		out.Items = append(out.Items, FromDomainLineItem(item))
	}
	return out
}

func FromDomainLineItem(item domain.LineItem) LineItem {
	out := LineItem{
		ID:        item.ProductID,
		Name:      item.Name,
		Price:     item.Price.InexactFloat64(),
		Image:     item.Image,
		Size:      item.Size,
		Color:     item.Color,
		Quantity:  item.Quantity,
		LineTotal: item.Subtotal().InexactFloat64(),
	}
	if item.OriginalPrice.Valid {
		original := item.OriginalPrice.Decimal.InexactFloat64()
		out.OriginalPrice = &original
	}
	return out
}

func FromDomainSummary(s domain.Summary) Summary {
	return Summary{
		Subtotal:     s.Subtotal.InexactFloat64(),
		Shipping:     s.Shipping.InexactFloat64(),
		Total:        s.Total.InexactFloat64(),
		FreeShipping: s.FreeShipping,
		Remaining:    s.Remaining.InexactFloat64(),
	}
}
