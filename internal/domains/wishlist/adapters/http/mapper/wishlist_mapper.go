package mapper

import (
	"github.com/Apurer/go-gin-storefront/internal/domains/wishlist/domain"
)

// Item is the transport shape of a saved product.
type Item struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Image         string   `json:"image"`
	Category      string   `json:"category"`
}

type Wishlist struct {
	Items []Item `json:"items"`
	Count int    `json:"count"`
}

// AddItemRequest saves a catalog product.
type AddItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// Membership answers whether a product is saved.
type Membership struct {
	ProductID    string `json:"productId"`
	InWishlist   bool   `json:"inWishlist"`
	WishlistSize int    `json:"count"`
}

func FromDomainWishlist(w domain.Wishlist) Wishlist {
	out := Wishlist{Items: make([]Item, 0, w.Count()), Count: w.Count()}
	for _, item := range w.Items() {
		out.Items = append(out.Items, FromDomainItem(item))
	}
	return out
}

func FromDomainItem(item domain.Item) Item {
	out := Item{
		ID:       item.ProductID,
		Name:     item.Name,
		Price:    item.Price.InexactFloat64(),
		Image:    item.Image,
		Category: item.Category,
	}
	if item.OriginalPrice.Valid {
		original := item.OriginalPrice.Decimal.InexactFloat64()
		out.OriginalPrice = &original
	}
	return out
}
