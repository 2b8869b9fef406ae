package mapper

import (
	catalogdomain "github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
)

// Color is the swatch shape returned to clients.
type Color struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// Product is the transport shape of a catalog product.
type Product struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Price           float64  `json:"price"`
	OriginalPrice   *float64 `json:"originalPrice,omitempty"`
	DiscountPercent int      `json:"discountPercent,omitempty"`
	Category        string   `json:"category"`
	Subcategory     string   `json:"subcategory"`
	Images          []string `json:"images"`
	Sizes           []string `json:"sizes"`
	Colors          []Color  `json:"colors"`
	Description     string   `json:"description"`
	Fabric          string   `json:"fabric"`
	Care            []string `json:"care"`
	Rating          float64  `json:"rating"`
	Reviews         int      `json:"reviews"`
	IsNew           bool     `json:"isNew,omitempty"`
	IsSale          bool     `json:"isSale,omitempty"`
}

// FromDomainProduct converts a catalog product to its transport representation.
func FromDomainProduct(p *catalogdomain.Product) Product {
	if p == nil {
		return Product{}
	}
	out := Product{
		ID:              p.ID,
		Name:            p.Name,
		Price:           p.Price.InexactFloat64(),
		DiscountPercent: p.DiscountPercent(),
		Category:        string(p.Category),
		Subcategory:     p.Subcategory,
		Images:          append([]string{}, p.Images...),
		Sizes:           append([]string{}, p.Sizes...),
		Colors:          make([]Color, 0, len(p.Colors)),
		Description:     p.Description,
		Fabric:          p.Fabric,
		Care:            append([]string{}, p.Care...),
		Rating:          p.Rating,
		Reviews:         p.Reviews,
		IsNew:           p.IsNew,
		IsSale:          p.IsSale,
	}
	if p.OriginalPrice.Valid {
		original := p.OriginalPrice.Decimal.InexactFloat64()
		out.OriginalPrice = &original
	}
	for _, c := range p.Colors {
		out.Colors = append(out.Colors, Color{Name: c.Name, Hex: c.Hex})
	}
	return out
}

func FromDomainProducts(products []*catalogdomain.Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		out = append(out, FromDomainProduct(p))
	}
	return out
}
