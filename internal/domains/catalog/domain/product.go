package domain

import (
	"errors"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Category selects a slice of the catalog.
type Category string

const (
	CategoryAll         Category = "all"
	CategoryMen         Category = "men"
	CategoryWomen       Category = "women"
	CategoryNewArrivals Category = "new-arrivals"
	CategorySale        Category = "sale"
)

// SortOrder orders a product listing.
type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortPriceLow  SortOrder = "price-low"
	SortPriceHigh SortOrder = "price-high"
	SortPopular   SortOrder = "popular"
)

var (
	ErrInvalidCategory = errors.New("category is not recognised")
	ErrInvalidSort     = errors.New("sort order is not recognised")
)

// Color is a named swatch offered for a product.
type Color struct {
	Name string
	Hex  string
}

// Product is a read-only catalog record.
type Product struct {
	ID            string
	Name          string
	Price         decimal.Decimal
	OriginalPrice decimal.NullDecimal
	Category      Category
	Subcategory   string
	Images        []string
	Sizes         []string
	Colors        []Color
	Description   string
	Fabric        string
	Care          []string
	Rating        float64
	Reviews       int
	IsNew         bool
	IsSale        bool
}

// ParseCategory normalises a category value; empty means all.
func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	if c == "" {
		return CategoryAll, nil
	}
	switch c {
	case CategoryAll, CategoryMen, CategoryWomen, CategoryNewArrivals, CategorySale:
		return c, nil
	default:
		return "", ErrInvalidCategory
	}
}

// ParseSortOrder normalises a sort value; empty means newest.
func ParseSortOrder(raw string) (SortOrder, error) {
	s := SortOrder(strings.ToLower(strings.TrimSpace(raw)))
	if s == "" {
		return SortNewest, nil
	}
	switch s {
	case SortNewest, SortPriceLow, SortPriceHigh, SortPopular:
		return s, nil
	default:
		return "", ErrInvalidSort
	}
}

// InCategory reports whether the product belongs to c, resolving the pseudo-categories.
func (p *Product) InCategory(c Category) bool {
	switch c {
	case CategoryAll, "":
		return true
	case CategoryNewArrivals:
		return p.IsNew
	case CategorySale:
		return p.IsSale
	default:
		return p.Category == c
	}
}

func (p *Product) HasSize(size string) bool {
	return slices.Contains(p.Sizes, size)
}

func (p *Product) HasColor(name string) bool {
	return slices.ContainsFunc(p.Colors, func(c Color) bool { return c.Name == name })
}

// PrimaryImage returns the first image, or "" when the product has none.
func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// DefaultVariant returns the first listed size and color.
func (p *Product) DefaultVariant() (size, color string, ok bool) {
	if len(p.Sizes) == 0 || len(p.Colors) == 0 {
		return "", "", false
	}
	return p.Sizes[0], p.Colors[0].Name, true
}

// DiscountPercent is the rounded markdown from OriginalPrice, or 0 when not on markdown.
func (p *Product) DiscountPercent() int {
	if !p.OriginalPrice.Valid || !p.OriginalPrice.Decimal.IsPositive() {
		return 0
	}
	if p.Price.GreaterThanOrEqual(p.OriginalPrice.Decimal) {
		return 0
	}
	ratio := decimal.NewFromInt(1).Sub(p.Price.Div(p.OriginalPrice.Decimal))
	return int(ratio.Mul(decimal.NewFromInt(100)).Round(0).IntPart())
}

// Clone returns a deep copy so callers cannot mutate catalog data.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	c := *p
	c.Images = slices.Clone(p.Images)
	c.Sizes = slices.Clone(p.Sizes)
	c.Colors = slices.Clone(p.Colors)
	c.Care = slices.Clone(p.Care)
	return &c
}
