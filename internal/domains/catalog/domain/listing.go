package domain

import (
	"cmp"
	"slices"
)

// Filter narrows a listing to the given category and, when set, a size.
func Filter(products []*Product, category Category, size string) []*Product {
	result := make([]*Product, 0, len(products))
	for _, p := range products {
		if !p.InCategory(category) {
			continue
		}
		if size != "" && !p.HasSize(size) {
			continue
		}
		result = append(result, p)
	}
	return result
}

// Sort orders products in place. Newest keeps catalog order; ties keep catalog order.
func Sort(products []*Product, order SortOrder) {
	switch order {
	case SortPriceLow:
		slices.SortStableFunc(products, func(a, b *Product) int { return a.Price.Cmp(b.Price) })
	case SortPriceHigh:
		slices.SortStableFunc(products, func(a, b *Product) int { return b.Price.Cmp(a.Price) })
	case SortPopular:
		slices.SortStableFunc(products, func(a, b *Product) int { return cmp.Compare(b.Reviews, a.Reviews) })
	}
}
