package application

import (
	"fmt"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	catalogdomain "github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
)

// LineItemFromProduct snapshots a catalog product into a cart line for the
// chosen variant.
func LineItemFromProduct(product *catalogdomain.Product, size, color string, quantity int) (domain.LineItem, error) {
	if product == nil {
		return domain.LineItem{}, mapError(domain.ErrMissingProduct)
	}
	if !product.HasSize(size) {
		return domain.LineItem{}, mapError(fmt.Errorf("%w: size %q", ErrUnknownVariant, size))
	}
	if !product.HasColor(color) {
		return domain.LineItem{}, mapError(fmt.Errorf("%w: color %q", ErrUnknownVariant, color))
	}
	return domain.LineItem{
		ProductID:     product.ID,
		Name:          product.Name,
		Image:         product.PrimaryImage(),
		Price:         product.Price,
		OriginalPrice: product.OriginalPrice,
		Size:          size,
		Color:         color,
		Quantity:      quantity,
	}, nil
}

// DefaultLineItem is one unit of the product's first size and color.
func DefaultLineItem(product *catalogdomain.Product) (domain.LineItem, error) {
	if product == nil {
		return domain.LineItem{}, mapError(domain.ErrMissingProduct)
	}
	size, color, ok := product.DefaultVariant()
	if !ok {
		return domain.LineItem{}, mapError(fmt.Errorf("%w: product %s has no sizes or colors", ErrUnknownVariant, product.ID))
	}
	return LineItemFromProduct(product, size, color, 1)
}
