package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
)

var (
	// ErrInvalidInput wraps cart mutations the domain refused.
	ErrInvalidInput = errors.New("invalid cart input")
	// ErrUnknownVariant is returned when a size or color is not offered for the product.
	ErrUnknownVariant = errors.New("variant is not offered for this product")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidQuantity) || errors.Is(err, domain.ErrMissingProduct) || errors.Is(err, ErrUnknownVariant) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
