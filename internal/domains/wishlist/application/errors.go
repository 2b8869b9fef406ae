package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-storefront/internal/domains/wishlist/domain"
)

var (
	ErrInvalidInput = errors.New("invalid wishlist input")
	// ErrNotInWishlist is returned when moving a product that was never saved.
	ErrNotInWishlist = errors.New("product is not in the wishlist")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrMissingProduct) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
