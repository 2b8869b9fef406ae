package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
)

// ErrInvalidInput signals a listing query the catalog cannot interpret.
var ErrInvalidInput = errors.New("invalid catalog query")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidCategory) || errors.Is(err, domain.ErrInvalidSort) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
