package storefrontserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	cartapp "github.com/Apurer/go-gin-storefront/internal/domains/cart/application"
	cartdomain "github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	catalogapp "github.com/Apurer/go-gin-storefront/internal/domains/catalog/application"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	sessionports "github.com/Apurer/go-gin-storefront/internal/domains/sessions/ports"
	wishlistapp "github.com/Apurer/go-gin-storefront/internal/domains/wishlist/application"
	apierrors "github.com/Apurer/go-gin-storefront/internal/shared/errors"
)

// problems maps domain and application errors onto RFC 7807 responses.
var problems = apierrors.NewResponder(apierrors.WithMappers(
	func(err error) (apierrors.ProblemDetail, bool) {
		switch {
		case errors.Is(err, cartdomain.ErrInvalidQuantity):
			return apierrors.ErrInvalidQuantity.WithDetail(err.Error()), true
		case errors.Is(err, cartapp.ErrUnknownVariant):
			return apierrors.ErrInvalidVariant.WithDetail(err.Error()), true
		case errors.Is(err, sessionports.ErrInvalidShopper):
			return apierrors.ErrInvalidShopper.WithDetail(err.Error()), true
		case errors.Is(err, sessionports.ErrClosed), errors.Is(err, sessionports.ErrUnavailable):
			return apierrors.ErrUnavailable.WithDetail(err.Error()), true
		}
		return apierrors.ProblemDetail{}, false
	},
	func(err error) (apierrors.ProblemDetail, bool) {
		switch {
		case errors.Is(err, catalogports.ErrNotFound):
			return apierrors.ErrNotFound.WithDetail(err.Error()).WithExtension("resourceType", "product"), true
		case errors.Is(err, wishlistapp.ErrNotInWishlist):
			return apierrors.ErrNotFound.WithDetail(err.Error()).WithExtension("resourceType", "wishlistItem"), true
		case errors.Is(err, catalogapp.ErrInvalidInput),
			errors.Is(err, cartapp.ErrInvalidInput),
			errors.Is(err, wishlistapp.ErrInvalidInput):
			return apierrors.ErrValidation.WithDetail(err.Error()), true
		}
		return apierrors.ProblemDetail{}, false
	},
))

func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	problems.RespondError(c, err)
}

func respondBadRequest(c *gin.Context, err error) {
	problems.BadRequest(c, err.Error())
}
