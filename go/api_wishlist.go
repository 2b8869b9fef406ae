package storefrontserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	cartmapper "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/http/mapper"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	wishlistmapper "github.com/Apurer/go-gin-storefront/internal/domains/wishlist/adapters/http/mapper"
	wishlistapp "github.com/Apurer/go-gin-storefront/internal/domains/wishlist/application"
)

// WishlistAPI exposes the shopper's saved products.
type WishlistAPI struct {
	catalog catalogports.Service
}

func NewWishlistAPI(catalog catalogports.Service) WishlistAPI {
	return WishlistAPI{catalog: catalog}
}

// MoveToCartResponse returns both stores after a move.
type MoveToCartResponse struct {
	Wishlist wishlistmapper.Wishlist `json:"wishlist"`
	Cart     cartmapper.Cart         `json:"cart"`
}

// ToggleResponse reports which way a toggle went.
type ToggleResponse struct {
	Added    bool                    `json:"added"`
	Wishlist wishlistmapper.Wishlist `json:"wishlist"`
}

// Get /v1/wishlist
func (api *WishlistAPI) GetWishlist(c *gin.Context) {
	w := sessionFrom(c).Wishlist.Wishlist(c.Request.Context())
	c.JSON(http.StatusOK, wishlistmapper.FromDomainWishlist(w))
}

// Post /v1/wishlist/items
// Saves a catalog product. Saving twice keeps one entry.
func (api *WishlistAPI) AddItem(c *gin.Context) {
	var payload wishlistmapper.AddItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	ctx := c.Request.Context()
	product, err := api.catalog.GetByID(ctx, payload.ProductID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	w, err := sessionFrom(c).Wishlist.AddItem(ctx, wishlistapp.ItemFromProduct(product))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, wishlistmapper.FromDomainWishlist(w))
}

// Get /v1/wishlist/items/:productId
func (api *WishlistAPI) GetMembership(c *gin.Context) {
	ctx := c.Request.Context()
	wishlist := sessionFrom(c).Wishlist
	productID := c.Param("productId")
	c.JSON(http.StatusOK, wishlistmapper.Membership{
		ProductID:    productID,
		InWishlist:   wishlist.IsInWishlist(ctx, productID),
		WishlistSize: wishlist.Count(ctx),
	})
}

// Delete /v1/wishlist/items/:productId
func (api *WishlistAPI) RemoveItem(c *gin.Context) {
	w, err := sessionFrom(c).Wishlist.RemoveItem(c.Request.Context(), c.Param("productId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, wishlistmapper.FromDomainWishlist(w))
}

// Post /v1/wishlist/items/:productId/toggle
// The heart button: saves when absent, removes when present. A product that
// has left the catalog can still be removed.
func (api *WishlistAPI) Toggle(c *gin.Context) {
	ctx := c.Request.Context()
	wishlist := sessionFrom(c).Wishlist
	productID := c.Param("productId")

	product, err := api.catalog.GetByID(ctx, productID)
	if err != nil {
		if !errors.Is(err, catalogports.ErrNotFound) || !wishlist.IsInWishlist(ctx, productID) {
			respondServiceError(c, err)
			return
		}
		w, err := wishlist.RemoveItem(ctx, productID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, ToggleResponse{Added: false, Wishlist: wishlistmapper.FromDomainWishlist(w)})
		return
	}
	w, added, err := wishlist.Toggle(ctx, wishlistapp.ItemFromProduct(product))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ToggleResponse{Added: added, Wishlist: wishlistmapper.FromDomainWishlist(w)})
}

// Post /v1/wishlist/items/:productId/move-to-cart
func (api *WishlistAPI) MoveToCart(c *gin.Context) {
	ctx := c.Request.Context()
	session := sessionFrom(c)
	w, err := session.Wishlist.MoveToCart(ctx, c.Param("productId"), session.Cart, api.catalog)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MoveToCartResponse{
		Wishlist: wishlistmapper.FromDomainWishlist(w),
		Cart:     cartmapper.FromDomainCart(session.Cart.Cart(ctx)),
	})
}
