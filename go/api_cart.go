package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cartmapper "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/http/mapper"
	cartapp "github.com/Apurer/go-gin-storefront/internal/domains/cart/application"
	cartdomain "github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

// CartAPI exposes the shopper's cart. Lines are built from the catalog so
// clients never supply prices.
type CartAPI struct {
	catalog catalogports.Service
}

func NewCartAPI(catalog catalogports.Service) CartAPI {
	return CartAPI{catalog: catalog}
}

// Get /v1/cart
func (api *CartAPI) GetCart(c *gin.Context) {
	session := sessionFrom(c)
	c.JSON(http.StatusOK, cartmapper.FromDomainCart(session.Cart.Cart(c.Request.Context())))
}

// Post /v1/cart/items
// Adds a product variant, merging into an existing line.
func (api *CartAPI) AddItem(c *gin.Context) {
	var payload cartmapper.AddItemRequest
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
	line, err := cartapp.LineItemFromProduct(product, payload.Size, payload.Color, payload.Qty())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	cart, err := sessionFrom(c).Cart.AddItem(ctx, line)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartmapper.FromDomainCart(cart))
}

// Patch /v1/cart/items
// Sets the quantity of a line exactly.
func (api *CartAPI) UpdateQuantity(c *gin.Context) {
	var payload cartmapper.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	cart, err := sessionFrom(c).Cart.UpdateQuantity(c.Request.Context(), payload.Key(), payload.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartmapper.FromDomainCart(cart))
}

// Post /v1/cart/items/adjust
// Moves a line's quantity by delta, never below one.
func (api *CartAPI) AdjustQuantity(c *gin.Context) {
	var payload cartmapper.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	cart, err := sessionFrom(c).Cart.AdjustQuantity(c.Request.Context(), payload.Key(), payload.Delta)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartmapper.FromDomainCart(cart))
}

// Delete /v1/cart/items?productId&size&color
func (api *CartAPI) RemoveItem(c *gin.Context) {
	key := cartdomain.Key{
		ProductID: c.Query("productId"),
		Size:      c.Query("size"),
		Color:     c.Query("color"),
	}
	if key.ProductID == "" {
		problems.ValidationFailed(c, map[string]string{"productId": "required"})
		return
	}
	cart, err := sessionFrom(c).Cart.RemoveItem(c.Request.Context(), key)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartmapper.FromDomainCart(cart))
}

// Delete /v1/cart
func (api *CartAPI) ClearCart(c *gin.Context) {
	cart, err := sessionFrom(c).Cart.Clear(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartmapper.FromDomainCart(cart))
}
