// Package storefrontserver is the gin transport for the storefront API.
package storefrontserver

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	sessionports "github.com/Apurer/go-gin-storefront/internal/domains/sessions/ports"
)

// ApiHandleFunctions bundles every API the router mounts.
type ApiHandleFunctions struct {
	CatalogAPI  CatalogAPI
	CartAPI     CartAPI
	WishlistAPI WishlistAPI
	EventsAPI   EventsAPI
}

// RouterOptions configures cross-cutting middleware.
type RouterOptions struct {
	Sessions       sessionports.Registry
	AllowedOrigins []string
	SecureCookies  bool
	Middleware     []gin.HandlerFunc
}

// NewRouter builds the /v1 routes.
func NewRouter(handlers ApiHandleFunctions, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(opts.Middleware...)
	router.Use(cors.New(corsConfig(opts.AllowedOrigins)))

	router.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	v1 := router.Group("/v1")
	v1.GET("/products", handlers.CatalogAPI.ListProducts)
	v1.GET("/products/:productId", handlers.CatalogAPI.GetProduct)
	v1.GET("/featured", handlers.CatalogAPI.Featured)

	shopper := v1.Group("", ShopperSession(opts.Sessions, opts.SecureCookies))
	shopper.GET("/cart", handlers.CartAPI.GetCart)
	shopper.DELETE("/cart", handlers.CartAPI.ClearCart)
	shopper.POST("/cart/items", handlers.CartAPI.AddItem)
	shopper.PATCH("/cart/items", handlers.CartAPI.UpdateQuantity)
	shopper.DELETE("/cart/items", handlers.CartAPI.RemoveItem)
	shopper.POST("/cart/items/adjust", handlers.CartAPI.AdjustQuantity)

	shopper.GET("/wishlist", handlers.WishlistAPI.GetWishlist)
	shopper.POST("/wishlist/items", handlers.WishlistAPI.AddItem)
	shopper.GET("/wishlist/items/:productId", handlers.WishlistAPI.GetMembership)
	shopper.DELETE("/wishlist/items/:productId", handlers.WishlistAPI.RemoveItem)
	shopper.POST("/wishlist/items/:productId/toggle", handlers.WishlistAPI.Toggle)
	shopper.POST("/wishlist/items/:productId/move-to-cart", handlers.WishlistAPI.MoveToCart)

	shopper.GET("/events", handlers.EventsAPI.Stream)
	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", ShopperHeader},
		ExposeHeaders:    []string{ShopperHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowCredentials = false
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
