package storefrontserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	sessionports "github.com/Apurer/go-gin-storefront/internal/domains/sessions/ports"
)

const (
	// ShopperHeader lets API clients choose their storage scope explicitly.
	ShopperHeader = "X-Shopper-ID"
	// ShopperCookie carries the scope for browsers.
	ShopperCookie = "shopper_id"

	shopperCookieMaxAge = int(365 * 24 * time.Hour / time.Second)
	sessionContextKey   = "storefront.session"
)

// ShopperSession resolves the shopper scope, issuing a new id cookie when the
// request has none, and attaches that shopper's session to the context.
func ShopperSession(registry sessionports.Registry, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		shopperID := strings.TrimSpace(c.GetHeader(ShopperHeader))
		if shopperID == "" {
			if cookie, err := c.Cookie(ShopperCookie); err == nil {
				shopperID = strings.TrimSpace(cookie)
			}
		}
		if shopperID == "" {
			shopperID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(ShopperCookie, shopperID, shopperCookieMaxAge, "/", "", secureCookies, true)
		}
		c.Header(ShopperHeader, shopperID)

		session, err := registry.Get(c.Request.Context(), shopperID)
		if err != nil {
			respondServiceError(c, err)
			c.Abort()
			return
		}
		c.Set(sessionContextKey, session)
		c.Next()
	}
}

func sessionFrom(c *gin.Context) *sessionports.Session {
	if v, ok := c.Get(sessionContextKey); ok {
		if s, ok := v.(*sessionports.Session); ok {
			return s
		}
	}
	return nil
}
