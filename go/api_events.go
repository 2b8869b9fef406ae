package storefrontserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	cartmapper "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/http/mapper"
	cartdomain "github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	wishlistmapper "github.com/Apurer/go-gin-storefront/internal/domains/wishlist/adapters/http/mapper"
	sessionports "github.com/Apurer/go-gin-storefront/internal/domains/sessions/ports"
	wishlistdomain "github.com/Apurer/go-gin-storefront/internal/domains/wishlist/domain"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Event is one pushed store snapshot.
type Event struct {
	Store    string                   `json:"store"`
	Version  uint64                   `json:"version"`
	Cart     *cartmapper.Cart         `json:"cart,omitempty"`
	Wishlist *wishlistmapper.Wishlist `json:"wishlist,omitempty"`
}

// EventsAPI streams cart and wishlist snapshots over a websocket.
type EventsAPI struct {
	sessions sessionports.Registry
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewEventsAPI allows websocket upgrades from allowedOrigins; "*" allows any.
// Streams hold their session in sessions so idle purging leaves it alone.
func NewEventsAPI(sessions sessionports.Registry, allowedOrigins []string, logger *slog.Logger) EventsAPI {
	if logger == nil {
		logger = slog.Default()
	}
	return EventsAPI{
		sessions: sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger,
	}
}

// Get /v1/events
// Sends the current cart and wishlist, then every later transition. Bursts are
// coalesced so a slow client only sees the newest snapshot of each store.
func (api *EventsAPI) Stream(c *gin.Context) {
	session, release, err := api.sessions.Acquire(c.Request.Context(), sessionFrom(c).ShopperID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	defer release()

	conn, err := api.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		api.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	carts := make(chan Event, 1)
	wishlists := make(chan Event, 1)
	unsubscribeCart := session.Cart.Subscribe(func(cart cartdomain.Cart, version uint64) {
		mapped := cartmapper.FromDomainCart(cart)
		offerLatest(carts, Event{Store: "cart", Version: version, Cart: &mapped})
	})
	defer unsubscribeCart()
	unsubscribeWishlist := session.Wishlist.Subscribe(func(w wishlistdomain.Wishlist, version uint64) {
		mapped := wishlistmapper.FromDomainWishlist(w)
		offerLatest(wishlists, Event{Store: "wishlist", Version: version, Wishlist: &mapped})
	})
	defer unsubscribeWishlist()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()
	go readUntilClosed(conn, cancel)

	cart := cartmapper.FromDomainCart(session.Cart.Cart(ctx))
	wishlist := wishlistmapper.FromDomainWishlist(session.Wishlist.Wishlist(ctx))
	for _, initial := range []Event{{Store: "cart", Cart: &cart}, {Store: "wishlist", Wishlist: &wishlist}} {
		if err := writeEvent(conn, initial); err != nil {
			return
		}
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		var event Event
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
			continue
		case event = <-carts:
		case event = <-wishlists:
		}
		if err := writeEvent(conn, event); err != nil {
			api.logger.Debug("websocket write failed", slog.String("error", err.Error()))
			return
		}
	}
}

// offerLatest replaces any undelivered event with ev. Listeners run inside the
// store's transition, so this must never block.
func offerLatest(ch chan Event, ev Event) {
	for {
		select {
		case ch <- ev:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

func writeEvent(conn *websocket.Conn, ev Event) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(ev)
}

// readUntilClosed drains client frames so pongs and close frames are processed.
func readUntilClosed(conn *websocket.Conn, done context.CancelFunc) {
	defer done()
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}
