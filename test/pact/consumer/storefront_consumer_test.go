//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/Apurer/go-gin-storefront/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type productPayload struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type cartPayload struct {
	TotalItems int     `json:"totalItems"`
	TotalPrice float64 `json:"totalPrice"`
}

type wishlistPayload struct {
	Count int `json:"count"`
}

type problemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

type apiError struct {
	status      int
	problemType string
	detail      string
}

func (e apiError) Error() string {
	return fmt.Sprintf("%s: %s (status %d)", e.problemType, e.detail, e.status)
}

func TestStorefrontWebContract(t *testing.T) {
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")
	cartBody := matchers.Map{
		"items": matchers.EachLike(matchers.Map{
			"id":        matchers.Like("2"),
			"name":      matchers.Like("Tailored Slim Fit Blazer"),
			"price":     matchers.Like(249),
			"size":      matchers.Like("M"),
			"color":     matchers.Like("Navy"),
			"quantity":  matchers.Like(2),
			"lineTotal": matchers.Like(498),
		}, 1),
		"totalItems": matchers.Like(2),
		"totalPrice": matchers.Like(498),
	}

	pact.AddInteraction().
		Given(pacttest.StateCatalogSeeded).
		UponReceiving("a request for an existing product").
		WithRequest("GET", "/v1/products/"+pacttest.ExistingProductID).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"id":    matchers.S(pacttest.ExistingProductID),
				"name":  matchers.Like("Oversized Wool Blend Coat"),
				"price": matchers.Like(299),
				"sizes": matchers.ArrayMinLike("M", 1),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateCatalogSeeded).
		UponReceiving("a request for a missing product").
		WithRequest("GET", "/v1/products/"+pacttest.MissingProductID).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateEmptyCart).
		UponReceiving("a request to add a product variant to the cart").
		WithRequest("POST", "/v1/cart/items", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.Header("X-Shopper-ID", matchers.S(pacttest.ShopperID))
			b.JSONBody(pacttest.ExampleAddToCart())
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(cartBody)
		})

	pact.AddInteraction().
		Given(pacttest.StateEmptyCart).
		UponReceiving("a request setting a cart line to zero").
		WithRequest("PATCH", "/v1/cart/items", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.Header("X-Shopper-ID", matchers.S(pacttest.ShopperID))
			b.JSONBody(map[string]any{"productId": "2", "size": "M", "color": "Navy", "quantity": 0})
		}).
		WillRespondWith(http.StatusBadRequest, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/invalid-quantity"),
				"status": matchers.Like(http.StatusBadRequest),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateWishlistSaved).
		UponReceiving("a request to move a saved product to the cart").
		WithRequest("POST", "/v1/wishlist/items/"+pacttest.SavedProductID+"/move-to-cart", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("X-Shopper-ID", matchers.S(pacttest.ShopperID))
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"wishlist": matchers.Map{"count": matchers.Like(0)},
				"cart":     matchers.Map{"totalItems": matchers.Like(1)},
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newStorefrontClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var product productPayload
		if err := client.do(ctx, http.MethodGet, "/v1/products/"+pacttest.ExistingProductID, nil, &product); err != nil {
			return fmt.Errorf("get product: %w", err)
		}
		if product.ID != pacttest.ExistingProductID {
			return fmt.Errorf("expected product %s, got %+v", pacttest.ExistingProductID, product)
		}

		err := client.do(ctx, http.MethodGet, "/v1/products/"+pacttest.MissingProductID, nil, nil)
		if apiErr, ok := err.(apiError); !ok || apiErr.status != http.StatusNotFound {
			return fmt.Errorf("expected 404 for product %s, got %v", pacttest.MissingProductID, err)
		}

		var cart cartPayload
		if err := client.do(ctx, http.MethodPost, "/v1/cart/items", pacttest.ExampleAddToCart(), &cart); err != nil {
			return fmt.Errorf("add to cart: %w", err)
		}
		if cart.TotalItems == 0 {
			return fmt.Errorf("expected cart to hold items")
		}

		err = client.do(ctx, http.MethodPatch, "/v1/cart/items",
			map[string]any{"productId": "2", "size": "M", "color": "Navy", "quantity": 0}, nil)
		if apiErr, ok := err.(apiError); !ok || apiErr.problemType != "/problems/invalid-quantity" {
			return fmt.Errorf("expected invalid-quantity problem, got %v", err)
		}

		var moved struct {
			Wishlist wishlistPayload `json:"wishlist"`
			Cart     cartPayload     `json:"cart"`
		}
		if err := client.do(ctx, http.MethodPost, "/v1/wishlist/items/"+pacttest.SavedProductID+"/move-to-cart", nil, &moved); err != nil {
			return fmt.Errorf("move to cart: %w", err)
		}
		if moved.Cart.TotalItems == 0 {
			return fmt.Errorf("expected moved product in cart")
		}
		return nil
	})
	require.NoError(t, err)
}

type storefrontClient struct {
	baseURL    string
	httpClient *http.Client
}

func newStorefrontClient(config pactconsumer.MockServerConfig) *storefrontClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	return &storefrontClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: &http.Client{Transport: transport, Timeout: 10 * time.Second},
	}
}

func (c *storefrontClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Shopper-ID", pacttest.ShopperID)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(res)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func decodeAPIError(res *http.Response) error {
	var problem problemDetail
	_ = json.NewDecoder(res.Body).Decode(&problem)
	status := problem.Status
	if status == 0 {
		status = res.StatusCode
	}
	return apiError{status: status, problemType: problem.Type, detail: problem.Detail}
}
