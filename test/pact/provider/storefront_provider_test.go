//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	pacttest "github.com/Apurer/go-gin-storefront/test/pact"

	storefrontserver "github.com/Apurer/go-gin-storefront/go"
	catalogmemory "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/observability"
	catalogapp "github.com/Apurer/go-gin-storefront/internal/domains/catalog/application"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	sessionsapp "github.com/Apurer/go-gin-storefront/internal/domains/sessions/application"
	wishlistapp "github.com/Apurer/go-gin-storefront/internal/domains/wishlist/application"
	blobmemory "github.com/Apurer/go-gin-storefront/internal/platform/blobstore/memory"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestStorefrontProviderPact(t *testing.T) {
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateCatalogSeeded: func(bool, models.ProviderState) (models.ProviderStateResponse, error) {
			return nil, nil
		},
		pacttest.StateEmptyCart: func(bool, models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetShopper(t)
			return nil, nil
		},
		pacttest.StateWishlistSaved: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetShopper(t)
			if setup {
				app.saveProduct(t, pacttest.SavedProductID)
			}
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	catalog  catalogports.Service
	registry *sessionsapp.Registry
	server   *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	catalog := catalogobs.New(catalogapp.NewService(catalogmemory.NewRepository()))
	registry := sessionsapp.NewRegistry(blobmemory.NewStore())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = registry.Close(ctx)
	})

	handlers := storefrontserver.ApiHandleFunctions{
		CatalogAPI:  storefrontserver.NewCatalogAPI(catalog),
		CartAPI:     storefrontserver.NewCartAPI(catalog),
		WishlistAPI: storefrontserver.NewWishlistAPI(catalog),
		EventsAPI:   storefrontserver.NewEventsAPI(registry, []string{"*"}, nil),
	}
	router := storefrontserver.NewRouter(handlers, storefrontserver.RouterOptions{Sessions: registry})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return &contractProviderApp{catalog: catalog, registry: registry, server: server}
}

func (a *contractProviderApp) resetShopper(t testing.TB) {
	t.Helper()
	ctx := context.Background()
	session, err := a.registry.Get(ctx, pacttest.ShopperID)
	require.NoError(t, err)
	_, err = session.Cart.Clear(ctx)
	require.NoError(t, err)
	_, err = session.Wishlist.Clear(ctx)
	require.NoError(t, err)
}

func (a *contractProviderApp) saveProduct(t testing.TB, productID string) {
	t.Helper()
	ctx := context.Background()
	product, err := a.catalog.GetByID(ctx, productID)
	require.NoError(t, err)
	session, err := a.registry.Get(ctx, pacttest.ShopperID)
	require.NoError(t, err)
	_, err = session.Wishlist.AddItem(ctx, wishlistapp.ItemFromProduct(product))
	require.NoError(t, err)
}
