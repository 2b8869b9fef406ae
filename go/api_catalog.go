package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	catalogmapper "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

// CatalogAPI serves read-only product listings.
type CatalogAPI struct {
	service catalogports.Service
}

func NewCatalogAPI(service catalogports.Service) CatalogAPI {
	return CatalogAPI{service: service}
}

// ListProductsParams are the shop page filters.
type ListProductsParams struct {
	Category *string `form:"category" json:"category,omitempty"`
	Size     *string `form:"size" json:"size,omitempty"`
	Sort     *string `form:"sort" json:"sort,omitempty"`
}

// FeaturedParams select a showcase row.
type FeaturedParams struct {
	Category *string `form:"category" json:"category,omitempty"`
	Limit    *int    `form:"limit" json:"limit,omitempty"`
}

// Get /v1/products
// Lists products filtered by category and size, sorted as requested.
func (api *CatalogAPI) ListProducts(c *gin.Context) {
	var params ListProductsParams
	query := c.Request.URL.Query()
	for name, dest := range map[string]any{"category": &params.Category, "size": &params.Size, "sort": &params.Sort} {
		if err := runtime.BindQueryParameter("form", true, false, name, query, dest); err != nil {
			respondBadRequest(c, err)
			return
		}
	}
	products, err := api.service.Browse(c.Request.Context(), catalogports.BrowseQuery{
		Category: deref(params.Category),
		Size:     deref(params.Size),
		Sort:     deref(params.Sort),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainProducts(products))
}

// Get /v1/products/:productId
func (api *CatalogAPI) GetProduct(c *gin.Context) {
	product, err := api.service.GetByID(c.Request.Context(), c.Param("productId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainProduct(product))
}

// Get /v1/featured
// Returns the first products of a category for the home page rows.
func (api *CatalogAPI) Featured(c *gin.Context) {
	var params FeaturedParams
	query := c.Request.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "category", query, &params.Category); err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", query, &params.Limit); err != nil {
		respondBadRequest(c, err)
		return
	}
	limit := 0
	if params.Limit != nil {
		limit = *params.Limit
	}
	products, err := api.service.Featured(c.Request.Context(), catalogports.FeaturedQuery{
		Category: deref(params.Category),
		Limit:    limit,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainProducts(products))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
