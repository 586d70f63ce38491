package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/upahaar/upahaar/app/catalog"
	"github.com/upahaar/upahaar/app/repositories"
	"github.com/upahaar/upahaar/pkg/cache"
	"github.com/upahaar/upahaar/pkg/ctx"
	"github.com/upahaar/upahaar/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo"
)

// Cache lifetimes for the two read-heavy endpoints. Both live under the
// catalog: prefix and are invalidated on import via cache.FlushPrefix.
const (
	listCacheTTL   = 2 * time.Minute
	searchCacheTTL = 30 * time.Second
)

// ProductController serves the catalogue listing and autocomplete endpoints.
type ProductController struct {
	executor     *catalog.Executor
	autocomplete *catalog.Autocomplete
	products     *repositories.ProductRepository
}

func NewProductController() *ProductController {
	repo := repositories.NewProductRepository()
	return NewProductControllerWith(repo, repo)
}

// NewProductControllerWith wires an explicit store, for tests.
func NewProductControllerWith(store catalog.Store, repo *repositories.ProductRepository) *ProductController {
	return &ProductController{
		executor:     catalog.NewExecutor(store),
		autocomplete: catalog.NewAutocomplete(store),
		products:     repo,
	}
}

// listResponse is the data envelope for GET /products.
type listResponse struct {
	Products       interface{}            `json:"products"`
	Pagination     catalog.Pagination     `json:"pagination"`
	AppliedFilters catalog.AppliedFilters `json:"appliedFilters"`
}

// List handles GET /products with search, filter, sort and pagination query
// parameters. "search" falls back to "query" so both `?search=` and `?query=`
// work.
func (pc *ProductController) List(c *ctx.Context) {
	search := c.Query("search")
	if search == "" {
		search = c.Query("query")
	}

	params := catalog.ListParams{
		Search:     search,
		Categories: c.QueryList("category"),
		Brands:     c.QueryList("brand"),
		Price:      c.Query("price"),
		SortBy:     c.Query("sortBy"),
		SortOrder:  c.Query("sortOrder"),
		Page:       c.QueryInt("page", 0),
		Limit:      c.QueryInt("limit", 0),
	}

	key := "catalog:list:" + c.R.URL.RawQuery
	var cached listResponse
	if cache.Get(c.Context(), key, &cached) {
		c.Success("Products fetched successfully", cached)
		return
	}

	pred, sortSpec, page := catalog.BuildFilter(params)
	result, err := pc.executor.List(c.Context(), pred, sortSpec, page)
	if err != nil {
		logger.WithCtx(c.Context()).Error("list products", "error", err)
		c.Error(http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	resp := listResponse{
		Products:       result.Products,
		Pagination:     result.Pagination,
		AppliedFilters: params.Applied(),
	}
	cache.Set(c.Context(), key, resp, listCacheTTL)
	c.Success("Products fetched successfully", resp)
}

// SearchAhead handles GET /products/search: live suggestions plus similar
// items for the typed prefix.
func (pc *ProductController) SearchAhead(c *ctx.Context) {
	query := c.Query("query")
	limit := c.QueryInt("limit", 0)

	key := "catalog:search:" + c.R.URL.RawQuery
	var cached catalog.SearchResult
	if cache.Get(c.Context(), key, &cached) {
		c.Success("Search results", cached)
		return
	}

	result, err := pc.autocomplete.Search(c.Context(), query, limit)
	if err != nil {
		logger.WithCtx(c.Context()).Error("search ahead", "error", err, "query", query)
		c.Error(http.StatusInternalServerError, "Search failed")
		return
	}
	cache.Set(c.Context(), key, result, searchCacheTTL)
	c.Success("Search results", result)
}

// Show handles GET /products/{slug}: one full product document.
func (pc *ProductController) Show(c *ctx.Context) {
	slug := c.Param("slug")

	product, err := pc.products.FindBySlug(c.Context(), slug)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.NotFound("Product not found")
			return
		}
		logger.WithCtx(c.Context()).Error("show product", "error", err, "slug", slug)
		c.Error(http.StatusInternalServerError, "Failed to fetch product")
		return
	}
	c.Success("Product fetched successfully", product)
}
