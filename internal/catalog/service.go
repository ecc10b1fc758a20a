package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/flowohq/storefront-gateway/pkg/flowoapi"
	"github.com/flowohq/storefront-gateway/pkg/logger"

	pkgerrors "github.com/flowohq/storefront-gateway/pkg/errors"
)

// DefaultLimit is the shop grid's page size.
const DefaultLimit = 12

type apiClient interface {
	DoJSON(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error)
}

// Service reads the product catalog from the Flowo API. Search and facets
// are computed server-side; the gateway relays the query controls and
// normalizes the response shapes.
type Service interface {
	Search(ctx context.Context, query SearchQuery) (*SearchPage, error)
	Filters(ctx context.Context) (*Filters, error)
	BySlug(ctx context.Context, slug string) (*Product, error)
}

type service struct {
	api  apiClient
	logg *logger.Logger
}

func NewService(api apiClient, logg *logger.Logger) (Service, error) {
	if api == nil {
		return nil, fmt.Errorf("api client required")
	}
	return &service{api: api, logg: logg}, nil
}

func (s *service) Search(ctx context.Context, query SearchQuery) (*SearchPage, error) {
	params := url.Values{}
	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = DefaultLimit
	}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))
	if q := strings.TrimSpace(query.Search); q != "" {
		params.Set("search", q)
	}
	for _, ft := range query.FlowerTypes {
		params.Add("flowerTypes", ft)
	}
	for _, occ := range query.Occasions {
		params.Add("occasions", occ)
	}
	if query.PriceRange != "" {
		params.Set("priceRange", query.PriceRange)
	}

	raw, err := s.api.DoJSON(ctx, http.MethodGet, "/products/search", params, nil)
	if err != nil {
		return nil, flowoapi.ToError(err)
	}

	var result SearchPage
	if err := flowoapi.DecodeRecord(raw, &result); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "invalid JSON from /products/search")
	}
	if result.Products == nil {
		result.Products = []Product{}
	}
	if result.Page < 1 {
		result.Page = page
	}
	if result.TotalPages < 1 {
		result.TotalPages = 1
	}
	return &result, nil
}

func (s *service) Filters(ctx context.Context) (*Filters, error) {
	raw, err := s.api.DoJSON(ctx, http.MethodGet, "/products/filters", nil, nil)
	if err != nil {
		return nil, flowoapi.ToError(err)
	}

	var filters Filters
	if err := flowoapi.DecodeRecord(raw, &filters); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "invalid JSON from /products/filters")
	}
	// Missing facets come back as empty lists, never null.
	if filters.FlowerTypes == nil {
		filters.FlowerTypes = []FilterOption{}
	}
	if filters.Occasions == nil {
		filters.Occasions = []FilterOption{}
	}
	if filters.PriceRanges == nil {
		filters.PriceRanges = []FilterOption{}
	}
	return &filters, nil
}

func (s *service) BySlug(ctx context.Context, slug string) (*Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug is required")
	}

	raw, err := s.api.DoJSON(ctx, http.MethodGet, "/products", nil, nil)
	if err != nil {
		return nil, flowoapi.ToError(err)
	}

	var products []Product
	if err := flowoapi.DecodeList(raw, &products); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "invalid JSON from /products")
	}

	for i := range products {
		if products[i].Slug == slug {
			return &products[i], nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}
