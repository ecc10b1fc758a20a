package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/flowohq/storefront-gateway/api/responses"
	"github.com/flowohq/storefront-gateway/api/validators"
	"github.com/flowohq/storefront-gateway/internal/catalog"
	"github.com/flowohq/storefront-gateway/pkg/logger"

	pkgerrors "github.com/flowohq/storefront-gateway/pkg/errors"
)

func CatalogSearch(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		page, err := validators.QueryInt(r, "page", 1)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.QueryInt(r, "limit", catalog.DefaultLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		q := r.URL.Query()
		result, err := svc.Search(r.Context(), catalog.SearchQuery{
			Search:      strings.TrimSpace(q.Get("search")),
			FlowerTypes: q["flowerTypes"],
			Occasions:   q["occasions"],
			PriceRange:  q.Get("priceRange"),
			Page:        page,
			Limit:       limit,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func CatalogFilters(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		filters, err := svc.Filters(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, filters)
	}
}

func CatalogBySlug(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		product, err := svc.BySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}
