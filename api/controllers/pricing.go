package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/flowohq/storefront-gateway/api/responses"
	"github.com/flowohq/storefront-gateway/api/validators"
	"github.com/flowohq/storefront-gateway/internal/pricing"
	"github.com/flowohq/storefront-gateway/pkg/logger"

	pkgerrors "github.com/flowohq/storefront-gateway/pkg/errors"
)

// PricingRuleList serves the admin rules table. Search, status filter, sort
// and page come in as query parameters.
func PricingRuleList(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		page, err := validators.QueryInt(r, "page", 1)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := pricing.ListQuery{
			Search: strings.TrimSpace(r.URL.Query().Get("search")),
			Status: r.URL.Query().Get("status"),
			Sort:   r.URL.Query().Get("sort"),
			Page:   page,
		}

		result, err := svc.List(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func PricingRuleCreate(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		var form pricing.RuleForm
		if err := validators.DecodeJSONBody(r, &form); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rule, err := svc.Create(r.Context(), form)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, rule)
	}
}

func PricingRuleUpdate(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		id, err := validators.PathInt("rule id", chi.URLParam(r, "ruleID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var form pricing.RuleForm
		if err := validators.DecodeJSONBody(r, &form); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rule, err := svc.Update(r.Context(), id, form)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rule)
	}
}

func PricingRuleDelete(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		id, err := validators.PathInt("rule id", chi.URLParam(r, "ruleID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
