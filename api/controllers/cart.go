package controllers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/flowohq/storefront-gateway/api/middleware"
	"github.com/flowohq/storefront-gateway/api/responses"
	"github.com/flowohq/storefront-gateway/api/validators"
	"github.com/flowohq/storefront-gateway/internal/cart"
	"github.com/flowohq/storefront-gateway/pkg/flowoapi"
	"github.com/flowohq/storefront-gateway/pkg/logger"

	pkgerrors "github.com/flowohq/storefront-gateway/pkg/errors"
)

type addItemRequest struct {
	ID          string   `json:"id" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Price       float64  `json:"price" validate:"gte=0"`
	Qty         int      `json:"qty"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

type cartResponse struct {
	Items   []cart.Item `json:"items"`
	Summary cart.Quote  `json:"summary"`
}

func newCartResponse(c *cart.Cart, promoCode string) cartResponse {
	return cartResponse{
		Items:   c.Items,
		Summary: cart.BuildQuote(c, promoCode),
	}
}

func cartToken(r *http.Request, logg *logger.Logger, w http.ResponseWriter) (string, bool) {
	token := middleware.CartToken(r.Context())
	if token == "" {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart session missing"))
		return "", false
	}
	return token, true
}

func CartGet(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := cartToken(r, logg, w)
		if !ok {
			return
		}

		current, err := svc.Get(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(current, ""))
	}
}

func CartAddItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := cartToken(r, logg, w)
		if !ok {
			return
		}

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		current, err := svc.Add(r.Context(), token, cart.Item{
			ID:          payload.ID,
			Name:        payload.Name,
			Price:       payload.Price,
			Qty:         payload.Qty,
			Image:       payload.Image,
			Description: payload.Description,
			Tags:        payload.Tags,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(current, ""))
	}
}

func CartIncrementItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return cartItemMutation(svc, logg, cart.Service.Increment)
}

func CartDecrementItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return cartItemMutation(svc, logg, cart.Service.Decrement)
}

func CartRemoveItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return cartItemMutation(svc, logg, cart.Service.Remove)
}

func cartItemMutation(svc cart.Service, logg *logger.Logger, op func(cart.Service, context.Context, string, string) (*cart.Cart, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := cartToken(r, logg, w)
		if !ok {
			return
		}

		itemID := chi.URLParam(r, "itemID")
		if itemID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item id is required"))
			return
		}

		current, err := op(svc, r.Context(), token, itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(current, ""))
	}
}

func CartClear(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := cartToken(r, logg, w)
		if !ok {
			return
		}

		if err := svc.Clear(r.Context(), token); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(cart.New(), ""))
	}
}

// UpstreamClient is the remote API surface the cart hydration handler needs.
type UpstreamClient interface {
	DoJSON(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error)
}

// CartHydrate merges the signed-in shopper's server-side cart into the
// session cart, so items added on another device show up here.
func CartHydrate(svc cart.Service, api UpstreamClient, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := cartToken(r, logg, w)
		if !ok {
			return
		}

		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "user_id is required"))
			return
		}

		raw, err := api.DoJSON(r.Context(), http.MethodGet, "/cart", url.Values{"user_id": []string{userID}}, nil)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, flowoapi.ToError(err))
			return
		}

		var remote []cart.RemoteItem
		if err := flowoapi.DecodeList(raw, &remote); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "invalid cart in response"))
			return
		}

		current, err := svc.Get(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		for _, line := range remote {
			item := cart.ItemFromRemote(line)
			if current.Find(item.ID) != nil {
				continue
			}
			current, err = svc.Add(r.Context(), token, item)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		responses.WriteSuccess(w, newCartResponse(current, ""))
	}
}

// CartQuote returns the order summary with an optional promo code applied.
// An unrecognized code is not an error; the discount simply stays zero.
func CartQuote(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := cartToken(r, logg, w)
		if !ok {
			return
		}

		quote, err := svc.Quote(r.Context(), token, r.URL.Query().Get("promo_code"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, quote)
	}
}
