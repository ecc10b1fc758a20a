package controllers

import (
	"net/http"

	"github.com/flowohq/storefront-gateway/api/middleware"
	"github.com/flowohq/storefront-gateway/api/responses"
	"github.com/flowohq/storefront-gateway/api/validators"
	"github.com/flowohq/storefront-gateway/internal/checkout"
	"github.com/flowohq/storefront-gateway/pkg/logger"

	pkgerrors "github.com/flowohq/storefront-gateway/pkg/errors"
)

type placeOrderRequest struct {
	UserID            string `json:"user_id" validate:"required"`
	Name              string `json:"name" validate:"required"`
	Phone             string `json:"phone" validate:"required"`
	Address           string `json:"address" validate:"required"`
	City              string `json:"city" validate:"required"`
	Postal            string `json:"postal" validate:"required"`
	Note              string `json:"note"`
	ShippingMethod    string `json:"shipping_method" validate:"required,oneof=standard express"`
	PaymentMethod     string `json:"payment_method" validate:"omitempty,oneof=cod paypal vnpay momo"`
	BillingAddressID  *int   `json:"billing_address_id"`
	ShippingAddressID *int   `json:"shipping_address_id"`
}

// CheckoutPlaceOrder submits the order upstream and, on success, returns the
// confirmation reference. The session cart survives any failure.
func CheckoutPlaceOrder(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		token := middleware.CartToken(r.Context())
		if token == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart session missing"))
			return
		}

		var payload placeOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Place(r.Context(), token, checkout.PlaceRequest{
			UserID:            payload.UserID,
			ShippingMethod:    payload.ShippingMethod,
			PaymentMethod:     payload.PaymentMethod,
			BillingAddressID:  payload.BillingAddressID,
			ShippingAddressID: payload.ShippingAddressID,
			Form: checkout.ContactForm{
				Name:    payload.Name,
				Phone:   payload.Phone,
				Address: payload.Address,
				City:    payload.City,
				Postal:  payload.Postal,
				Note:    payload.Note,
			},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
