package checkout

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/flowohq/storefront-gateway/internal/cart"
	"github.com/flowohq/storefront-gateway/pkg/flowoapi"
	"github.com/flowohq/storefront-gateway/pkg/logger"

	pkgerrors "github.com/flowohq/storefront-gateway/pkg/errors"
)

type apiClient interface {
	DoJSON(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error)
}

// PlaceRequest is everything checkout needs to submit an order: the shopper's
// cart token, their identity for the upstream call, the contact form and the
// chosen methods.
type PlaceRequest struct {
	UserID            string
	Form              ContactForm
	ShippingMethod    string
	PaymentMethod     string
	BillingAddressID  *int
	ShippingAddressID *int
}

// Service submits orders to the Flowo API. A successful placement clears the
// session cart; on any failure the cart stays intact so the shopper can
// retry.
type Service interface {
	Place(ctx context.Context, token string, req PlaceRequest) (*OrderResult, error)
}

type service struct {
	api   apiClient
	carts cart.Service
	logg  *logger.Logger
}

func NewService(api apiClient, carts cart.Service, logg *logger.Logger) (Service, error) {
	if api == nil {
		return nil, fmt.Errorf("api client required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart service required")
	}
	return &service{api: api, carts: carts, logg: logg}, nil
}

// ValidateForm checks the required contact fields. Whitespace-only input
// counts as empty.
func ValidateForm(form ContactForm) error {
	missing := missingFields(form)
	if len(missing) == 0 {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "Please fill all required fields").
		WithDetails(map[string]any{"missing": missing})
}

func missingFields(form ContactForm) []string {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"name", form.Name},
		{"phone", form.Phone},
		{"address", form.Address},
		{"city", form.City},
		{"postal", form.Postal},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

func validMethods(req PlaceRequest) error {
	switch req.ShippingMethod {
	case ShippingStandard, ShippingExpress:
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, "Invalid shipping method")
	}
	if req.PaymentMethod == "" {
		return nil
	}
	switch req.PaymentMethod {
	case PaymentCOD, PaymentPayPal, PaymentVNPay, PaymentMoMo:
		return nil
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, "Invalid payment method")
	}
}

func (s *service) Place(ctx context.Context, token string, req PlaceRequest) (*OrderResult, error) {
	if err := ValidateForm(req.Form); err != nil {
		return nil, err
	}
	if err := validMethods(req); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.UserID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	current, err := s.carts.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if current.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Your cart is empty")
	}

	body := OrderRequest{
		BillingAddressID:  req.BillingAddressID,
		ShippingAddressID: req.ShippingAddressID,
		ShippingMethod:    req.ShippingMethod,
		Notes:             strings.TrimSpace(req.Form.Note),
	}

	query := url.Values{"user_id": []string{req.UserID}}
	raw, err := s.api.DoJSON(ctx, http.MethodPost, "/orders", query, body)
	if err != nil {
		return nil, flowoapi.ToError(err)
	}

	var placed struct {
		OrderID   int    `json:"order_id"`
		OrderCode string `json:"order_code"`
	}
	if err := flowoapi.DecodeRecord(raw, &placed); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "invalid order in response")
	}

	result := &OrderResult{
		OrderID:   placed.OrderID,
		OrderCode: placed.OrderCode,
		Reference: placed.OrderCode,
	}
	if result.Reference == "" {
		result.Reference = strconv.Itoa(placed.OrderID)
	}

	// The order exists upstream now; a failed cart clear must not fail the
	// checkout. The stale cart gets overwritten on the next session anyway.
	if err := s.carts.Clear(ctx, token); err != nil && s.logg != nil {
		s.logg.Warn(ctx, fmt.Sprintf("cart clear after order %d failed: %v", placed.OrderID, err))
	}

	return result, nil
}
