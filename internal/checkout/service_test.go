package checkout

import (
	"context"
	"net/url"
	"testing"

	"github.com/flowohq/storefront-gateway/internal/cart"

	pkgerrors "github.com/flowohq/storefront-gateway/pkg/errors"
)

type stubAPI struct {
	method string
	path   string
	query  url.Values
	body   any
	raw    []byte
	err    error
	calls  int
}

func (s *stubAPI) DoJSON(_ context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	s.calls++
	s.method = method
	s.path = path
	s.query = query
	s.body = body
	if s.err != nil {
		return nil, s.err
	}
	return s.raw, nil
}

func validRequest() PlaceRequest {
	return PlaceRequest{
		UserID:         "42",
		ShippingMethod: ShippingStandard,
		PaymentMethod:  PaymentCOD,
		Form: ContactForm{
			Name:    "Sarah Johnson",
			Phone:   "555-0101",
			Address: "12 Tulip Lane",
			City:    "Portland",
			Postal:  "97201",
		},
	}
}

func seededCarts(t *testing.T) cart.Service {
	t.Helper()
	carts, err := cart.NewService(cart.NewMemoryStore(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := carts.Add(context.Background(), "tok", cart.Item{ID: "r1", Name: "Roses", Price: 30, Qty: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return carts
}

func TestValidateFormReportsMissingFields(t *testing.T) {
	t.Parallel()

	err := ValidateForm(ContactForm{Name: "Sarah", City: "  "})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error: %v", err)
	}

	full := ContactForm{Name: "a", Phone: "b", Address: "c", City: "d", Postal: "e"}
	if err := ValidateForm(full); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPlaceSubmitsOrderAndClearsCart(t *testing.T) {
	t.Parallel()

	api := &stubAPI{raw: []byte(`{"data":{"order_id":7,"order_code":"ORD-2026-007"}}`)}
	carts := seededCarts(t)
	svc, err := NewService(api, carts, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := svc.Place(context.Background(), "tok", validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Reference != "ORD-2026-007" || result.OrderID != 7 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if api.method != "POST" || api.path != "/orders" {
		t.Fatalf("unexpected call: %s %s", api.method, api.path)
	}
	if got := api.query.Get("user_id"); got != "42" {
		t.Fatalf("unexpected user_id %q", got)
	}
	req, ok := api.body.(OrderRequest)
	if !ok {
		t.Fatalf("unexpected body type %T", api.body)
	}
	if req.ShippingMethod != ShippingStandard {
		t.Fatalf("unexpected shipping method %q", req.ShippingMethod)
	}

	after, err := carts.Get(context.Background(), "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !after.IsEmpty() {
		t.Fatalf("expected cart cleared after order, got %+v", after.Items)
	}
}

func TestPlaceFallsBackToNumericReference(t *testing.T) {
	t.Parallel()

	api := &stubAPI{raw: []byte(`{"order_id":1203}`)}
	svc, err := NewService(api, seededCarts(t), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := svc.Place(context.Background(), "tok", validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Reference != "1203" {
		t.Fatalf("expected numeric reference, got %q", result.Reference)
	}
}

func TestPlaceRejectsEmptyCartBeforeNetwork(t *testing.T) {
	t.Parallel()

	api := &stubAPI{}
	carts, err := cart.NewService(cart.NewMemoryStore(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	svc, err := NewService(api, carts, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.Place(context.Background(), "tok", validRequest())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.calls != 0 {
		t.Fatalf("expected no upstream call, got %d", api.calls)
	}
}

func TestPlaceValidatesBeforeNetwork(t *testing.T) {
	t.Parallel()

	api := &stubAPI{}
	svc, err := NewService(api, seededCarts(t), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := validRequest()
	req.Form.Phone = ""
	if _, err := svc.Place(context.Background(), "tok", req); err == nil {
		t.Fatal("expected validation error")
	}

	req = validRequest()
	req.ShippingMethod = "overnight"
	if _, err := svc.Place(context.Background(), "tok", req); err == nil {
		t.Fatal("expected shipping method error")
	}

	req = validRequest()
	req.PaymentMethod = "bitcoin"
	if _, err := svc.Place(context.Background(), "tok", req); err == nil {
		t.Fatal("expected payment method error")
	}

	if api.calls != 0 {
		t.Fatalf("expected no upstream calls, got %d", api.calls)
	}
}

func TestPlaceKeepsCartOnUpstreamFailure(t *testing.T) {
	t.Parallel()

	api := &stubAPI{err: context.DeadlineExceeded}
	carts := seededCarts(t)
	svc, err := NewService(api, carts, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Place(context.Background(), "tok", validRequest()); err == nil {
		t.Fatal("expected upstream error")
	}

	after, err := carts.Get(context.Background(), "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if after.IsEmpty() {
		t.Fatal("cart should survive a failed order")
	}
}
