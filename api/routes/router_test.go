package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/flowohq/storefront-gateway/internal/cart"
	"github.com/flowohq/storefront-gateway/internal/catalog"
	"github.com/flowohq/storefront-gateway/internal/checkout"
	"github.com/flowohq/storefront-gateway/internal/pricing"
	"github.com/flowohq/storefront-gateway/pkg/config"
	"github.com/flowohq/storefront-gateway/pkg/flowoapi"
)

func testConfig() *config.Config {
	return &config.Config{
		App:  config.AppConfig{Env: "development", Port: "8080"},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
	}
}

// upstreamStub fakes the Flowo API for end-to-end routing tests.
func upstreamStub(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/pricing/rules", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"rule_id":1,"rule_name":"Spring Sale","priority":1,"adjustment_type":"percentage_discount","adjustment_value":10,"time_of_day_start":"00:00:00","time_of_day_end":"23:59:59","is_active":true}]}`))
	})
	mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("user_id") == "" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message":"user_id is required"}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data":{"order_id":55,"order_code":"ORD-2026-055"}}`))
	})
	mux.HandleFunc("/cart", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"product_id":"9","name":"Lilies","price":18,"effective_price":15,"quantity":2}]}`))
	})
	mux.HandleFunc("/products/search", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"products":[{"id":"1","slug":"red-roses","name":"Red Roses","price":25}],"total":1,"page":1,"totalPages":1}}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	upstream := upstreamStub(t)
	api := flowoapi.NewWithHTTPClient(upstream.URL, upstream.Client())

	cartService, err := cart.NewService(cart.NewMemoryStore(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pricingService, err := pricing.NewService(api, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkoutService, err := checkout.NewService(api, cartService, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	catalogService, err := catalog.NewService(api, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return NewRouter(testConfig(), nil, nil, nil, nil, api, pricingService, cartService, checkoutService, catalogService)
}

func TestHealthLive(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if got := rec.Header().Get("X-Flowo-Env"); got != "development" {
		t.Fatalf("unexpected env header %q", got)
	}
}

func TestCartSessionCookieIssuedOnce(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cart/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}

	var token string
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "flowo_cart" {
			token = cookie.Value
		}
	}
	if token == "" {
		t.Fatal("expected cart cookie on first visit")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart/", nil)
	req.AddCookie(&http.Cookie{Name: "flowo_cart", Value: token})
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "flowo_cart" {
			t.Fatal("cookie should not be reissued for returning shopper")
		}
	}
}

func TestCartAddAndQuoteFlow(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	cookie := &http.Cookie{Name: "flowo_cart", Value: "test-token"}

	body := strings.NewReader(`{"id":"r1","name":"Red Roses","price":30,"qty":2}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", body)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("add failed: %d %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/cart/quote?promo_code=FLOWER10", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("quote failed: %d %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data struct {
			Subtotal float64 `json:"subtotal"`
			Discount float64 `json:"discount"`
			Shipping float64 `json:"shipping"`
			Total    float64 `json:"total"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if envelope.Data.Subtotal != 60 || envelope.Data.Discount != 6 || envelope.Data.Shipping != 0 || envelope.Data.Total != 54 {
		t.Fatalf("unexpected quote: %+v", envelope.Data)
	}
}

func TestCheckoutFlowClearsCart(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	cookie := &http.Cookie{Name: "flowo_cart", Value: "checkout-token"}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"id":"r1","name":"Roses","price":30,"qty":1}`))
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("add failed: %d %s", rec.Code, rec.Body.String())
	}

	order := `{"user_id":"42","name":"Sarah","phone":"555","address":"12 Tulip Ln","city":"Portland","postal":"97201","shipping_method":"standard","payment_method":"cod"}`
	req = httptest.NewRequest(http.MethodPost, "/api/v1/checkout/orders", strings.NewReader(order))
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("checkout failed: %d %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data struct {
			Reference string `json:"reference"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if envelope.Data.Reference != "ORD-2026-055" {
		t.Fatalf("unexpected reference %q", envelope.Data.Reference)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/cart/", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	var after struct {
		Data struct {
			Items []json.RawMessage `json:"items"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &after); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(after.Data.Items) != 0 {
		t.Fatalf("expected empty cart after checkout, got %s", rec.Body.String())
	}
}

func TestCartHydrateMergesRemoteItems(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	cookie := &http.Cookie{Name: "flowo_cart", Value: "hydrate-token"}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/hydrate?user_id=42", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("hydrate failed: %d %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data struct {
			Items []struct {
				ID    string  `json:"id"`
				Price float64 `json:"price"`
				Qty   int     `json:"qty"`
			} `json:"items"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(envelope.Data.Items) != 1 {
		t.Fatalf("expected hydrated item, got %s", rec.Body.String())
	}
	if envelope.Data.Items[0].Price != 15 || envelope.Data.Items[0].Qty != 2 {
		t.Fatalf("expected effective price and quantity, got %+v", envelope.Data.Items[0])
	}
}

func TestCheckoutValidationError(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/orders", strings.NewReader(`{"user_id":"42"}`))
	req.AddCookie(&http.Cookie{Name: "flowo_cart", Value: "tok"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
}

func TestPricingRulesAdminList(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/v1/pricing-rules/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Data struct {
			Rules []struct {
				Name string `json:"name"`
				Type string `json:"type"`
			} `json:"rules"`
			Total int `json:"total"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if envelope.Data.Total != 1 || envelope.Data.Rules[0].Type != "Percentage Discount" {
		t.Fatalf("unexpected page: %s", rec.Body.String())
	}
}

func TestCallerCookiesForwardedUpstream(t *testing.T) {
	t.Parallel()

	var seenCookie string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenCookie = r.Header.Get("Cookie")
		w.Write([]byte(`{"data":[]}`))
	}))
	t.Cleanup(upstream.Close)

	api := flowoapi.NewWithHTTPClient(upstream.URL, upstream.Client())
	cartService, err := cart.NewService(cart.NewMemoryStore(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pricingService, err := pricing.NewService(api, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkoutService, err := checkout.NewService(api, cartService, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	catalogService, err := catalog.NewService(api, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	router := NewRouter(testConfig(), nil, nil, nil, nil, api, pricingService, cartService, checkoutService, catalogService)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/pricing-rules/", nil)
	req.Header.Set("Cookie", "session=abc123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	if seenCookie != "session=abc123" {
		t.Fatalf("expected caller cookie upstream, got %q", seenCookie)
	}
}

func TestShopProductsProxied(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/shop/products?search=roses", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "red-roses") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}
