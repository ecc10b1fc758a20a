package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCartSessionIssuesCookie(t *testing.T) {
	t.Parallel()

	var seen string
	handler := CartSession(nil, time.Hour, false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CartToken(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" {
		t.Fatal("expected token in context")
	}

	var issued *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == CartCookieName {
			issued = cookie
		}
	}
	if issued == nil {
		t.Fatal("expected cart cookie")
	}
	if issued.Value != seen {
		t.Fatalf("cookie %q does not match context token %q", issued.Value, seen)
	}
	if !issued.HttpOnly {
		t.Fatal("cart cookie must be http-only")
	}
}

func TestCartSessionReusesExistingToken(t *testing.T) {
	t.Parallel()

	var seen string
	handler := CartSession(nil, time.Hour, false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CartToken(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CartCookieName, Value: "existing-token"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen != "existing-token" {
		t.Fatalf("unexpected token %q", seen)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("no new cookie expected for returning shopper")
	}
}

func TestRequestIDEchoedAndGenerated(t *testing.T) {
	t.Parallel()

	handler := RequestID(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if got := rec.Header().Get(requestIDHeader); got != "req-123" {
		t.Fatalf("expected echoed request id, got %q", got)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Header().Get(requestIDHeader) == "" {
		t.Fatal("expected generated request id")
	}
}
