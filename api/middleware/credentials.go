package middleware

import (
	"net/http"

	"github.com/flowohq/storefront-gateway/pkg/flowoapi"
)

// UpstreamCredentials forwards the caller's Cookie header on any remote API
// call made while serving this request, so the shopper's upstream session
// rides along the relay.
func UpstreamCredentials() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := flowoapi.WithCredentials(r.Context(), r.Header.Get("Cookie"))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
