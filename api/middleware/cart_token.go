package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/flowohq/storefront-gateway/pkg/logger"
)

// CartCookieName carries the shopper's cart token between visits.
const CartCookieName = "flowo_cart"

type cartTokenKey struct{}

// CartToken returns the cart token established for this request, or "".
func CartToken(ctx context.Context) string {
	token, _ := ctx.Value(cartTokenKey{}).(string)
	return token
}

// WithCartToken injects a token directly, for handler tests.
func WithCartToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, cartTokenKey{}, token)
}

// CartSession ensures every request carries a cart token. First-time
// visitors get a fresh uuid set as a cookie; returning shoppers keep theirs.
func CartSession(logg *logger.Logger, ttl time.Duration, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ""
			if cookie, err := r.Cookie(CartCookieName); err == nil {
				token = cookie.Value
			}
			if token == "" {
				token = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     CartCookieName,
					Value:    token,
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := WithCartToken(r.Context(), token)
			if logg != nil {
				ctx = logg.WithCartToken(ctx, token)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
