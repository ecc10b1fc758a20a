package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/flowohq/storefront-gateway/api/controllers"
	"github.com/flowohq/storefront-gateway/api/middleware"
	"github.com/flowohq/storefront-gateway/internal/cart"
	"github.com/flowohq/storefront-gateway/internal/catalog"
	"github.com/flowohq/storefront-gateway/internal/checkout"
	"github.com/flowohq/storefront-gateway/internal/pricing"
	"github.com/flowohq/storefront-gateway/pkg/config"
	"github.com/flowohq/storefront-gateway/pkg/logger"
	"github.com/flowohq/storefront-gateway/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	requestMetrics *metrics.RequestMetrics,
	registry *prometheus.Registry,
	storePinger controllers.Pinger,
	apiClient controllers.UpstreamClient,
	pricingService pricing.Service,
	cartService cart.Service,
	checkoutService checkout.Service,
	catalogService catalog.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(requestMetrics),
		middleware.CORS(cfg.CORS),
		middleware.UpstreamCredentials(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, storePinger))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/shop", func(r chi.Router) {
			r.Get("/products", controllers.CatalogSearch(catalogService, logg))
			r.Get("/products/filters", controllers.CatalogFilters(catalogService, logg))
			r.Get("/products/{slug}", controllers.CatalogBySlug(catalogService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.CartSession(logg, cfg.Cart.SessionTTL, cfg.App.IsProd()))
			r.Get("/", controllers.CartGet(cartService, logg))
			r.Post("/items", controllers.CartAddItem(cartService, logg))
			r.Post("/items/{itemID}/increment", controllers.CartIncrementItem(cartService, logg))
			r.Post("/items/{itemID}/decrement", controllers.CartDecrementItem(cartService, logg))
			r.Delete("/items/{itemID}", controllers.CartRemoveItem(cartService, logg))
			r.Delete("/", controllers.CartClear(cartService, logg))
			r.Get("/quote", controllers.CartQuote(cartService, logg))
			r.Post("/hydrate", controllers.CartHydrate(cartService, apiClient, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Use(middleware.CartSession(logg, cfg.Cart.SessionTTL, cfg.App.IsProd()))
			r.Post("/orders", controllers.CheckoutPlaceOrder(checkoutService, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Route("/pricing-rules", func(r chi.Router) {
			r.Get("/", controllers.PricingRuleList(pricingService, logg))
			r.Post("/", controllers.PricingRuleCreate(pricingService, logg))
			r.Put("/{ruleID}", controllers.PricingRuleUpdate(pricingService, logg))
			r.Delete("/{ruleID}", controllers.PricingRuleDelete(pricingService, logg))
		})
	})

	return r
}
