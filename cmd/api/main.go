package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/flowohq/storefront-gateway/api/controllers"
	"github.com/flowohq/storefront-gateway/api/routes"
	"github.com/flowohq/storefront-gateway/internal/cart"
	"github.com/flowohq/storefront-gateway/internal/catalog"
	"github.com/flowohq/storefront-gateway/internal/checkout"
	"github.com/flowohq/storefront-gateway/internal/pricing"
	"github.com/flowohq/storefront-gateway/pkg/config"
	"github.com/flowohq/storefront-gateway/pkg/flowoapi"
	"github.com/flowohq/storefront-gateway/pkg/logger"
	"github.com/flowohq/storefront-gateway/pkg/metrics"
	"github.com/flowohq/storefront-gateway/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront-gateway"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront-gateway",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	registry := prometheus.NewRegistry()
	requestMetrics := metrics.NewRequestMetrics(registry)

	apiClient := flowoapi.New(cfg.Upstream, logg, requestMetrics)

	var cartStore cart.Store = cart.NewMemoryStore()
	var storePinger controllers.Pinger
	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()

		cartStore, err = cart.NewRedisStore(redisClient, cfg.Cart.SessionTTL)
		if err != nil {
			logg.Error(context.Background(), "failed to create cart store", err)
			os.Exit(1)
		}
		storePinger = redisClient
	}

	cartService, err := cart.NewService(cartStore, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	pricingService, err := pricing.NewService(apiClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create pricing service", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(apiClient, cartService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(apiClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"upstream": cfg.Upstream.BaseURL,
	})
	logg.Info(ctx, "starting storefront gateway")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			requestMetrics,
			registry,
			storePinger,
			apiClient,
			pricingService,
			cartService,
			checkoutService,
			catalogService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "gateway stopped unexpectedly", err)
		os.Exit(1)
	}
}
