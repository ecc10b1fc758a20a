package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/flowohq/storefront-gateway/api/responses"
	"github.com/flowohq/storefront-gateway/pkg/config"
	"github.com/flowohq/storefront-gateway/pkg/logger"
)

// Pinger is anything with a health probe; redis satisfies it when wired.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Flowo-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady probes the cart store. The upstream API is deliberately not
// probed: the gateway stays ready through upstream blips and reports those
// per request instead.
func HealthReady(cfg *config.Config, logg *logger.Logger, store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Flowo-Env", cfg.App.Env)

		status := map[string]string{"status": "ready"}
		code := http.StatusOK

		if store != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := store.Ping(ctx); err != nil {
				if logg != nil {
					logg.Error(r.Context(), "health.redis", err)
				}
				status["status"] = "degraded"
				status["redis"] = "unreachable"
				code = http.StatusServiceUnavailable
			}
		}

		responses.WriteSuccessStatus(w, code, status)
	}
}
