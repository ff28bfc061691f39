package main

import (
	"context"
	"net/http"

	kitlog "github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/prajwalbharadwajbm/referralhub/internal/config"
	"github.com/prajwalbharadwajbm/referralhub/internal/endpoint"
	"github.com/prajwalbharadwajbm/referralhub/internal/metrics"
	"github.com/prajwalbharadwajbm/referralhub/internal/middleware"
	"github.com/prajwalbharadwajbm/referralhub/internal/session"
	"github.com/prajwalbharadwajbm/referralhub/internal/transport"
)

// Routes wires the API routes, /metrics and the request-scoped middlewares
func Routes(cfg *config.Config, console endpoint.ConsoleEndpoints, portal endpoint.PortalEndpoints,
	store *session.HybridStore, m *metrics.Metrics, l kitlog.Logger) http.Handler {

	health := func(ctx context.Context) (map[string]any, bool) {
		err := store.HealthCheck(ctx)
		m.SetHealthCheckStatus("sessions", err == nil)

		details := map[string]any{
			"version":  VERSION,
			"backend":  cfg.Backend.Mode,
			"sessions": config.GetStoreHealth(cfg, store),
		}
		if err != nil {
			details["error"] = err.Error()
		}
		return details, err == nil
	}

	router := transport.NewHTTPHandler(console, portal, health, kitlog.With(l, "component", "http"))
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	router.Use(middleware.NewMetricsMiddleware(m).Middleware)

	sessions := middleware.NewSessionMiddleware(store, cfg.Cookie(), cfg.Session.TTL, m, l)
	return middleware.NewRequestIDMiddleware().Middleware(sessions.Middleware(router))
}
