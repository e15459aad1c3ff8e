// Package httptransport is the thin HTTP layer over the validation service.
// Handlers decode, delegate and encode; identifier semantics live in the
// engines.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bankident/internal/platform/metrics"
	"bankident/internal/platform/middleware"
)

// NewRouter wires all endpoints. Lookup endpoints are public; generation
// endpoints require a bearer token.
func NewRouter(
	ibans *IBANHandler,
	bics *BICHandler,
	logger *slog.Logger,
	m *metrics.Metrics,
	jwtValidator middleware.JWTValidator,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.ContentTypeJSON)
	r.Use(middleware.Latency(m))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(v1 chi.Router) {
		v1.Post("/iban/validate", ibans.handleValidate)
		v1.Get("/iban/{iban}", ibans.handleInspect)
		v1.Get("/iban/{iban}/bic", ibans.handleBIC)

		v1.Post("/bic/validate", bics.handleValidate)
		v1.Get("/bic/resolve", bics.handleResolve)
		v1.Get("/bic/{bic}", bics.handleInspect)

		v1.Get("/countries", ibans.handleCountries)

		v1.Group(func(authed chi.Router) {
			authed.Use(middleware.RequireAuth(jwtValidator, logger))
			authed.Post("/iban/generate", ibans.handleGenerate)
			authed.Post("/iban/random", ibans.handleRandom)
		})
	})

	return r
}
