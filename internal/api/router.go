package api

import (
	"context"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/candlepilots/planguard/pkg/guard"
	"github.com/candlepilots/planguard/pkg/httpserver"
	"github.com/candlepilots/planguard/pkg/plan"
)

// RouterOptions carries the collaborators the router mounts.
type RouterOptions struct {
	Guard    *guard.Guard
	Handlers *Handlers

	// Healthchecks are named probes for the /health endpoint.
	Healthchecks map[string]func(context.Context) error
}

// Router assembles the CandlePilots API. Creation endpoints go through
// auth + limit chains; analytics goes through auth + feature; usage and
// feature lookups need auth only; the plan catalog is public.
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", httpserver.HealthcheckHandler(opts.Healthchecks).ServeHTTP)

	r.Route("/v1", func(v1 chi.Router) {
		v1.Get("/plans", opts.Handlers.Plans)

		for _, kind := range plan.AllResources {
			v1.With(opts.Guard.WithAuthAndLimit(kind)).
				Post("/"+string(kind), opts.Handlers.CreateResource(kind))
		}

		v1.Group(func(authed chi.Router) {
			authed.Use(opts.Guard.RequireAuth)
			authed.Get("/usage", opts.Handlers.Usage)
			authed.Get("/features/{feature}", opts.Handlers.Feature)
		})

		v1.With(opts.Guard.WithAuthAndFeature(plan.FeatureAdvancedAnalytics)).
			Get("/analytics", opts.Handlers.Analytics)
	})

	return r
}
