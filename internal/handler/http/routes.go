package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/magic-link", h.requestMagicLink)
		r.Get("/api/auth/callback", h.callback)
		r.Post("/api/auth/redeem", h.redeem)
		r.Post("/api/billing/checkout-ref", h.createCheckoutRef)
		r.Get("/api/version", h.getServerVersion)
	})

	// routes with a user session
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/api/auth/logout", h.logout)
		r.Get("/api/me", h.me)
		r.Get("/api/me/entitlement", h.entitlement)
	})

	// routes for the billing-sync collaborator
	router.Group(func(r chi.Router) {
		r.Use(h.syncAuth)
		r.Put("/internal/billing/subscriptions", h.syncSubscription)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
