package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.Route("/api", func(r chi.Router) {
		// routes without authorization
		r.Group(func(r chi.Router) {
			r.Get("/health", h.health)
			r.Get("/version", h.version)

			r.Post("/auth/register", h.register)
			r.Post("/auth/login", h.login)
		})

		// routes with authorization
		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Post("/auth/logout", h.logout)

			r.Route("/transactions", func(r chi.Router) {
				r.Post("/", h.createTransaction)
				r.Get("/", h.listTransactions)
				r.Post("/new", h.createTransaction)
				r.Get("/paged_transactions", h.listTransactions)

				r.Get("/{transaction_id}", h.getTransaction)
				r.Delete("/{transaction_id}", h.deleteTransaction)
			})
		})
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
