package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Group(func(r chi.Router) {
		r.Use(h.withTraceID)
		r.Use(h.withLogging)
		r.Use(withGZip)

		r.Post("/api/operations/", h.applyOperation)
		r.Get("/api/entities/{entityType}/{entityID}", h.getEntity)
		r.Put("/api/entities/{entityType}/{entityID}", h.pushEntity)
	})

	router.Get("/api/health", h.health)

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
