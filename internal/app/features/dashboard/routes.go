// internal/app/features/dashboard/routes.go
package dashboard

import (
	"github.com/go-chi/chi/v5"
)

// Routes wires the dashboard feature under whatever mount point the
// top-level router chooses (e.g., "/dashboard"). The visitor middleware
// must run before these handlers.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/manager", h.ServeManager)
	r.Get("/worker", h.ServeWorker)

	r.Group(func(rr chi.Router) {
		if h.Refreshes != nil {
			rr.Use(h.Refreshes.Middleware(visitorKey, h.refreshLimited))
		}
		rr.Post("/manager/refresh", h.RefreshManager)
		rr.Post("/worker/refresh", h.RefreshWorker)
	})
	return r
}
