// internal/app/features/projects/routes.go
package projects

import (
	"github.com/dalemusser/ngohub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the public Projects router. Mount at /projects.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	return r
}

// AdminRoutes returns the admin-only Projects router. Mount at /admin/projects.
func AdminRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireAdmin)

	r.Get("/", h.ServeAdmin)
	r.Post("/", h.HandleCreate)

	r.Post("/images", h.HandleUploadImage)
	r.Post("/images/{id}/delete", h.HandleDeleteImage)

	r.Get("/{id}/edit", h.ServeEdit)
	r.Post("/{id}", h.HandleUpdate)
	r.Post("/{id}/delete", h.HandleDelete)
	return r
}
