// internal/app/features/media/routes.go
package media

import (
	"github.com/dalemusser/ngohub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the public Media router. Mount at /media.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeMedia)
	return r
}

// AdminRoutes returns the admin-only Media router. Mount at /admin/media.
func AdminRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireAdmin)

	r.Get("/", h.ServeAdmin)

	r.Post("/press", h.HandleAddPress)
	r.Post("/press/{id}/delete", h.deleteRow("press", "Press release deleted", h.Store.DeletePressRelease))

	r.Post("/coverage", h.HandleAddCoverage)
	r.Post("/coverage/{id}/delete", h.deleteRow("coverage", "Media coverage deleted", h.Store.DeleteCoverage))

	r.Post("/gallery", h.HandleUploadImage)
	r.Post("/gallery/{id}/delete", h.HandleDeleteImage)

	r.Post("/videos", h.HandleAddVideo)
	r.Post("/videos/{id}/delete", h.deleteRow("videos", "Video deleted", h.Store.DeleteVideo))
	return r
}
