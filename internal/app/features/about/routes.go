// internal/app/features/about/routes.go
package about

import (
	"github.com/dalemusser/ngohub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the public About router. Mount at /about.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeAbout)
	return r
}

// AdminRoutes returns the admin-only About router. Mount at /admin/about.
func AdminRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireAdmin)

	r.Get("/", h.ServeAdmin)
	r.Post("/story", h.HandleStory)

	r.Post("/values", h.addItem(valuesList))
	r.Post("/values/{id}/delete", h.deleteItem(valuesList))
	r.Post("/programs", h.addItem(programsList))
	r.Post("/programs/{id}/delete", h.deleteItem(programsList))
	r.Post("/impact", h.addItem(impactList))
	r.Post("/impact/{id}/delete", h.deleteItem(impactList))

	r.Post("/team", h.HandleAddTeamMember)
	r.Post("/team/{id}/delete", h.HandleDeleteTeamMember)
	return r
}
