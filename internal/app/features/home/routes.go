package home

import (
	"github.com/dalemusser/ngohub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeRoot)
	return r
}

// AdminRoutes is mounted at /admin/home.
func AdminRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireAdmin)
	r.Get("/", h.ServeAdmin)
	r.Post("/profile", h.HandleProfile)
	r.Post("/stats", h.HandleSaveStat)
	r.Post("/stats/{id}/delete", h.deleteRow("Statistic deleted", h.Store.DeleteStat))
	r.Post("/initiatives", h.HandleAddInitiative)
	r.Post("/initiatives/{id}/delete", h.deleteRow("Initiative deleted", h.Store.DeleteInitiative))
	return r
}
