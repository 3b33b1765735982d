// internal/app/features/projects/view.go
package projects

import (
	"net/http"

	"github.com/dalemusser/ngohub/internal/app/system/timeouts"
	"github.com/dalemusser/ngohub/internal/app/system/viewdata"
	"github.com/dalemusser/ngohub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
)

// ServeList renders the public project list, filtered by ?status=.
// Unknown status values show every project.
// GET /projects
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	status := models.NormalizeProjectFilter(query.Get(r, "status"))

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list projects")
	defer cancel()

	list, err := h.Store.List(ctx, status)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list projects failed", err, "Could not load projects.", "/")
		return
	}

	templates.Render(w, r, "projects_list", listVM{
		BaseVM:   viewdata.NewBaseVM(w, r, "Our Projects", "/"),
		Projects: toRows(h.Uploads, list),
		Filters:  models.ProjectFilters,
		Status:   status,
	})
}
