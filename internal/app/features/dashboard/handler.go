// internal/app/features/dashboard/handler.go
package dashboard

import (
	"database/sql"
	"net/http"

	metricsstore "github.com/dalemusser/ngohub/internal/app/store/metrics"
	"github.com/dalemusser/ngohub/internal/app/system/timeouts"
	"github.com/dalemusser/ngohub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type Handler struct {
	DB  *sql.DB
	Log *zap.Logger
}

func NewHandler(db *sql.DB, logger *zap.Logger) *Handler {
	return &Handler{
		DB:  db,
		Log: logger,
	}
}

// area is one dashboard card.
type area struct {
	Name  string
	Link  string
	Lines []line
}

type line struct {
	Label string
	Count int
}

type dashboardData struct {
	viewdata.BaseVM
	Areas []area
}

func buildAreas(c metricsstore.Counts) []area {
	return []area{
		{Name: "Home", Link: "/admin/home", Lines: []line{
			{"Statistics", c.Home["home_stats"]},
			{"Initiatives", c.Home["initiatives"]},
		}},
		{Name: "About Us", Link: "/admin/about", Lines: []line{
			{"Story", c.About["story"]},
			{"Core values", c.About["core_values"]},
			{"Programs", c.About["programs"]},
			{"Team members", c.About["team"]},
			{"Impact highlights", c.About["impact"]},
		}},
		{Name: "Media", Link: "/admin/media", Lines: []line{
			{"Press releases", c.Media["press_releases"]},
			{"Media coverage", c.Media["media_coverage"]},
			{"Gallery images", c.Media["image_gallery"]},
			{"Videos", c.Media["videos"]},
		}},
		{Name: "Projects", Link: "/admin/projects", Lines: []line{
			{"Projects", c.Projects["projects"]},
			{"Ongoing", c.Projects["Ongoing"]},
			{"Completed", c.Projects["Completed"]},
			{"Upcoming", c.Projects["Upcoming"]},
			{"Images", c.Projects["project_images"]},
		}},
	}
}

// ServeDashboard handles GET /admin.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "dashboard counts")
	defer cancel()

	counts := metricsstore.FetchDashboardCounts(ctx, h.DB, h.Log)

	data := dashboardData{
		BaseVM: viewdata.NewBaseVM(w, r, "Admin Dashboard", "/"),
		Areas:  buildAreas(counts),
	}

	h.Log.Debug("admin dashboard served", zap.String("user", data.UserName))
	templates.Render(w, r, "admin_dashboard", data)
}
