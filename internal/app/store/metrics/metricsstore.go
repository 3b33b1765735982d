package metricsstore

import (
	"context"
	"database/sql"

	aboutstore "github.com/dalemusser/ngohub/internal/app/store/about"
	homestore "github.com/dalemusser/ngohub/internal/app/store/home"
	mediastore "github.com/dalemusser/ngohub/internal/app/store/media"
	projectstore "github.com/dalemusser/ngohub/internal/app/store/projects"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Counts is the set of row counts shown on the admin dashboard, one map
// per content area keyed by table (projects also carry per-status keys).
type Counts struct {
	About    map[string]int
	Media    map[string]int
	Home     map[string]int
	Projects map[string]int
}

// FetchDashboardCounts returns the row counts used by the dashboard.
// Intentionally tolerant: an area whose query fails comes back as an empty
// map and the error is logged.
func FetchDashboardCounts(ctx context.Context, db *sql.DB, logger *zap.Logger) Counts {
	if logger == nil {
		logger = zap.NewNop()
	}

	var out Counts
	var g errgroup.Group

	fetch := func(area string, dst *map[string]int, fn func(context.Context) (map[string]int, error)) {
		g.Go(func() error {
			m, err := fn(ctx)
			if err != nil {
				logger.Warn("dashboard count failed", zap.String("area", area), zap.Error(err))
				m = map[string]int{}
			}
			*dst = m
			return nil
		})
	}

	fetch("about", &out.About, aboutstore.New(db).Counts)
	fetch("media", &out.Media, mediastore.New(db).Counts)
	fetch("home", &out.Home, homestore.New(db).Counts)
	fetch("projects", &out.Projects, projectstore.New(db).Counts)

	_ = g.Wait()
	return out
}
