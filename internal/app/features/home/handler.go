// internal/app/features/home/handler.go
package home

import (
	"context"
	"database/sql"
	"net/http"

	uierrors "github.com/dalemusser/ngohub/internal/app/features/errors"
	homestore "github.com/dalemusser/ngohub/internal/app/store/home"
	"github.com/dalemusser/ngohub/internal/app/system/formutil"
	"github.com/dalemusser/ngohub/internal/app/system/metrics"
	"github.com/dalemusser/ngohub/internal/app/system/timeouts"
	"github.com/dalemusser/ngohub/internal/app/system/viewdata"
	"github.com/dalemusser/ngohub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	area      = "home"
	adminPath = "/admin/home"
)

// Handler serves the public Home page and its admin screen.
type Handler struct {
	Store   *homestore.Store
	Log     *zap.Logger
	ErrLog  *uierrors.ErrorLogger
	Flash   formutil.Flasher
	Metrics *metrics.Metrics
}

// NewHandler constructs a Home handler.
func NewHandler(db *sql.DB, flash formutil.Flasher, m *metrics.Metrics, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Store:   homestore.New(db),
		Log:     logger,
		ErrLog:  errLog,
		Flash:   flash,
		Metrics: m,
	}
}

type content struct {
	Profile     models.HomeProfile
	Stats       []models.Stat
	Initiatives []models.ListItem
}

// load reads the three Home sections concurrently.
func (h *Handler) load(ctx context.Context) (content, error) {
	var c content
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		c.Profile, err = h.Store.Profile(gctx)
		return err
	})
	g.Go(func() (err error) {
		c.Stats, err = h.Store.Stats(gctx)
		return err
	})
	g.Go(func() (err error) {
		c.Initiatives, err = h.Store.Initiatives(gctx)
		return err
	})
	return c, g.Wait()
}

// ServeRoot renders the Home page: profile, stats and initiatives.
// GET /
func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "load home page")
	defer cancel()

	c, err := h.load(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load home page failed", err, "Could not load this page.", "/")
		return
	}

	data := struct {
		viewdata.BaseVM
		content
	}{
		BaseVM:  viewdata.NewBaseVM(w, r, "Welcome", "/"),
		content: c,
	}
	templates.Render(w, r, "home", data)
}
