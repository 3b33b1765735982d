// internal/app/features/about/handler.go
package about

import (
	"database/sql"

	uierrors "github.com/dalemusser/ngohub/internal/app/features/errors"
	aboutstore "github.com/dalemusser/ngohub/internal/app/store/about"
	"github.com/dalemusser/ngohub/internal/app/system/formutil"
	"github.com/dalemusser/ngohub/internal/app/system/metrics"
	"go.uber.org/zap"
)

const (
	area      = "about"
	adminPath = "/admin/about"
)

// Handler serves the public About page and its admin screen.
type Handler struct {
	Store   *aboutstore.Store
	Log     *zap.Logger
	ErrLog  *uierrors.ErrorLogger
	Flash   formutil.Flasher
	Metrics *metrics.Metrics
}

// NewHandler constructs an About handler.
func NewHandler(db *sql.DB, flash formutil.Flasher, m *metrics.Metrics, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Store:   aboutstore.New(db),
		Log:     logger,
		ErrLog:  errLog,
		Flash:   flash,
		Metrics: m,
	}
}
