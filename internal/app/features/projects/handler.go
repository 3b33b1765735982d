// internal/app/features/projects/handler.go
package projects

import (
	"database/sql"

	uierrors "github.com/dalemusser/ngohub/internal/app/features/errors"
	projectstore "github.com/dalemusser/ngohub/internal/app/store/projects"
	"github.com/dalemusser/ngohub/internal/app/system/formutil"
	"github.com/dalemusser/ngohub/internal/app/system/metrics"
	"github.com/dalemusser/ngohub/internal/app/system/uploads"
	"go.uber.org/zap"
)

const (
	area      = "projects"
	adminPath = "/admin/projects"
)

// Handler serves the public Projects page and the project admin screens.
type Handler struct {
	Store   *projectstore.Store
	Uploads *uploads.Store
	Log     *zap.Logger
	ErrLog  *uierrors.ErrorLogger
	Flash   formutil.Flasher
	Metrics *metrics.Metrics
}

// NewHandler constructs a Projects handler.
func NewHandler(db *sql.DB, up *uploads.Store, flash formutil.Flasher, m *metrics.Metrics, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Store:   projectstore.New(db),
		Uploads: up,
		Log:     logger,
		ErrLog:  errLog,
		Flash:   flash,
		Metrics: m,
	}
}
