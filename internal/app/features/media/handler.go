// internal/app/features/media/handler.go
package media

import (
	"database/sql"

	uierrors "github.com/dalemusser/ngohub/internal/app/features/errors"
	mediastore "github.com/dalemusser/ngohub/internal/app/store/media"
	"github.com/dalemusser/ngohub/internal/app/system/formutil"
	"github.com/dalemusser/ngohub/internal/app/system/metrics"
	"github.com/dalemusser/ngohub/internal/app/system/uploads"
	"go.uber.org/zap"
)

const (
	area      = "media"
	adminPath = "/admin/media"
)

// Handler serves the public Media page and its admin screen.
type Handler struct {
	Store   *mediastore.Store
	Uploads *uploads.Store
	Log     *zap.Logger
	ErrLog  *uierrors.ErrorLogger
	Flash   formutil.Flasher
	Metrics *metrics.Metrics
}

// NewHandler constructs a Media handler.
func NewHandler(db *sql.DB, up *uploads.Store, flash formutil.Flasher, m *metrics.Metrics, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Store:   mediastore.New(db),
		Uploads: up,
		Log:     logger,
		ErrLog:  errLog,
		Flash:   flash,
		Metrics: m,
	}
}
