package health

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/ngohub/internal/app/system/database"
	"github.com/dalemusser/ngohub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler holds dependencies needed for health checks.
type Handler struct {
	DB  *sql.DB
	Log *zap.Logger
}

// NewHandler constructs a health Handler with the database handle and logger.
func NewHandler(db *sql.DB, logger *zap.Logger) *Handler {
	return &Handler{
		DB:  db,
		Log: logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status        string `json:"status"`
	Database      string `json:"database"`
	SchemaVersion int64  `json:"schema_version,omitempty"`
	Message       string `json:"message,omitempty"`
	Error         string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "database":"connected", "schema_version":2 }
//
// On DB failure: 503 and
//
//	{ "status":"error", "message":"Database unavailable", "error":"…"}
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:   "ok",
		Database: "connected",
	}

	if err := h.DB.PingContext(ctx); err != nil {
		h.Log.Error("health-check: sqlite ping failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.Database = "disconnected"
		resp.Message = "Database unavailable"
		resp.Error = err.Error()
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	// Schema version is informational only.
	if v, err := database.AppliedVersion(ctx, h.DB); err == nil {
		resp.SchemaVersion = v
	}

	_ = json.NewEncoder(w).Encode(resp)
}
