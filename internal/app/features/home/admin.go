// internal/app/features/home/admin.go
package home

import (
	"context"
	"errors"
	"net/http"

	homestore "github.com/dalemusser/ngohub/internal/app/store/home"
	"github.com/dalemusser/ngohub/internal/app/system/formutil"
	"github.com/dalemusser/ngohub/internal/app/system/inputval"
	"github.com/dalemusser/ngohub/internal/app/system/limits"
	"github.com/dalemusser/ngohub/internal/app/system/metrics"
	"github.com/dalemusser/ngohub/internal/app/system/timeouts"
	"github.com/dalemusser/ngohub/internal/app/system/viewdata"
	"github.com/dalemusser/ngohub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

type profileInput struct {
	Vision  string `validate:"required,max=2000" label:"Vision"`
	Mission string `validate:"required,max=2000" label:"Mission"`
}

type statInput struct {
	Label string `validate:"required,max=100" label:"Label"`
	Value string `validate:"required,max=100" label:"Value"`
}

type initiativeInput struct {
	Name string `validate:"required,max=300" label:"Initiative name"`
}

// ServeAdmin renders the Home admin screen.
// GET /admin/home
func (h *Handler) ServeAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "load home admin")
	defer cancel()

	c, err := h.load(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load home admin failed", err, "Could not load Home content.", "/admin")
		return
	}

	data := struct {
		viewdata.BaseVM
		content
	}{
		BaseVM:  viewdata.NewBaseVM(w, r, "Manage Home", "/admin"),
		content: c,
	}
	templates.Render(w, r, "home_admin", data)
}

// parseText parses a small urlencoded admin form.
func (h *Handler) parseText(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxTextFormSize)
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse home form failed", err, "Invalid form data.", adminPath)
		return false
	}
	return true
}

// HandleProfile saves vision and mission.
// POST /admin/home/profile
func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	if !h.parseText(w, r) {
		return
	}
	in := profileInput{Vision: formutil.Text(r, "vision"), Mission: formutil.Text(r, "mission")}
	if res := inputval.Validate(in); res.HasErrors() {
		formutil.Fail(w, r, h.Flash, res.First(), adminPath)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "save home profile")
	defer cancel()

	if err := h.Store.SaveProfile(ctx, models.HomeProfile{Vision: in.Vision, Mission: in.Mission}); err != nil {
		h.ErrLog.LogServerError(w, r, "save home profile failed", err, "Could not save.", adminPath)
		return
	}
	h.Metrics.Mutation(area, metrics.OpUpdate)
	formutil.Done(w, r, h.Flash, "Updated successfully", adminPath)
}

// HandleSaveStat adds a statistic or updates the one with the same label.
// POST /admin/home/stats
func (h *Handler) HandleSaveStat(w http.ResponseWriter, r *http.Request) {
	if !h.parseText(w, r) {
		return
	}
	in := statInput{Label: formutil.Text(r, "label"), Value: formutil.Text(r, "value")}
	if res := inputval.Validate(in); res.HasErrors() {
		formutil.Fail(w, r, h.Flash, res.First(), adminPath)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "save stat")
	defer cancel()

	if err := h.Store.SaveStat(ctx, in.Label, in.Value); err != nil {
		h.ErrLog.LogServerError(w, r, "save stat failed", err, "Could not save the statistic.", adminPath)
		return
	}
	h.Metrics.Mutation(area, metrics.OpUpdate)
	formutil.Done(w, r, h.Flash, "Statistic saved", adminPath)
}

// HandleAddInitiative adds an initiative.
// POST /admin/home/initiatives
func (h *Handler) HandleAddInitiative(w http.ResponseWriter, r *http.Request) {
	if !h.parseText(w, r) {
		return
	}
	in := initiativeInput{Name: formutil.Text(r, "name")}
	if res := inputval.Validate(in); res.HasErrors() {
		formutil.Fail(w, r, h.Flash, res.First(), adminPath)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "add initiative")
	defer cancel()

	if _, err := h.Store.AddInitiative(ctx, in.Name); err != nil {
		h.ErrLog.LogServerError(w, r, "add initiative failed", err, "Could not save the initiative.", adminPath)
		return
	}
	h.Metrics.Mutation(area, metrics.OpCreate)
	formutil.Done(w, r, h.Flash, "Initiative added", adminPath)
}

// deleteRow builds the delete handlers for stats and initiatives.
func (h *Handler) deleteRow(msg string, del func(context.Context, int64) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := formutil.ParseID(r, "id")
		if err != nil {
			h.ErrLog.LogBadRequest(w, r, "bad id", err, "Invalid id.", adminPath)
			return
		}

		ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete home row")
		defer cancel()

		if err := del(ctx, id); err != nil {
			if errors.Is(err, homestore.ErrNotFound) {
				formutil.Fail(w, r, h.Flash, "That item no longer exists.", adminPath)
				return
			}
			h.ErrLog.LogServerError(w, r, "delete home row failed", err, "Could not delete.", adminPath)
			return
		}
		h.Metrics.Mutation(area, metrics.OpDelete)
		formutil.Done(w, r, h.Flash, msg, adminPath)
	}
}
