// internal/app/features/about/admin.go
package about

import (
	"errors"
	"net/http"

	aboutstore "github.com/dalemusser/ngohub/internal/app/store/about"
	"github.com/dalemusser/ngohub/internal/app/system/formutil"
	"github.com/dalemusser/ngohub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/ngohub/internal/app/system/inputval"
	"github.com/dalemusser/ngohub/internal/app/system/limits"
	"github.com/dalemusser/ngohub/internal/app/system/metrics"
	"github.com/dalemusser/ngohub/internal/app/system/timeouts"
	"github.com/dalemusser/ngohub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type adminVM struct {
	viewdata.BaseVM
	content
}

// list describes one of the add/delete list sections of the admin screen.
type list struct {
	l       aboutstore.List
	label   string
	added   string
	deleted string
}

var (
	valuesList   = list{aboutstore.CoreValues, "Core value", "Value added", "Value deleted"}
	programsList = list{aboutstore.Programs, "Program", "Program added", "Program deleted"}
	impactList   = list{aboutstore.Impact, "Impact", "Impact added", "Impact deleted"}
)

type storyInput struct {
	Text string `validate:"required,max=20000" label:"Story"`
}

type itemInput struct {
	Text string `validate:"required,max=500" label:"Text"`
}

type teamInput struct {
	Name string `validate:"required,max=200" label:"Name"`
	Role string `validate:"required,max=200" label:"Role"`
}

// ServeAdmin renders the About admin screen.
// GET /admin/about
func (h *Handler) ServeAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "load about admin")
	defer cancel()

	c, err := h.load(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load about admin failed", err, "Could not load About content.", "/admin")
		return
	}

	vm := adminVM{
		BaseVM:  viewdata.NewBaseVM(w, r, "Manage About Us", "/admin"),
		content: c,
	}
	templates.Render(w, r, "about_admin", vm)
}

// HandleStory replaces the story.
// POST /admin/about/story
func (h *Handler) HandleStory(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxTextFormSize)
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse story form failed", err, "Invalid form data.", adminPath)
		return
	}

	in := storyInput{Text: htmlsanitize.Sanitize(formutil.Text(r, "story"))}
	if res := inputval.Validate(in); res.HasErrors() {
		formutil.Fail(w, r, h.Flash, res.First(), adminPath)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update story")
	defer cancel()

	if err := h.Store.SetStory(ctx, in.Text); err != nil {
		h.ErrLog.LogServerError(w, r, "update story failed", err, "Could not save the story.", adminPath)
		return
	}
	h.Metrics.Mutation(area, metrics.OpUpdate)
	formutil.Done(w, r, h.Flash, "Story updated successfully", adminPath)
}

func (h *Handler) addItem(li list) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, limits.MaxTextFormSize)
		if err := r.ParseForm(); err != nil {
			h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", adminPath)
			return
		}

		in := itemInput{Text: formutil.Text(r, "text")}
		if res := inputval.Validate(in); res.HasErrors() {
			formutil.Fail(w, r, h.Flash, li.label+": "+res.First(), adminPath)
			return
		}

		ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "add "+li.l.Name())
		defer cancel()

		id, err := h.Store.AddItem(ctx, li.l, in.Text)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "add item failed", err, "Could not save.", adminPath)
			return
		}
		h.Log.Info("about item added", zap.String("table", li.l.Name()), zap.Int64("id", id))
		h.Metrics.Mutation(area, metrics.OpCreate)
		formutil.Done(w, r, h.Flash, li.added, adminPath)
	}
}

func (h *Handler) deleteItem(li list) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := formutil.ParseID(r, "id")
		if err != nil {
			h.ErrLog.LogBadRequest(w, r, "bad id", err, "Invalid item id.", adminPath)
			return
		}

		ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete "+li.l.Name())
		defer cancel()

		if err := h.Store.DeleteItem(ctx, li.l, id); err != nil {
			if errors.Is(err, aboutstore.ErrNotFound) {
				formutil.Fail(w, r, h.Flash, "That item no longer exists.", adminPath)
				return
			}
			h.ErrLog.LogServerError(w, r, "delete item failed", err, "Could not delete.", adminPath)
			return
		}
		h.Metrics.Mutation(area, metrics.OpDelete)
		formutil.Done(w, r, h.Flash, li.deleted, adminPath)
	}
}

// HandleAddTeamMember adds a team member.
// POST /admin/about/team
func (h *Handler) HandleAddTeamMember(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxTextFormSize)
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse team form failed", err, "Invalid form data.", adminPath)
		return
	}

	in := teamInput{Name: formutil.Text(r, "name"), Role: formutil.Text(r, "role")}
	if res := inputval.Validate(in); res.HasErrors() {
		formutil.Fail(w, r, h.Flash, res.First(), adminPath)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "add team member")
	defer cancel()

	if _, err := h.Store.AddTeamMember(ctx, in.Name, in.Role); err != nil {
		h.ErrLog.LogServerError(w, r, "add team member failed", err, "Could not save the team member.", adminPath)
		return
	}
	h.Metrics.Mutation(area, metrics.OpCreate)
	formutil.Done(w, r, h.Flash, "Team member added", adminPath)
}

// HandleDeleteTeamMember removes a team member.
// POST /admin/about/team/{id}/delete
func (h *Handler) HandleDeleteTeamMember(w http.ResponseWriter, r *http.Request) {
	id, err := formutil.ParseID(r, "id")
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad id", err, "Invalid team member id.", adminPath)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete team member")
	defer cancel()

	if err := h.Store.DeleteTeamMember(ctx, id); err != nil {
		if errors.Is(err, aboutstore.ErrNotFound) {
			formutil.Fail(w, r, h.Flash, "That team member no longer exists.", adminPath)
			return
		}
		h.ErrLog.LogServerError(w, r, "delete team member failed", err, "Could not delete.", adminPath)
		return
	}
	h.Metrics.Mutation(area, metrics.OpDelete)
	formutil.Done(w, r, h.Flash, "Team member deleted", adminPath)
}
