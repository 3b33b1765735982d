// internal/app/features/projects/admin.go
package projects

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	projectstore "github.com/dalemusser/ngohub/internal/app/store/projects"
	"github.com/dalemusser/ngohub/internal/app/system/formutil"
	"github.com/dalemusser/ngohub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/ngohub/internal/app/system/inputval"
	"github.com/dalemusser/ngohub/internal/app/system/limits"
	"github.com/dalemusser/ngohub/internal/app/system/metrics"
	"github.com/dalemusser/ngohub/internal/app/system/timeouts"
	"github.com/dalemusser/ngohub/internal/app/system/uploads"
	"github.com/dalemusser/ngohub/internal/app/system/viewdata"
	"github.com/dalemusser/ngohub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ServeAdmin renders the project admin list with the add and upload forms.
// GET /admin/projects
func (h *Handler) ServeAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list projects admin")
	defer cancel()

	list, err := h.Store.List(ctx, models.StatusAll)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list projects failed", err, "Could not load projects.", "/admin")
		return
	}

	today := time.Now().Format(models.DateLayout)
	templates.Render(w, r, "projects_admin", adminVM{
		BaseVM:   viewdata.NewBaseVM(w, r, "Manage Projects", "/admin"),
		Projects: toRows(h.Uploads, list),
		Statuses: models.ProjectStatuses,
		Form:     formVM{Status: models.StatusOngoing, StartDate: today, EndDate: today},
	})
}

// readProject parses and validates the add/edit form. On failure it has
// already redirected to back with an error flash.
func (h *Handler) readProject(w http.ResponseWriter, r *http.Request, back string) (projectInput, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxTextFormSize)
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse project form failed", err, "Invalid form data.", back)
		return projectInput{}, false
	}

	in := projectInput{
		Title:       formutil.Text(r, "title"),
		Description: htmlsanitize.Sanitize(formutil.Text(r, "description")),
		Status:      formutil.Text(r, "status"),
		StartDate:   formutil.Text(r, "start_date"),
		EndDate:     formutil.Text(r, "end_date"),
		Location:    formutil.Text(r, "location"),
	}
	if in.EndDate == "" {
		in.EndDate = time.Now().Format(models.DateLayout)
	}
	if res := inputval.Validate(in); res.HasErrors() {
		formutil.Fail(w, r, h.Flash, res.First(), back)
		return projectInput{}, false
	}
	if in.StartDate != "" && in.EndDate < in.StartDate {
		formutil.Fail(w, r, h.Flash, "End date must not be before the start date.", back)
		return projectInput{}, false
	}
	return in, true
}

// HandleCreate adds a project.
// POST /admin/projects
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	in, ok := h.readProject(w, r, adminPath)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create project")
	defer cancel()

	id, err := h.Store.Create(ctx, in.project(0))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create project failed", err, "Could not save the project.", adminPath)
		return
	}
	h.Log.Info("project created", zap.Int64("id", id), zap.String("title", in.Title))
	h.Metrics.Mutation(area, metrics.OpCreate)
	formutil.Done(w, r, h.Flash, "Project Added Successfully", adminPath)
}

// ServeEdit renders the edit form for one project.
// GET /admin/projects/{id}/edit
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id, err := formutil.ParseID(r, "id")
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad project id", err, "Invalid project id.", adminPath)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "load project")
	defer cancel()

	p, err := h.Store.Get(ctx, id)
	if errors.Is(err, projectstore.ErrNotFound) {
		h.ErrLog.LogNotFound(w, r, "project not found", err, "Project not found.", adminPath)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load project failed", err, "Could not load the project.", adminPath)
		return
	}

	templates.Render(w, r, "projects_edit", editVM{
		BaseVM:   viewdata.NewBaseVM(w, r, "Edit Project", adminPath),
		ID:       p.ID,
		Statuses: models.ProjectStatuses,
		Form: formVM{
			Title:       p.Title,
			Description: p.Description,
			Status:      p.Status,
			StartDate:   p.StartDate,
			EndDate:     p.EndDate,
			Location:    p.Location,
		},
	})
}

// HandleUpdate saves the edit form.
// POST /admin/projects/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := formutil.ParseID(r, "id")
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad project id", err, "Invalid project id.", adminPath)
		return
	}
	editPath := adminPath + "/" + strconv.FormatInt(id, 10) + "/edit"

	in, ok := h.readProject(w, r, editPath)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update project")
	defer cancel()

	if err := h.Store.Update(ctx, in.project(id)); err != nil {
		if errors.Is(err, projectstore.ErrNotFound) {
			formutil.Fail(w, r, h.Flash, "That project no longer exists.", adminPath)
			return
		}
		h.ErrLog.LogServerError(w, r, "update project failed", err, "Could not save the project.", editPath)
		return
	}
	h.Metrics.Mutation(area, metrics.OpUpdate)
	formutil.Done(w, r, h.Flash, "Project Updated Successfully", adminPath)
}

// HandleDelete removes a project, its image rows and then its files.
// POST /admin/projects/{id}/delete
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := formutil.ParseID(r, "id")
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad project id", err, "Invalid project id.", adminPath)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "delete project")
	defer cancel()

	paths, err := h.Store.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, projectstore.ErrNotFound) {
			formutil.Fail(w, r, h.Flash, "That project no longer exists.", adminPath)
			return
		}
		h.ErrLog.LogServerError(w, r, "delete project failed", err, "Could not delete the project.", adminPath)
		return
	}
	h.Uploads.DeleteAll(ctx, paths)

	h.Log.Info("project deleted", zap.Int64("id", id), zap.Int("images", len(paths)))
	h.Metrics.Mutation(area, metrics.OpDelete)
	formutil.Done(w, r, h.Flash, "Project Deleted", adminPath)
}

// HandleUploadImage attaches an uploaded image to the selected project.
// POST /admin/projects/images
func (h *Handler) HandleUploadImage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Upload(), h.Log, "upload project image")
	defer cancel()

	info, err := h.Uploads.SaveFormFile(ctx, w, r, "image", uploads.AreaProjects)
	if err != nil {
		if msg, ok := uploads.UserMessage(err); ok {
			formutil.Fail(w, r, h.Flash, msg, adminPath)
			return
		}
		h.ErrLog.LogServerError(w, r, "store project image failed", err, "Could not store the image.", adminPath)
		return
	}

	projectID, err := formutil.ParseFormID(r, "project_id")
	if err != nil {
		h.Uploads.DeleteAll(ctx, []string{info.Path})
		formutil.Fail(w, r, h.Flash, "Please select a project.", adminPath)
		return
	}

	if _, err := h.Store.AddImage(ctx, projectID, info.Path); err != nil {
		h.Uploads.DeleteAll(ctx, []string{info.Path})
		if errors.Is(err, projectstore.ErrNotFound) {
			formutil.Fail(w, r, h.Flash, "That project no longer exists.", adminPath)
			return
		}
		h.ErrLog.LogServerError(w, r, "insert project image failed", err, "Could not save the image.", adminPath)
		return
	}

	h.Metrics.Upload(uploads.AreaProjects, info.Size)
	h.Metrics.Mutation(area, metrics.OpCreate)
	formutil.Done(w, r, h.Flash, "Image Uploaded", adminPath)
}

// HandleDeleteImage removes one project image and its file.
// POST /admin/projects/images/{id}/delete
func (h *Handler) HandleDeleteImage(w http.ResponseWriter, r *http.Request) {
	id, err := formutil.ParseID(r, "id")
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad image id", err, "Invalid image id.", adminPath)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete project image")
	defer cancel()

	path, err := h.Store.DeleteImage(ctx, id)
	if err != nil {
		if errors.Is(err, projectstore.ErrNotFound) {
			formutil.Fail(w, r, h.Flash, "That image no longer exists.", adminPath)
			return
		}
		h.ErrLog.LogServerError(w, r, "delete project image failed", err, "Could not delete the image.", adminPath)
		return
	}
	h.Uploads.DeleteAll(ctx, []string{path})
	h.Metrics.Mutation(area, metrics.OpDelete)
	formutil.Done(w, r, h.Flash, "Image Deleted", adminPath)
}
