// internal/app/features/media/admin.go
package media

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	mediastore "github.com/dalemusser/ngohub/internal/app/store/media"
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

type adminVM struct {
	viewdata.BaseVM
	content
	Today string
	Tab   string
}

type pressInput struct {
	Title       string `validate:"required,max=300" label:"Title"`
	Description string `validate:"required,max=5000" label:"Description"`
	Date        string `validate:"required,datetime=2006-01-02" label:"Release date"`
}

type coverageInput struct {
	Title string `validate:"required,max=300" label:"Title"`
	URL   string `validate:"required,http_url,max=2000" label:"URL"`
}

type videoInput struct {
	URL string `validate:"required,http_url,max=2000" label:"Video URL"`
}

var tabs = map[string]bool{"press": true, "coverage": true, "gallery": true, "videos": true}

// tabPath returns the admin URL that reopens tab.
func tabPath(tab string) string {
	return adminPath + "?tab=" + tab
}

// ServeAdmin renders the Media admin screen.
// GET /admin/media
func (h *Handler) ServeAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "load media admin")
	defer cancel()

	c, err := h.load(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load media admin failed", err, "Could not load Media content.", "/admin")
		return
	}

	tab := r.URL.Query().Get("tab")
	if !tabs[tab] {
		tab = "press"
	}

	templates.Render(w, r, "media_admin", adminVM{
		BaseVM:  viewdata.NewBaseVM(w, r, "Manage Media", "/admin"),
		content: c,
		Today:   time.Now().Format(models.DateLayout),
		Tab:     tab,
	})
}

// HandleAddPress adds a press release. An empty date means today.
// POST /admin/media/press
func (h *Handler) HandleAddPress(w http.ResponseWriter, r *http.Request) {
	back := tabPath("press")
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxTextFormSize)
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse press form failed", err, "Invalid form data.", back)
		return
	}

	in := pressInput{
		Title:       formutil.Text(r, "title"),
		Description: strings.TrimSpace(htmlsanitize.Sanitize(formutil.Text(r, "description"))),
		Date:        formutil.Text(r, "release_date"),
	}
	if in.Date == "" {
		in.Date = time.Now().Format(models.DateLayout)
	}
	if res := inputval.Validate(in); res.HasErrors() {
		formutil.Fail(w, r, h.Flash, res.First(), back)
		return
	}
	date, _ := time.Parse(models.DateLayout, in.Date)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "add press release")
	defer cancel()

	if _, err := h.Store.AddPressRelease(ctx, in.Title, in.Description, date); err != nil {
		h.saveFailed(w, r, err, "add press release failed", "Could not save the press release.", back)
		return
	}
	h.Metrics.Mutation(area, metrics.OpCreate)
	formutil.Done(w, r, h.Flash, "Press release added successfully", back)
}

// HandleAddCoverage adds a media coverage link.
// POST /admin/media/coverage
func (h *Handler) HandleAddCoverage(w http.ResponseWriter, r *http.Request) {
	back := tabPath("coverage")
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxTextFormSize)
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse coverage form failed", err, "Invalid form data.", back)
		return
	}

	in := coverageInput{Title: formutil.Text(r, "title"), URL: formutil.Text(r, "url")}
	if res := inputval.Validate(in); res.HasErrors() {
		formutil.Fail(w, r, h.Flash, res.First(), back)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "add coverage")
	defer cancel()

	if _, err := h.Store.AddCoverage(ctx, in.Title, in.URL); err != nil {
		h.saveFailed(w, r, err, "add coverage failed", "Could not save the coverage link.", back)
		return
	}
	h.Metrics.Mutation(area, metrics.OpCreate)
	formutil.Done(w, r, h.Flash, "Media coverage added successfully", back)
}

// HandleUploadImage stores an uploaded gallery image.
// POST /admin/media/gallery
func (h *Handler) HandleUploadImage(w http.ResponseWriter, r *http.Request) {
	back := tabPath("gallery")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Upload(), h.Log, "upload gallery image")
	defer cancel()

	info, err := h.Uploads.SaveFormFile(ctx, w, r, "image", uploads.AreaGallery)
	if err != nil {
		if msg, ok := uploads.UserMessage(err); ok {
			formutil.Fail(w, r, h.Flash, msg, back)
			return
		}
		h.ErrLog.LogServerError(w, r, "store gallery image failed", err, "Could not store the image.", back)
		return
	}

	id, err := h.Store.AddGalleryImage(ctx, info.Path)
	if err != nil {
		h.Uploads.DeleteAll(ctx, []string{info.Path})
		h.ErrLog.LogServerError(w, r, "insert gallery image failed", err, "Could not save the image.", back)
		return
	}

	h.Log.Info("gallery image uploaded", zap.Int64("id", id), zap.String("path", info.Path))
	h.Metrics.Upload(uploads.AreaGallery, info.Size)
	h.Metrics.Mutation(area, metrics.OpCreate)
	formutil.Done(w, r, h.Flash, "Image uploaded successfully", back)
}

// HandleDeleteImage removes a gallery row and its file.
// POST /admin/media/gallery/{id}/delete
func (h *Handler) HandleDeleteImage(w http.ResponseWriter, r *http.Request) {
	back := tabPath("gallery")
	id, err := formutil.ParseID(r, "id")
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad id", err, "Invalid image id.", back)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete gallery image")
	defer cancel()

	path, err := h.Store.DeleteGalleryImage(ctx, id)
	if err != nil {
		h.deleteFailed(w, r, err, back)
		return
	}
	h.Uploads.DeleteAll(ctx, []string{path})
	h.Metrics.Mutation(area, metrics.OpDelete)
	formutil.Done(w, r, h.Flash, "Image deleted", back)
}

// HandleAddVideo adds a video URL.
// POST /admin/media/videos
func (h *Handler) HandleAddVideo(w http.ResponseWriter, r *http.Request) {
	back := tabPath("videos")
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxTextFormSize)
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse video form failed", err, "Invalid form data.", back)
		return
	}

	in := videoInput{URL: formutil.Text(r, "video_url")}
	if res := inputval.Validate(in); res.HasErrors() {
		formutil.Fail(w, r, h.Flash, res.First(), back)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "add video")
	defer cancel()

	if _, err := h.Store.AddVideo(ctx, in.URL); err != nil {
		h.saveFailed(w, r, err, "add video failed", "Could not save the video.", back)
		return
	}
	h.Metrics.Mutation(area, metrics.OpCreate)
	formutil.Done(w, r, h.Flash, "Video added successfully", back)
}

// deleteRow builds the delete handlers for rows without files.
func (h *Handler) deleteRow(tab, msg string, del func(context.Context, int64) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		back := tabPath(tab)
		id, err := formutil.ParseID(r, "id")
		if err != nil {
			h.ErrLog.LogBadRequest(w, r, "bad id", err, "Invalid id.", back)
			return
		}

		ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete "+tab)
		defer cancel()

		if err := del(ctx, id); err != nil {
			h.deleteFailed(w, r, err, back)
			return
		}
		h.Metrics.Mutation(area, metrics.OpDelete)
		formutil.Done(w, r, h.Flash, msg, back)
	}
}

// saveFailed sends blank-field rejections from the store back to the form.
func (h *Handler) saveFailed(w http.ResponseWriter, r *http.Request, err error, logMsg, userMsg, back string) {
	if errors.Is(err, mediastore.ErrEmpty) {
		formutil.Fail(w, r, h.Flash, "Please fill in every required field.", back)
		return
	}
	h.ErrLog.LogServerError(w, r, logMsg, err, userMsg, back)
}

func (h *Handler) deleteFailed(w http.ResponseWriter, r *http.Request, err error, back string) {
	if errors.Is(err, mediastore.ErrNotFound) {
		formutil.Fail(w, r, h.Flash, "That item no longer exists.", back)
		return
	}
	h.ErrLog.LogServerError(w, r, "media delete failed", err, "Could not delete.", back)
}
