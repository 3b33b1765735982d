// internal/app/features/media/view.go
package media

import (
	"context"
	"html/template"
	"net/http"

	"github.com/dalemusser/ngohub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/ngohub/internal/app/system/timeouts"
	"github.com/dalemusser/ngohub/internal/app/system/videoembed"
	"github.com/dalemusser/ngohub/internal/app/system/viewdata"
	"github.com/dalemusser/ngohub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"golang.org/x/sync/errgroup"
)

type pressRow struct {
	models.PressRelease
	DescriptionHTML template.HTML
}

type imageRow struct {
	ID  int64
	URL string
}

type videoRow struct {
	ID       int64
	URL      string
	Embed    string
	IsIframe bool
}

type content struct {
	Press    []pressRow
	Coverage []models.MediaCoverage
	Gallery  []imageRow
	Videos   []videoRow
}

type mediaVM struct {
	viewdata.BaseVM
	content
}

func (h *Handler) load(ctx context.Context) (content, error) {
	var (
		c       content
		press   []models.PressRelease
		gallery []models.GalleryImage
		videos  []models.Video
	)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		press, err = h.Store.PressReleases(gctx)
		return err
	})
	g.Go(func() (err error) {
		c.Coverage, err = h.Store.Coverage(gctx)
		return err
	})
	g.Go(func() (err error) {
		gallery, err = h.Store.Gallery(gctx)
		return err
	})
	g.Go(func() (err error) {
		videos, err = h.Store.Videos(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return c, err
	}

	for _, p := range press {
		c.Press = append(c.Press, pressRow{PressRelease: p, DescriptionHTML: htmlsanitize.PrepareForDisplay(p.Description)})
	}
	for _, img := range gallery {
		c.Gallery = append(c.Gallery, imageRow{ID: img.ID, URL: h.Uploads.URL(img.ImagePath)})
	}
	for _, v := range videos {
		e := videoembed.Resolve(v.VideoURL)
		c.Videos = append(c.Videos, videoRow{
			ID:       v.ID,
			URL:      v.VideoURL,
			Embed:    e.URL,
			IsIframe: e.Kind == videoembed.KindIframe,
		})
	}
	return c, nil
}

// ServeMedia renders the public Media page.
// GET /media
func (h *Handler) ServeMedia(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "load media page")
	defer cancel()

	c, err := h.load(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load media page failed", err, "Could not load this page.", "/")
		return
	}

	templates.Render(w, r, "media", mediaVM{
		BaseVM:  viewdata.NewBaseVM(w, r, "Media & Press", "/"),
		content: c,
	})
}
