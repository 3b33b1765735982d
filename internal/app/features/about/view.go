// internal/app/features/about/view.go
package about

import (
	"context"
	"html/template"
	"net/http"

	aboutstore "github.com/dalemusser/ngohub/internal/app/store/about"
	"github.com/dalemusser/ngohub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/ngohub/internal/app/system/timeouts"
	"github.com/dalemusser/ngohub/internal/app/system/viewdata"
	"github.com/dalemusser/ngohub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"golang.org/x/sync/errgroup"
)

type content struct {
	Story    models.Story
	Values   []models.ListItem
	Programs []models.ListItem
	Team     []models.TeamMember
	Impact   []models.ListItem
}

type aboutVM struct {
	viewdata.BaseVM
	content
	StoryHTML template.HTML
}

// load reads every About table concurrently.
func (h *Handler) load(ctx context.Context) (content, error) {
	var c content
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		c.Story, err = h.Store.Story(gctx)
		return err
	})
	g.Go(func() (err error) {
		c.Values, err = h.Store.Items(gctx, aboutstore.CoreValues)
		return err
	})
	g.Go(func() (err error) {
		c.Programs, err = h.Store.Items(gctx, aboutstore.Programs)
		return err
	})
	g.Go(func() (err error) {
		c.Team, err = h.Store.Team(gctx)
		return err
	})
	g.Go(func() (err error) {
		c.Impact, err = h.Store.Items(gctx, aboutstore.Impact)
		return err
	})

	return c, g.Wait()
}

// ServeAbout renders the public About page.
// GET /about
func (h *Handler) ServeAbout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "load about page")
	defer cancel()

	c, err := h.load(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load about page failed", err, "Could not load this page.", "/")
		return
	}

	vm := aboutVM{
		BaseVM:    viewdata.NewBaseVM(w, r, "About Our NGO", "/"),
		content:   c,
		StoryHTML: htmlsanitize.PrepareForDisplay(c.Story.Text),
	}
	templates.Render(w, r, "about", vm)
}
