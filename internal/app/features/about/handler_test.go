package about_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/dalemusser/ngohub/internal/app/features/about"
	uierrors "github.com/dalemusser/ngohub/internal/app/features/errors"
	"github.com/dalemusser/ngohub/internal/app/system/auth"
	"github.com/dalemusser/ngohub/internal/app/system/metrics"
	"github.com/dalemusser/ngohub/internal/app/system/viewdata"
	"github.com/dalemusser/ngohub/internal/testutil"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type env struct {
	h  *about.Handler
	sm *auth.SessionManager
	m  *metrics.Metrics
	fx *testutil.Fixtures
}

func newEnv(t *testing.T) env {
	t.Helper()
	db := testutil.SetupTestDB(t)
	sm := testutil.NewSessionManager(t)
	m := metrics.New(true)
	logger := zap.NewNop()
	h := about.NewHandler(db, sm, m, uierrors.NewErrorLogger(logger), logger)
	return env{h: h, sm: sm, m: m, fx: testutil.NewFixtures(t, db)}
}

// serve routes r through the admin router as the signed-in admin.
func (e env) serve(r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r = testutil.WithUser(r, testutil.AdminUser())
	func() {
		defer func() { _ = recover() }()
		about.AdminRoutes(e.h, e.sm).ServeHTTP(rec, r)
	}()
	return rec
}

// flashes returns the flash texts stored in the session rec set.
func (e env) flashes(rec *httptest.ResponseRecorder) []string {
	r := testutil.CarryCookies(rec, httptest.NewRequest("GET", "/", nil))
	var out []string
	for _, f := range e.sm.Flashes(httptest.NewRecorder(), r) {
		out = append(out, f.Text)
	}
	return out
}

func TestHandleStory_Replaces(t *testing.T) {
	e := newEnv(t)

	rec := e.serve(testutil.NewFormRequest("/story", url.Values{"story": {"First story"}}))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/about", rec.Header().Get("Location"))

	rec = e.serve(testutil.NewFormRequest("/story", url.Values{"story": {"<p>Second</p><script>x()</script>"}}))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, []string{"Story updated successfully"}, e.flashes(rec))

	ctx, cancel := testutil.TestContext(t)
	defer cancel()
	st, err := e.h.Store.Story(ctx)
	require.NoError(t, err)
	assert.Equal(t, "<p>Second</p>", st.Text)
	assert.Equal(t, 1, testutil.CountRows(t, e.fx.DB(), "story"))
	assert.Contains(t, testutil.MetricsText(t, e.m), `ngohub_content_mutations_total{area="about",op="update"} 2`)
}

func TestHandleStory_EmptyRejected(t *testing.T) {
	e := newEnv(t)

	rec := e.serve(testutil.NewFormRequest("/story", url.Values{"story": {"   "}}))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, []string{"Story is required."}, e.flashes(rec))
	assert.Equal(t, 0, testutil.CountRows(t, e.fx.DB(), "story"))
}

func TestAddItem_Lists(t *testing.T) {
	tests := []struct {
		path  string
		table string
		flash string
	}{
		{"/values", "core_values", "Value added"},
		{"/programs", "programs", "Program added"},
		{"/impact", "impact", "Impact added"},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			e := newEnv(t)
			rec := e.serve(testutil.NewFormRequest(tt.path, url.Values{"text": {"  Integrity  "}}))
			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, []string{tt.flash}, e.flashes(rec))
			assert.Equal(t, 1, testutil.CountRows(t, e.fx.DB(), tt.table))
		})
	}
}

func TestAddItem_EmptyRejected(t *testing.T) {
	e := newEnv(t)

	rec := e.serve(testutil.NewFormRequest("/values", url.Values{"text": {""}}))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, []string{"Core value: Text is required."}, e.flashes(rec))
	assert.Equal(t, 0, testutil.CountRows(t, e.fx.DB(), "core_values"))
}

func TestDeleteItem(t *testing.T) {
	e := newEnv(t)
	id := e.fx.CreateCoreValue("Integrity")

	rec := e.serve(testutil.NewFormRequest("/values/"+strconv.FormatInt(id, 10)+"/delete", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, []string{"Value deleted"}, e.flashes(rec))
	assert.Equal(t, 0, testutil.CountRows(t, e.fx.DB(), "core_values"))

	// deleting again reports the missing row
	rec = e.serve(testutil.NewFormRequest("/values/"+strconv.FormatInt(id, 10)+"/delete", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, []string{"That item no longer exists."}, e.flashes(rec))
}

func TestDeleteItem_BadID(t *testing.T) {
	e := newEnv(t)
	rec := e.serve(testutil.NewFormRequest("/values/abc/delete", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTeam_AddAndDelete(t *testing.T) {
	e := newEnv(t)

	rec := e.serve(testutil.NewFormRequest("/team", url.Values{"name": {"Ada"}, "role": {"Director"}}))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, []string{"Team member added"}, e.flashes(rec))

	ctx, cancel := testutil.TestContext(t)
	defer cancel()
	team, err := e.h.Store.Team(ctx)
	require.NoError(t, err)
	require.Len(t, team, 1)
	assert.Equal(t, "Director", team[0].Role)

	rec = e.serve(testutil.NewFormRequest("/team/"+strconv.FormatInt(team[0].ID, 10)+"/delete", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, 0, testutil.CountRows(t, e.fx.DB(), "team"))
}

func TestTeam_RoleRequired(t *testing.T) {
	e := newEnv(t)

	rec := e.serve(testutil.NewFormRequest("/team", url.Values{"name": {"Ada"}}))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, []string{"Role is required."}, e.flashes(rec))
	assert.Equal(t, 0, testutil.CountRows(t, e.fx.DB(), "team"))
}

func TestAdminRoutes_RequireAdmin(t *testing.T) {
	e := newEnv(t)
	router := about.AdminRoutes(e.h, e.sm)

	// signed out browser is sent to login
	r := testutil.NewFormRequest("/values", url.Values{"text": {"x"}})
	r.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Location"), "/login?return="))

	// signed in without the admin role
	r = testutil.WithUser(testutil.NewFormRequest("/values", url.Values{"text": {"x"}}), testutil.VisitorUser())
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	assert.Equal(t, 0, testutil.CountRows(t, e.fx.DB(), "core_values"))
}

// getPublic renders the public About page through the real templates.
func (e env) getPublic(t *testing.T) *httptest.ResponseRecorder {
	t.Helper()
	testutil.BootTemplates(t)
	rec := httptest.NewRecorder()
	about.Routes(e.h).ServeHTTP(rec, testutil.NewRequest("GET", "/"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return rec
}

func TestServeAbout_Renders(t *testing.T) {
	viewdata.Init(viewdata.Site{ContactEmail: "contact@helpinghands.org"}, nil)
	defer viewdata.Init(viewdata.Site{}, nil)

	e := newEnv(t)
	ctx, cancel := testutil.TestContext(t)
	defer cancel()
	require.NoError(t, e.h.Store.Seed(ctx))
	_, err := e.h.Store.AddTeamMember(ctx, "Amina Yusuf", "Field Coordinator")
	require.NoError(t, err)

	body := e.getPublic(t).Body.String()

	assert.Contains(t, body, "Building a better future together")
	assert.Contains(t, body, "Amina Yusuf</strong> – Field Coordinator")
	assert.Contains(t, body, ">Donate Now</a>")
	assert.Contains(t, body, ">Become a Volunteer</a>")
	assert.Contains(t, body, `href="mailto:contact@helpinghands.org?subject=Donation"`)
	assert.NotContains(t, body, "Volunteer With Us")
}

func TestServeAbout_EmptyStillShowsCallToAction(t *testing.T) {
	viewdata.Init(viewdata.Site{}, nil)

	body := newEnv(t).getPublic(t).Body.String()

	assert.Contains(t, body, "Our story is coming soon.")
	assert.Contains(t, body, "Team details coming soon.")
	assert.Contains(t, body, `href="/about#get-involved">Donate Now</a>`)
	assert.Contains(t, body, `href="/about#get-involved">Become a Volunteer</a>`)
}

func TestMetrics_Lint(t *testing.T) {
	e := newEnv(t)
	e.serve(testutil.NewFormRequest("/values", url.Values{"text": {"Integrity"}}))

	problems, err := promtest.GatherAndLint(e.m.Registry(), "ngohub_content_mutations_total")
	require.NoError(t, err)
	assert.Empty(t, problems, "lint problems: %v", problems)
}
