package login_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	uierrors "github.com/dalemusser/ngohub/internal/app/features/errors"
	"github.com/dalemusser/ngohub/internal/app/features/login"
	"github.com/dalemusser/ngohub/internal/app/system/auth"
	"github.com/dalemusser/ngohub/internal/app/system/metrics"
	"github.com/dalemusser/ngohub/internal/app/system/ratelimit"
	"github.com/dalemusser/ngohub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, limiter *ratelimit.LoginLimiter) (*login.Handler, *metrics.Metrics) {
	t.Helper()
	creds, err := auth.NewCredentials("admin", "s3cret-pass", "")
	require.NoError(t, err)
	m := metrics.New(true)
	logger := zap.NewNop()
	sm := testutil.NewSessionManager(t)
	return login.NewHandler(creds, sm, limiter, m, uierrors.NewErrorLogger(logger), logger), m
}

func post(h *login.Handler, form url.Values) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	func() {
		defer func() { _ = recover() }()
		h.HandleLoginPost(rec, testutil.NewFormRequest("/login", form))
	}()
	return rec
}

func TestLogin_Success(t *testing.T) {
	h, m := newTestHandler(t, nil)

	rec := post(h, url.Values{"username": {"admin"}, "password": {"s3cret-pass"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin", rec.Header().Get("Location"))
	assert.NotEmpty(t, rec.Result().Cookies())
	assert.Contains(t, testutil.MetricsText(t, m), `ngohub_login_attempts_total{result="success"} 1`)

	// the cookie signs the next request in as admin
	r := testutil.CarryCookies(rec, httptest.NewRequest("GET", "/admin", nil))
	var got *auth.SessionUser
	h.SessionMgr.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentUser(r)
	})).ServeHTTP(httptest.NewRecorder(), r)
	require.NotNil(t, got)
	assert.True(t, got.IsAdmin())
}

func TestLogin_SafeReturn(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	rec := post(h, url.Values{"username": {"admin"}, "password": {"s3cret-pass"}, "return": {"/admin/projects"}})
	assert.Equal(t, "/admin/projects", rec.Header().Get("Location"))

	rec = post(h, url.Values{"username": {"admin"}, "password": {"s3cret-pass"}, "return": {"https://evil.example.com/"}})
	assert.Equal(t, "/admin", rec.Header().Get("Location"))
}

func TestLogin_WrongPassword(t *testing.T) {
	h, m := newTestHandler(t, nil)

	rec := post(h, url.Values{"username": {"admin"}, "password": {"nope"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Header().Get("Location"))
	assert.Contains(t, testutil.MetricsText(t, m), `ngohub_login_attempts_total{result="failure"} 1`)
}

func TestLogin_WrongUsername(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	rec := post(h, url.Values{"username": {"root"}, "password": {"s3cret-pass"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_RateLimited(t *testing.T) {
	limiter := ratelimit.NewLoginLimiterWithConfig(100, time.Minute, 2, time.Minute)
	defer limiter.Stop()
	h, m := newTestHandler(t, limiter)

	for i := 0; i < 2; i++ {
		rec := post(h, url.Values{"username": {"admin"}, "password": {"bad"}})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}
	rec := post(h, url.Values{"username": {"admin"}, "password": {"s3cret-pass"}})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, testutil.MetricsText(t, m), `ngohub_login_attempts_total{result="rate_limited"} 1`)
}

func TestServeLogin_AlreadySignedIn(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	rec := httptest.NewRecorder()
	r := testutil.WithUser(testutil.NewRequest("GET", "/login?return=/admin/media"), testutil.AdminUser())
	h.ServeLogin(rec, r)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/media", rec.Header().Get("Location"))
}
