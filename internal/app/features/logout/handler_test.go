package logout_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/ngohub/internal/app/features/logout"
	"github.com/dalemusser/ngohub/internal/app/system/auth"
	"github.com/dalemusser/ngohub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) *logout.Handler {
	t.Helper()
	return logout.NewHandler(testutil.NewSessionManager(t), zap.NewNop())
}

func TestServeLogout_RedirectsToHome(t *testing.T) {
	handler := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.ServeLogout(rec, httptest.NewRequest("GET", "/logout", nil))

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Location: got %q, want /", loc)
	}
}

func TestServeLogout_HTMX(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest("GET", "/logout", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	handler.ServeLogout(rec, req)

	if got := rec.Header().Get("HX-Redirect"); got != "/" {
		t.Errorf("HX-Redirect: got %q, want /", got)
	}
}

func TestServeLogout_ClearsSession(t *testing.T) {
	handler := newTestHandler(t)
	sm := handler.SessionMgr

	// sign in first
	signIn := httptest.NewRecorder()
	if err := sm.SignIn(signIn, httptest.NewRequest("POST", "/login", nil), auth.SessionUser{ID: "admin", Name: "Administrator", Role: auth.RoleAdmin}); err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	rec := httptest.NewRecorder()
	handler.ServeLogout(rec, testutil.CarryCookies(signIn, httptest.NewRequest("GET", "/logout", nil)))

	var expired bool
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			expired = true
		}
	}
	if !expired {
		t.Error("logout should expire the session cookie")
	}
}
