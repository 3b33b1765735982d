// internal/app/features/login/handler.go
package login

import (
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/ngohub/internal/app/features/errors"
	"github.com/dalemusser/ngohub/internal/app/system/auth"
	"github.com/dalemusser/ngohub/internal/app/system/limits"
	"github.com/dalemusser/ngohub/internal/app/system/metrics"
	"github.com/dalemusser/ngohub/internal/app/system/ratelimit"
	"github.com/dalemusser/ngohub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.uber.org/zap"
)

const defaultReturn = "/admin"

type Handler struct {
	Creds      *auth.Credentials
	SessionMgr *auth.SessionManager
	Limiter    *ratelimit.LoginLimiter
	Metrics    *metrics.Metrics
	ErrLog     *uierrors.ErrorLogger
	Log        *zap.Logger
}

func NewHandler(creds *auth.Credentials, sessionMgr *auth.SessionManager, limiter *ratelimit.LoginLimiter, m *metrics.Metrics, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Creds:      creds,
		SessionMgr: sessionMgr,
		Limiter:    limiter,
		Metrics:    m,
		ErrLog:     errLog,
		Log:        logger,
	}
}

// safeReturn accepts only same-site absolute paths.
func safeReturn(ret string) string {
	if !strings.HasPrefix(ret, "/") || strings.HasPrefix(ret, "//") || strings.HasPrefix(ret, "/\\") {
		return defaultReturn
	}
	return urlutil.SafeReturn(ret, "", defaultReturn)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Template-data                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type loginFormData struct {
	viewdata.BaseVM
	Error     string
	Username  string
	ReturnURL string
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, errMsg, username, ret string) {
	data := loginFormData{
		BaseVM:    viewdata.NewBaseVM(w, r, "Admin Login", "/"),
		Error:     errMsg,
		Username:  username,
		ReturnURL: ret,
	}
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	templates.Render(w, r, "login", data)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	ret := query.Get(r, "return")

	if u, ok := auth.CurrentUser(r); ok && u.IsAdmin() {
		http.Redirect(w, r, safeReturn(ret), http.StatusSeeOther)
		return
	}
	h.renderForm(w, r, http.StatusOK, "", "", ret)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxTextFormSize)
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login")
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")
	ret := r.FormValue("return")

	if h.Limiter != nil {
		if ok, reason := h.Limiter.Check(r, username); !ok {
			h.Log.Warn("login rate limited",
				zap.String("ip", ratelimit.ClientIP(r)),
				zap.String("username", username))
			h.Metrics.Login(metrics.LoginLimited)
			h.renderForm(w, r, http.StatusTooManyRequests, reason, username, ret)
			return
		}
	}

	if err := h.Creds.Verify(username, password); err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			h.ErrLog.LogServerError(w, r, "verify credentials", err, "A server error occurred.", "/login")
			return
		}
		h.Log.Info("login failed",
			zap.String("ip", ratelimit.ClientIP(r)),
			zap.String("username", username))
		h.Metrics.Login(metrics.LoginFailure)
		h.renderForm(w, r, http.StatusUnauthorized, "Invalid username or password", username, ret)
		return
	}

	if err := h.SessionMgr.SignIn(w, r, h.Creds.SessionUser()); err != nil {
		h.ErrLog.LogServerError(w, r, "save session failed", err, "Could not sign you in.", "/login")
		return
	}
	if h.Limiter != nil {
		h.Limiter.ResetUser(username)
	}

	h.Log.Info("admin signed in", zap.String("ip", ratelimit.ClientIP(r)))
	h.Metrics.Login(metrics.LoginSuccess)
	http.Redirect(w, r, safeReturn(ret), http.StatusSeeOther)
}
