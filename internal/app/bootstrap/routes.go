// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	aboutfeature "github.com/dalemusser/ngohub/internal/app/features/about"
	dashboardfeature "github.com/dalemusser/ngohub/internal/app/features/dashboard"
	errorsfeature "github.com/dalemusser/ngohub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/ngohub/internal/app/features/health"
	homefeature "github.com/dalemusser/ngohub/internal/app/features/home"
	loginfeature "github.com/dalemusser/ngohub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/ngohub/internal/app/features/logout"
	mediafeature "github.com/dalemusser/ngohub/internal/app/features/media"
	projectsfeature "github.com/dalemusser/ngohub/internal/app/features/projects"
	"github.com/dalemusser/ngohub/internal/app/system/auth"
	"github.com/dalemusser/ngohub/internal/app/system/limits"
	"github.com/dalemusser/ngohub/internal/app/system/metrics"
	"github.com/dalemusser/ngohub/internal/app/system/ratelimit"
	"github.com/dalemusser/ngohub/internal/app/system/uploads"
	"github.com/dalemusser/ngohub/internal/app/system/viewdata"
	"github.com/dalemusser/ngohub/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// NGOHub mounts a public page and an admin page for each content area
// (home, about, media, projects), plus login, logout, the admin
// dashboard, health, metrics, static assets and uploaded images.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	creds, err := auth.NewCredentials(appCfg.AdminUsername, appCfg.AdminPassword, appCfg.AdminPasswordHash)
	if err != nil {
		logger.Error("admin credentials init failed", zap.Error(err))
		return nil, err
	}
	// Sessions signed for a previous admin username stop working.
	sessionMgr.SetUserChecker(creds.IsAdminID)

	up, err := uploads.New(appCfg.UploadDir, appCfg.UploadURL, appCfg.UploadMaxBytes(), logger)
	if err != nil {
		logger.Error("upload store init failed", zap.Error(err))
		return nil, err
	}

	if appCfg.UploadSweepInterval > 0 {
		sweeper := workers.NewUploadSweeper(up, workers.DBReferences(deps.DB), logger,
			appCfg.UploadSweepInterval, appCfg.UploadSweepGrace)
		sweeper.Start()
		setUploadSweeper(sweeper)
	}

	m := metrics.New(appCfg.MetricsEnabled)

	viewdata.Init(viewdata.Site{
		Name:              appCfg.SiteName,
		ContactEmail:      appCfg.ContactEmail,
		MediaContactEmail: appCfg.MediaContactEmail,
		DonateURL:         appCfg.DonateURL,
		VolunteerURL:      appCfg.VolunteerURL,
	}, sessionMgr)

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Create error logger for handlers.
	errLog := errorsfeature.NewErrorLogger(logger)
	errorsHandler := errorsfeature.NewHandler()

	limiter := ratelimit.NewLoginLimiter()
	setLoginLimiter(limiter)

	r := chi.NewRouter()

	// Sub-routers copy the parent's NotFound handler when mounted.
	r.NotFound(errorsHandler.NotFound)

	r.Use(m.Middleware)
	// csrf parses the form to find the token, so cap the body first.
	r.Use(limitBody(appCfg.UploadMaxBytes()))
	r.Use(csrfProtect(appCfg.CSRFKey, secure, logger))

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.DB, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Handle("/metrics", m.Handler())

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))
	r.Handle(up.URLPrefix()+"/*", fileserver.Handler(up.URLPrefix(), up.Root()))

	// Public pages
	homeHandler := homefeature.NewHandler(deps.DB, sessionMgr, m, errLog, logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	aboutHandler := aboutfeature.NewHandler(deps.DB, sessionMgr, m, errLog, logger)
	r.Mount("/about", aboutfeature.Routes(aboutHandler))

	mediaHandler := mediafeature.NewHandler(deps.DB, up, sessionMgr, m, errLog, logger)
	r.Mount("/media", mediafeature.Routes(mediaHandler))

	projectsHandler := projectsfeature.NewHandler(deps.DB, up, sessionMgr, m, errLog, logger)
	r.Mount("/projects", projectsfeature.Routes(projectsHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(creds, sessionMgr, limiter, m, errLog, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Error pages
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// Admin area. Every admin router applies sessionMgr.RequireAdmin itself.
	dashboardHandler := dashboardfeature.NewHandler(deps.DB, logger)
	r.Mount("/admin", dashboardfeature.Routes(dashboardHandler, sessionMgr))
	r.Mount("/admin/home", homefeature.AdminRoutes(homeHandler, sessionMgr))
	r.Mount("/admin/about", aboutfeature.AdminRoutes(aboutHandler, sessionMgr))
	r.Mount("/admin/media", mediafeature.AdminRoutes(mediaHandler, sessionMgr))
	r.Mount("/admin/projects", projectsfeature.AdminRoutes(projectsHandler, sessionMgr))

	return r, nil
}

// limitBody caps every request body at the largest form the app accepts:
// one image upload plus the multipart overhead. Handlers apply their own
// tighter limits on top. A declared Content-Length over the cap is refused
// with 413 before anything reads the body.
func limitBody(uploadMax int64) func(http.Handler) http.Handler {
	if uploadMax <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	limit := uploadMax + limits.MultipartOverhead
	capBody := middleware.RequestSize(limit)
	return func(next http.Handler) http.Handler {
		capped := capBody(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				http.Error(w, "Request body too large.", http.StatusRequestEntityTooLarge)
				return
			}
			capped.ServeHTTP(w, r)
		})
	}
}
