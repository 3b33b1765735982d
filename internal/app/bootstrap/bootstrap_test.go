package bootstrap

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/ngohub/internal/app/resources"
	"github.com/dalemusser/ngohub/internal/app/system/auth"
	"github.com/dalemusser/ngohub/internal/app/system/limits"
	"github.com/dalemusser/ngohub/internal/testutil"
	"github.com/dalemusser/waffle/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func validAppConfig(t *testing.T) AppConfig {
	t.Helper()
	dir := t.TempDir()
	return AppConfig{
		DBPath:         filepath.Join(dir, "ngohub.db"),
		DBMaxOpenConns: 1,
		SeedDefaults:   true,
		UploadDir:      filepath.Join(dir, "uploads"),
		UploadURL:      "/uploads",
		UploadMaxMB:    10,
		SessionKey:     strings.Repeat("k", 40),
		SessionName:    "ngohub-test",
		SessionMaxAge:  time.Hour,
		CSRFKey:        strings.Repeat("c", 32),
		AdminUsername:  "admin",
		AdminPassword:  "correct horse",
		SiteName:       "Helping Hands",
		ContactEmail:   "contact@example.org",
		MetricsEnabled: true,
	}
}

func TestValidateConfig(t *testing.T) {
	dev := &config.CoreConfig{Env: "dev"}
	prod := &config.CoreConfig{Env: "prod"}

	tests := []struct {
		name    string
		core    *config.CoreConfig
		mutate  func(c *AppConfig)
		wantErr string
	}{
		{"valid dev", dev, func(c *AppConfig) {}, ""},
		{"valid prod", prod, func(c *AppConfig) {}, ""},
		{"missing db path", dev, func(c *AppConfig) { c.DBPath = "" }, "db_path"},
		{"short csrf key", dev, func(c *AppConfig) { c.CSRFKey = "short" }, "csrf_key"},
		{"relative upload url", dev, func(c *AppConfig) { c.UploadURL = "uploads" }, "upload_url"},
		{"bad contact email", dev, func(c *AppConfig) { c.ContactEmail = "nope" }, "contact_email"},
		{"mailto donate link", dev, func(c *AppConfig) { c.DonateURL = "mailto:give@example.org" }, ""},
		{"path volunteer link", dev, func(c *AppConfig) { c.VolunteerURL = "/about#get-involved" }, ""},
		{"bad donate link", dev, func(c *AppConfig) { c.DonateURL = "javascript:alert(1)" }, "donate_url"},
		{"no admin password", dev, func(c *AppConfig) { c.AdminPassword = "" }, "admin_password"},
		{"dev session key in prod", prod, func(c *AppConfig) { c.SessionKey = devSessionKey }, "session_key"},
		{"dev csrf key in prod", prod, func(c *AppConfig) { c.CSRFKey = devCSRFKey }, "csrf_key"},
		{"default password in prod", prod, func(c *AppConfig) { c.AdminPassword = devAdminPassword }, "admin password"},
		{"default password allowed in dev", dev, func(c *AppConfig) { c.AdminPassword = devAdminPassword }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validAppConfig(t)
			tt.mutate(&cfg)
			err := ValidateConfig(tt.core, cfg, zap.NewNop())
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateConfig_WarnsOnDefaultPassword(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	cfg := validAppConfig(t)
	cfg.AdminPassword = devAdminPassword

	require.NoError(t, ValidateConfig(&config.CoreConfig{Env: "dev"}, cfg, zap.New(core)))
	assert.Equal(t, 1, logs.Len())
}

func TestConnectAndEnsureSchema(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	core := &config.CoreConfig{Env: "dev"}
	cfg := validAppConfig(t)
	logger := zap.NewNop()

	deps, err := ConnectDB(ctx, core, cfg, logger)
	require.NoError(t, err)
	defer deps.DB.Close()

	require.NoError(t, EnsureSchema(ctx, core, cfg, deps, logger))
	assert.Equal(t, 1, testutil.CountRows(t, deps.DB, "story"))
	values := testutil.CountRows(t, deps.DB, "core_values")
	assert.Positive(t, values)

	// A second run must not duplicate the seeded rows.
	require.NoError(t, EnsureSchema(ctx, core, cfg, deps, logger))
	assert.Equal(t, values, testutil.CountRows(t, deps.DB, "core_values"))
}

func TestEnsureSchema_NoSeed(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	core := &config.CoreConfig{Env: "dev"}
	cfg := validAppConfig(t)
	cfg.SeedDefaults = false

	deps, err := ConnectDB(ctx, core, cfg, zap.NewNop())
	require.NoError(t, err)
	defer deps.DB.Close()

	require.NoError(t, EnsureSchema(ctx, core, cfg, deps, zap.NewNop()))
	assert.Equal(t, 0, testutil.CountRows(t, deps.DB, "core_values"))
}

func buildTestHandler(t *testing.T) http.Handler {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	core := &config.CoreConfig{Env: "test"}
	cfg := validAppConfig(t)
	logger := zap.NewNop()

	deps, err := ConnectDB(ctx, core, cfg, logger)
	require.NoError(t, err)
	require.NoError(t, EnsureSchema(ctx, core, cfg, deps, logger))
	require.NoError(t, Startup(ctx, core, cfg, deps, logger))
	resources.LoadSharedTemplates()

	h, err := BuildHandler(core, cfg, deps, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Shutdown(context.Background(), core, cfg, deps, logger) })
	return h
}

func TestBuildHandler_Routes(t *testing.T) {
	h := buildTestHandler(t)

	t.Run("health", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status"`)
	})

	t.Run("admin requires login", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin/projects", nil)
		req.Header.Set("Accept", "text/html")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login?return=%2Fadmin%2Fprojects", rec.Header().Get("Location"))
	})

	t.Run("post without csrf token", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/login", strings.NewReader("username=admin&password=x"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		func() {
			defer func() { _ = recover() }()
			h.ServeHTTP(rec, req)
		}()
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("metrics", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "ngohub_")
	})
}

func TestAdminCredentialsFromConfig(t *testing.T) {
	cfg := validAppConfig(t)
	creds, err := auth.NewCredentials(cfg.AdminUsername, cfg.AdminPassword, cfg.AdminPasswordHash)
	require.NoError(t, err)
	assert.NoError(t, creds.Verify("admin", "correct horse"))
}

func TestLimitBody(t *testing.T) {
	const uploadMax = 1024
	limit := int64(uploadMax + limits.MultipartOverhead)

	var reached bool
	var readErr error
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		_, readErr = io.ReadAll(r.Body)
	})
	post := func(mw func(http.Handler) http.Handler, size int64, chunked bool) *httptest.ResponseRecorder {
		reached, readErr = false, nil
		req := httptest.NewRequest("POST", "/admin/media/gallery", strings.NewReader(strings.Repeat("x", int(size))))
		if chunked {
			req.ContentLength = -1
		}
		rec := httptest.NewRecorder()
		mw(next).ServeHTTP(rec, req)
		return rec
	}

	t.Run("at the limit", func(t *testing.T) {
		post(limitBody(uploadMax), limit, false)
		assert.True(t, reached)
		assert.NoError(t, readErr)
	})

	t.Run("declared length over the limit", func(t *testing.T) {
		rec := post(limitBody(uploadMax), limit+1, false)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.False(t, reached)
	})

	t.Run("chunked body over the limit", func(t *testing.T) {
		post(limitBody(uploadMax), limit+1, true)
		require.True(t, reached)
		var mbe *http.MaxBytesError
		require.True(t, errors.As(readErr, &mbe), "got %v", readErr)
		assert.Equal(t, limit, mbe.Limit)
	})

	t.Run("no upload limit", func(t *testing.T) {
		post(limitBody(0), limit+1, false)
		assert.True(t, reached)
		assert.NoError(t, readErr)
	})
}

func TestBuildHandler_OversizedPostGets413(t *testing.T) {
	h := buildTestHandler(t)

	req := httptest.NewRequest("POST", "/admin/media/gallery", strings.NewReader("x"))
	req.ContentLength = validAppConfig(t).UploadMaxBytes() + limits.MultipartOverhead + 1
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
