// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/ngohub/internal/app/system/inputval"
	"github.com/dalemusser/ngohub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

const (
	devSessionKey    = "dev-only-change-me-please-0123456789ABCDEF"
	devCSRFKey       = "dev-only-csrf-key-0123456789abcd"
	devAdminPassword = "admin123"
)

// appConfigKeys defines the configuration keys for NGOHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: db_path, session_name, etc.
//   - Environment variables: NGOHUB_DB_PATH, NGOHUB_SESSION_NAME, etc.
//   - Command-line flags: --db_path, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "db_path", Default: "ngohub.db", Desc: "SQLite database file"},
	{Name: "db_max_open_conns", Default: 1, Desc: "Max open SQLite connections (default: 1)"},
	{Name: "seed_defaults", Default: true, Desc: "Insert default content into empty tables at startup"},

	{Name: "upload_dir", Default: "./uploads", Desc: "Directory for uploaded images"},
	{Name: "upload_url", Default: "/uploads", Desc: "URL prefix uploaded images are served under"},
	{Name: "upload_max_mb", Default: 10, Desc: "Maximum image upload size in MB"},
	{Name: "upload_sweep_interval", Default: "6h", Desc: "How often to remove orphaned uploads (0 disables)"},
	{Name: "upload_sweep_grace", Default: "24h", Desc: "Minimum age of an orphaned upload before removal"},

	{Name: "session_key", Default: devSessionKey, Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "ngohub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "12h", Desc: "Admin session lifetime (e.g., 12h, 30m)"},
	{Name: "csrf_key", Default: devCSRFKey, Desc: "CSRF token key, exactly 32 characters"},

	{Name: "admin_username", Default: "admin", Desc: "Admin login name"},
	{Name: "admin_password", Default: devAdminPassword, Desc: "Admin password (hashed at startup)"},
	{Name: "admin_password_hash", Default: "", Desc: "Admin bcrypt password hash (overrides admin_password)"},

	{Name: "site_name", Default: models.DefaultSiteName, Desc: "Organization name shown in the header"},
	{Name: "contact_email", Default: "contact@helpinghands.org", Desc: "Public contact email"},
	{Name: "media_contact_email", Default: "media@helpinghands.org", Desc: "Contact email for media enquiries"},
	{Name: "donate_url", Default: "mailto:contact@helpinghands.org?subject=Donation", Desc: "Donate Now button target (http(s) URL, site path or mailto link)"},
	{Name: "volunteer_url", Default: "mailto:contact@helpinghands.org?subject=Volunteering", Desc: "Become a Volunteer button target (http(s) URL, site path or mailto link)"},

	{Name: "metrics_enabled", Default: true, Desc: "Expose Prometheus metrics at /metrics"},

	{Name: "timeout_ping", Default: "2s", Desc: "Health check timeout"},
	{Name: "timeout_short", Default: "5s", Desc: "Single-row query timeout"},
	{Name: "timeout_medium", Default: "10s", Desc: "Page load timeout"},
	{Name: "timeout_long", Default: "30s", Desc: "Multi-table write timeout"},
	{Name: "timeout_upload", Default: "60s", Desc: "Image upload timeout"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, NGOHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "NGOHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		DBPath:         appValues.String("db_path"),
		DBMaxOpenConns: appValues.Int("db_max_open_conns"),
		SeedDefaults:   appValues.Bool("seed_defaults"),

		UploadDir:   appValues.String("upload_dir"),
		UploadURL:   appValues.String("upload_url"),
		UploadMaxMB: appValues.Int("upload_max_mb"),

		UploadSweepInterval: appValues.Duration("upload_sweep_interval", 6*time.Hour),
		UploadSweepGrace:    appValues.Duration("upload_sweep_grace", 24*time.Hour),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 12*time.Hour),
		CSRFKey:       appValues.String("csrf_key"),

		AdminUsername:     appValues.String("admin_username"),
		AdminPassword:     appValues.String("admin_password"),
		AdminPasswordHash: appValues.String("admin_password_hash"),

		SiteName:          appValues.String("site_name"),
		ContactEmail:      appValues.String("contact_email"),
		MediaContactEmail: appValues.String("media_contact_email"),
		DonateURL:         appValues.String("donate_url"),
		VolunteerURL:      appValues.String("volunteer_url"),

		MetricsEnabled: appValues.Bool("metrics_enabled"),

		TimeoutPing:   appValues.Duration("timeout_ping", 0),
		TimeoutShort:  appValues.Duration("timeout_short", 0),
		TimeoutMedium: appValues.Duration("timeout_medium", 0),
		TimeoutLong:   appValues.Duration("timeout_long", 0),
		TimeoutUpload: appValues.Duration("timeout_upload", 0),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Field rules live in the AppConfig struct tags; the checks below need
// more than one field or the environment.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if res := inputval.Validate(appCfg); res.HasErrors() {
		logger.Error("invalid configuration", zap.String("errors", res.All()))
		return fmt.Errorf("invalid configuration: %s", res.All())
	}

	if appCfg.AdminPassword == "" && appCfg.AdminPasswordHash == "" {
		return errors.New("admin_password or admin_password_hash must be set")
	}

	if coreCfg != nil && coreCfg.Env == "prod" {
		if appCfg.SessionKey == devSessionKey {
			return errors.New("session_key must be changed in production")
		}
		if appCfg.CSRFKey == devCSRFKey {
			return errors.New("csrf_key must be changed in production")
		}
		if appCfg.AdminPasswordHash == "" && appCfg.AdminPassword == devAdminPassword {
			return errors.New("the default admin password cannot be used in production; set admin_password_hash")
		}
	} else if appCfg.AdminPasswordHash == "" && appCfg.AdminPassword == devAdminPassword {
		logger.Warn("using the default admin password; set admin_password_hash before deploying")
	}

	return nil
}
