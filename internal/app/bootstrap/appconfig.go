// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - Request body size limits
//
// The label tags name fields in validation messages (see ValidateConfig).
type AppConfig struct {
	// SQLite content database
	DBPath         string `validate:"required" label:"db_path"`
	DBMaxOpenConns int    `validate:"min=0,max=64" label:"db_max_open_conns"`
	SeedDefaults   bool   // insert default content into empty tables at startup

	// Uploaded images
	UploadDir   string `validate:"required" label:"upload_dir"`
	UploadURL   string `validate:"required,startswith=/" label:"upload_url"`
	UploadMaxMB int    `validate:"min=1,max=100" label:"upload_max_mb"`

	// Orphaned upload cleanup (zero interval disables the sweeper)
	UploadSweepInterval time.Duration
	UploadSweepGrace    time.Duration

	// Session management configuration
	SessionKey    string        `validate:"required,min=32" label:"session_key"`
	SessionName   string        `validate:"required" label:"session_name"`
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // How long an admin stays signed in

	// CSRF protection (gorilla/csrf needs exactly 32 bytes)
	CSRFKey string `validate:"required,len=32" label:"csrf_key"`

	// The single admin account
	AdminUsername     string `validate:"required,max=100" label:"admin_username"`
	AdminPassword     string // plaintext, hashed at startup; ignored when AdminPasswordHash is set
	AdminPasswordHash string // bcrypt hash

	// Public site details
	SiteName          string `validate:"required,max=200" label:"site_name"`
	ContactEmail      string `validate:"omitempty,email" label:"contact_email"`
	MediaContactEmail string `validate:"omitempty,email" label:"media_contact_email"`
	DonateURL         string `validate:"omitempty,link" label:"donate_url"`
	VolunteerURL      string `validate:"omitempty,link" label:"volunteer_url"`

	MetricsEnabled bool // expose /metrics

	// Handler timeouts (zero keeps the defaults in system/timeouts)
	TimeoutPing   time.Duration
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutLong   time.Duration
	TimeoutUpload time.Duration
}

// UploadMaxBytes returns the per-file upload limit in bytes.
func (c AppConfig) UploadMaxBytes() int64 {
	return int64(c.UploadMaxMB) << 20
}
