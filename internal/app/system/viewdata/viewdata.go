// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"
	"sync"
	"time"

	"github.com/dalemusser/ngohub/internal/app/system/auth"
	"github.com/dalemusser/ngohub/internal/app/system/authz"
	"github.com/dalemusser/ngohub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
)

// Site holds the site-wide values every page shows in its header and footer.
type Site struct {
	Name              string
	ContactEmail      string
	MediaContactEmail string
	DonateURL         string
	VolunteerURL      string
}

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type aboutData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := aboutData{
//	    BaseVM: viewdata.NewBaseVM(w, r, "About Us", "/"),
//	}
type BaseVM struct {
	Site Site

	// User context (from auth middleware)
	IsLoggedIn bool
	IsAdmin    bool
	Role       string
	UserName   string

	// Page context
	Title       string
	BackURL     string
	CurrentPath string
	Year        int

	// CSRF protection
	CSRFToken string

	// One-shot messages from the previous POST
	Flashes []auth.Flash
}

var (
	mu         sync.RWMutex
	site       = withDefaults(Site{})
	sessionMgr *auth.SessionManager
)

// Init sets the site values and the session manager used to pop flashes.
// Call this once at startup from bootstrap.
func Init(s Site, sm *auth.SessionManager) {
	mu.Lock()
	defer mu.Unlock()
	site = withDefaults(s)
	sessionMgr = sm
}

// withDefaults fills the site name and the call-to-action links.
func withDefaults(s Site) Site {
	if s.Name == "" {
		s.Name = models.DefaultSiteName
	}
	if s.DonateURL == "" {
		s.DonateURL = ctaFallback(s.ContactEmail, "Donation")
	}
	if s.VolunteerURL == "" {
		s.VolunteerURL = ctaFallback(s.ContactEmail, "Volunteering")
	}
	return s
}

// GetInvolvedAnchor is the About page section holding the call-to-action buttons.
const GetInvolvedAnchor = "/about#get-involved"

// ctaFallback mails the contact address, or points at the About page
// section when no address is configured.
func ctaFallback(email, subject string) string {
	if email == "" {
		return GetInvolvedAnchor
	}
	return "mailto:" + email + "?subject=" + subject
}

// NewBaseVM creates a fully populated BaseVM for a page. It pops pending
// flashes, so call it before writing anything to w.
func NewBaseVM(w http.ResponseWriter, r *http.Request, title, backDefault string) BaseVM {
	role, name, signedIn := authz.UserCtx(r)

	mu.RLock()
	s, sm := site, sessionMgr
	mu.RUnlock()

	vm := BaseVM{
		Site:        s,
		IsLoggedIn:  signedIn,
		IsAdmin:     authz.IsAdmin(r),
		Role:        role,
		UserName:    name,
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
		Year:        time.Now().Year(),
		CSRFToken:   csrf.Token(r),
	}
	if sm != nil && w != nil {
		vm.Flashes = sm.Flashes(w, r)
	}
	return vm
}
