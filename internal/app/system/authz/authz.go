// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/dalemusser/ngohub/internal/app/system/auth"
)

// RoleVisitor is reported for requests without a signed-in user.
const RoleVisitor = "visitor"

// UserCtx returns the user's role (lowercased), display name, and a found flag.
// If no user is present in context it returns "visitor", "", false.
func UserCtx(r *http.Request) (role string, name string, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok || user == nil {
		return RoleVisitor, "", false
	}
	return strings.ToLower(user.Role), user.Name, true
}

// IsAdmin reports whether the current request's user is the admin.
func IsAdmin(r *http.Request) bool {
	role, _, ok := UserCtx(r)
	return ok && role == auth.RoleAdmin
}

// Actor returns a short identifier for logs: the user ID, or "anonymous".
func Actor(r *http.Request) string {
	if u, ok := auth.CurrentUser(r); ok && u.ID != "" {
		return u.ID
	}
	return "anonymous"
}
