// Package formutil provides helpers for admin form posts.
//
// Every admin mutation follows Post/Redirect/Get: parse the form, apply the
// change, queue a flash message, and 303 back to the admin screen.
//
//	name := formutil.Text(r, "name")
//	if name == "" {
//		formutil.Fail(w, r, h.Flash, "Initiative name is required.", "/admin/home")
//		return
//	}
//	// ... insert ...
//	formutil.Done(w, r, h.Flash, "Initiative added", "/admin/home")
package formutil

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// ErrBadID is returned by ParseID for a missing or non-positive id.
var ErrBadID = errors.New("invalid id")

// Flasher queues one-shot messages (implemented by auth.SessionManager).
type Flasher interface {
	AddFlash(w http.ResponseWriter, r *http.Request, msg string)
	AddError(w http.ResponseWriter, r *http.Request, msg string)
}

// Text returns the trimmed form value for key.
func Text(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

// ParseID reads a positive integer chi URL parameter.
func ParseID(r *http.Request, param string) (int64, error) {
	return parsePositive(chi.URLParam(r, param))
}

// ParseFormID reads a positive integer form field.
func ParseFormID(r *http.Request, key string) (int64, error) {
	return parsePositive(Text(r, key))
}

func parsePositive(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrBadID
	}
	return id, nil
}

// Done queues a success flash and redirects to to.
func Done(w http.ResponseWriter, r *http.Request, f Flasher, msg, to string) {
	if f != nil && msg != "" {
		f.AddFlash(w, r, msg)
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// Fail queues an error flash and redirects to to.
func Fail(w http.ResponseWriter, r *http.Request, f Flasher, msg, to string) {
	if f != nil && msg != "" {
		f.AddError(w, r, msg)
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}
