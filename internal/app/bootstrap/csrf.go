// internal/app/bootstrap/csrf.go
package bootstrap

import (
	"net/http"

	errorsfeature "github.com/dalemusser/ngohub/internal/app/features/errors"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// csrfProtect returns middleware that rejects unsafe requests without a
// valid gorilla.csrf.Token form field or X-CSRF-Token header.
//
// gorilla/csrf assumes TLS and checks the Referer against https origins.
// Outside production the app is served over plain http, so each request
// is marked plaintext before the check runs.
func csrfProtect(key string, secure bool, logger *zap.Logger) func(http.Handler) http.Handler {
	protect := csrf.Protect([]byte(key),
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Warn("csrf check failed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Error(csrf.FailureReason(r)))
			errorsfeature.RenderForbidden(w, r,
				"Your form has expired. Please reload the page and try again.", r.URL.Path)
		})),
	)

	return func(next http.Handler) http.Handler {
		h := protect(next)
		if secure {
			return h
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.TLS == nil {
				r = csrf.PlaintextHTTPRequest(r)
			}
			h.ServeHTTP(w, r)
		})
	}
}
