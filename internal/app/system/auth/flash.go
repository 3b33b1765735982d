package auth

import (
	"net/http"

	"go.uber.org/zap"
)

const (
	flashKey      = "_flash"
	flashErrorKey = "_flash_error"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Kind string // "success" or "error"
	Text string
}

// IsError reports whether the flash reports a failure.
func (f Flash) IsError() bool { return f.Kind == "error" }

// AddFlash queues a success message for the next rendered page.
// A failure to save is logged and otherwise ignored; the mutation the
// flash describes has already happened.
func (sm *SessionManager) AddFlash(w http.ResponseWriter, r *http.Request, msg string) {
	sm.addFlash(w, r, msg, flashKey)
}

// AddError queues an error message for the next rendered page.
func (sm *SessionManager) AddError(w http.ResponseWriter, r *http.Request, msg string) {
	sm.addFlash(w, r, msg, flashErrorKey)
}

func (sm *SessionManager) addFlash(w http.ResponseWriter, r *http.Request, msg, key string) {
	sess, err := sm.GetSession(r)
	if err != nil {
		sm.log.Warn("flash: session decode failed", zap.Error(err))
	}
	sess.AddFlash(msg, key)
	if err := sess.Save(r, w); err != nil {
		sm.log.Warn("flash: save session failed", zap.Error(err))
	}
}

// Flashes pops queued messages, errors first. It must run before the
// response body is written because it rewrites the session cookie.
func (sm *SessionManager) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	sess, err := sm.GetSession(r)
	if err != nil {
		return nil
	}
	errs := sess.Flashes(flashErrorKey)
	oks := sess.Flashes(flashKey)
	if len(errs) == 0 && len(oks) == 0 {
		return nil
	}
	if err := sess.Save(r, w); err != nil {
		sm.log.Warn("flash: save session failed", zap.Error(err))
	}

	out := make([]Flash, 0, len(errs)+len(oks))
	for _, v := range errs {
		if s, ok := v.(string); ok {
			out = append(out, Flash{Kind: "error", Text: s})
		}
	}
	for _, v := range oks {
		if s, ok := v.(string); ok {
			out = append(out, Flash{Kind: "success", Text: s})
		}
	}
	return out
}
