package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"clubadmin/internal/adapters/clubapi"
	"clubadmin/internal/adapters/storage/session"
	"clubadmin/internal/domain/account"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const sessionContextKey contextKey = "session"

// SessionCookieName names the cookie carrying the session id.
const SessionCookieName = "clubadmin_session"

// SessionLoader is the part of the session store Auth needs.
type SessionLoader interface {
	Get(ctx context.Context, id string) (session.Session, error)
}

// Auth loads the session named by the cookie and puts it, and its bearer
// token, on the request context. It does not block anonymous requests; use
// RequireAuth or RequireCapability for that.
func Auth(sessions SessionLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err == nil && cookie.Value != "" {
				s, err := sessions.Get(r.Context(), cookie.Value)
				switch {
				case err == nil:
					r = r.WithContext(ContextWithSession(r.Context(), s))
				case errors.Is(err, session.ErrNotFound):
					ClearSessionCookie(w)
				default:
					slog.ErrorContext(r.Context(), "session_load_failed", "error", err.Error())
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth redirects anonymous requests to /login.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetSessionFromContext(r.Context()); !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireCapability answers 403 to roles the capability table does not grant c.
func RequireCapability(c account.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := GetSessionFromContext(r.Context())
			if !ok {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			if !s.Identity.Role.Can(c) {
				slog.InfoContext(r.Context(), "auth_event",
					"event", "capability_denied",
					"role", string(s.Identity.Role),
					"capability", string(c),
					"path", r.URL.Path,
				)
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetSessionFromContext extracts the session from the request context.
func GetSessionFromContext(ctx context.Context) (session.Session, bool) {
	s, ok := ctx.Value(sessionContextKey).(session.Session)
	return s, ok
}

// ContextWithSession returns a context carrying s and its bearer token.
func ContextWithSession(ctx context.Context, s session.Session) context.Context {
	ctx = context.WithValue(ctx, sessionContextKey, s)
	return clubapi.WithToken(ctx, s.Token)
}

// Can reports whether the current session's role grants c.
func Can(ctx context.Context, c account.Capability) bool {
	s, ok := GetSessionFromContext(ctx)
	return ok && s.Identity.Role.Can(c)
}

// SetSessionCookie sets the session cookie. maxAge is in seconds.
func SetSessionCookie(w http.ResponseWriter, id string, maxAge int, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    id,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   maxAge,
	})
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   -1,
	})
}
