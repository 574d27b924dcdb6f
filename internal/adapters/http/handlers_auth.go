package web

import (
	"errors"
	"net/http"

	"clubadmin/internal/adapters/http/middleware"
	"clubadmin/internal/application/orchestrators"
	"clubadmin/internal/domain/account"
)

// handleLoginForm handles GET /login
func (s *server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetSessionFromContext(r.Context()); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	renderTemplate(w, r, "login.html", map[string]any{})
}

// handleLogin handles POST /login
func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	input := orchestrators.LoginInput{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}
	deps := orchestrators.LoginDeps{
		Gateway:  s.API,
		Sessions: s.Sessions,
		Clock:    s.Clock,
	}

	result, err := orchestrators.ExecuteLogin(r.Context(), input, deps)
	if err != nil {
		msg, ok := loginMessage(err)
		if !ok {
			internalError(w, r, err)
			return
		}
		renderTemplate(w, r, "login.html", map[string]any{
			"Email": input.Email,
			"Error": msg,
		})
		return
	}

	maxAge := int(result.ExpiresAt.Sub(s.Clock.Now()).Seconds())
	middleware.SetSessionCookie(w, result.SessionID, maxAge, s.Config.IsProduction())
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// loginMessage picks the text for a failed login. Failures the user cannot
// act on report ok=false.
func loginMessage(err error) (string, bool) {
	var cmd *orchestrators.CommandError
	switch {
	case errors.As(err, &cmd):
		return cmd.Message, true
	case errors.Is(err, account.ErrEmptyEmail),
		errors.Is(err, account.ErrInvalidEmail),
		errors.Is(err, account.ErrEmptyPassword):
		return err.Error(), true
	}
	return "", false
}

// handleLogout handles POST /logout
func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		if err := orchestrators.ExecuteLogout(r.Context(), cookie.Value, orchestrators.LogoutDeps{Sessions: s.Sessions}); err != nil {
			internalError(w, r, err)
			return
		}
	}
	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
