package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"

	"clubadmin/internal/adapters/clubapi"
	"clubadmin/internal/adapters/http/middleware"
	"clubadmin/internal/application/listutil"
	"clubadmin/internal/application/orchestrators"
	"clubadmin/internal/application/present"
	"clubadmin/internal/domain/account"
	"clubadmin/internal/domain/entity"
	"clubadmin/internal/domain/event"
	"clubadmin/internal/domain/registration"
	"clubadmin/internal/domain/training"
)

//go:embed templates/*.html static/*
var assets embed.FS

// msgLoadFailed is shown when the club API answers a read with an error
// that carries no message.
const msgLoadFailed = "Error al cargar los datos"

// baseFuncs are the request-independent template helpers.
var baseFuncs = template.FuncMap{
	"currency":      present.Currency,
	"eventCost":     present.EventCost,
	"date":          present.Date,
	"dateTime":      present.DateTime,
	"clock":         present.Clock,
	"longDate":      present.LongDate,
	"minutes":       present.Minutes,
	"markdown":      present.Markdown,
	"initials":      present.Initials,
	"positionLabel": present.PositionLabel,
	"handLabel":     present.HandLabel,
	"activeLabel":   present.ActiveLabel,

	"trainingTypeColor": training.TypeColor,
	"eventTypeColor":    event.TypeColor,

	"hasPrefix": strings.HasPrefix,
	"add":       func(a, b int) int { return a + b },
	"sub":       func(a, b int) int { return a - b },
	"paginationQuery": func(page int, q listutil.Query) template.URL {
		v := url.Values{}
		v.Set("page", fmt.Sprint(page))
		v.Set("per_page", fmt.Sprint(q.PerPage))
		if q.Search != "" {
			v.Set("q", q.Search)
		}
		if q.Tab != "" {
			v.Set("tab", q.Tab)
		}
		return template.URL(v.Encode())
	},
	"contains": func(list []string, s string) bool {
		for _, v := range list {
			if v == s {
				return true
			}
		}
		return false
	},
	// Request-bound helpers; renderTemplate replaces these per request.
	"csrfField":   func() template.HTML { return "" },
	"currentUser": func() account.Identity { return account.Identity{} },
	"isLoggedIn":  func() bool { return false },
	"can":         func(string) bool { return false },
	"navigation":  func() []account.NavEntry { return nil },
	"currentPath": func() string { return "" },
}

// pages holds every page parsed together with the layout.
var pages = parsePages()

func parsePages() map[string]*template.Template {
	names, err := fs.Glob(assets, "templates/*.html")
	if err != nil {
		panic(err)
	}
	out := make(map[string]*template.Template, len(names))
	for _, path := range names {
		name := strings.TrimPrefix(path, "templates/")
		if name == "layout.html" || name == "partials.html" {
			continue
		}
		out[name] = template.Must(template.New("layout.html").Funcs(baseFuncs).
			ParseFS(assets, "templates/layout.html", "templates/partials.html", path))
	}
	return out
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "internal_error",
		"request_id", clubapi.RequestIDFromContext(r.Context()),
		"path", r.URL.Path,
		"error", err.Error(),
	)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func isHTMLRequest(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "application/xhtml+xml")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json_encode_failed", "error", err.Error())
	}
}

// renderTemplate renders a page inside the layout with status 200.
func renderTemplate(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	renderStatus(w, r, http.StatusOK, name, data)
}

// renderStatus renders a page inside the layout. The page is rendered into a
// buffer first so a template failure never leaves half a page behind.
func renderStatus(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) {
	page, ok := pages[name]
	if !ok {
		internalError(w, r, fmt.Errorf("unknown template %q", name))
		return
	}

	sess, loggedIn := middleware.GetSessionFromContext(r.Context())
	var nav []account.NavEntry
	if loggedIn {
		nav = account.NavigationFor(sess.Identity.Role)
	}
	tpl, err := page.Clone()
	if err != nil {
		internalError(w, r, err)
		return
	}
	tpl.Funcs(template.FuncMap{
		"csrfField":   func() template.HTML { return csrf.TemplateField(r) },
		"currentUser": func() account.Identity { return sess.Identity },
		"isLoggedIn":  func() bool { return loggedIn },
		"can":         func(c string) bool { return loggedIn && sess.Identity.Role.Can(account.Capability(c)) },
		"navigation":  func() []account.NavEntry { return nav },
		"currentPath": func() string { return r.URL.Path },
	})

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		internalError(w, r, fmt.Errorf("render %s: %w", name, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.WarnContext(r.Context(), "response_write_failed", "error", err.Error())
	}
}

// respond renders name for browsers and v as JSON for everyone else.
func respond(w http.ResponseWriter, r *http.Request, name string, data map[string]any, v any) {
	if isHTMLRequest(r) {
		renderTemplate(w, r, name, data)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// renderError shows a message page, or a JSON error for API clients.
func renderError(w http.ResponseWriter, r *http.Request, status int, message, back string) {
	if !isHTMLRequest(r) {
		writeJSON(w, status, map[string]string{"error": message})
		return
	}
	renderStatus(w, r, status, "error.html", map[string]any{
		"Status":  status,
		"Message": message,
		"Back":    back,
	})
}

func (s *server) notFound(w http.ResponseWriter, r *http.Request) {
	renderError(w, r, http.StatusNotFound, "La página que buscas no existe", "/dashboard")
}

// endSession destroys the local session after the club API rejected its
// token, so the next page load goes through /login.
func (s *server) endSession(w http.ResponseWriter, r *http.Request) {
	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		if err := orchestrators.ExecuteLogout(r.Context(), sess.ID, orchestrators.LogoutDeps{Sessions: s.Sessions}); err != nil {
			slog.ErrorContext(r.Context(), "session_delete_failed", "error", err.Error())
		}
		slog.InfoContext(r.Context(), "auth_event", "event", "token_rejected", "email", sess.Identity.Email)
	}
	middleware.ClearSessionCookie(w)
	if !isHTMLRequest(r) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// upstreamError answers a failed read of the club API.
func (s *server) upstreamError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *clubapi.APIError
	switch {
	case clubapi.IsUnauthorized(err):
		s.endSession(w, r)
	case clubapi.IsNotFound(err):
		s.notFound(w, r)
	case clubapi.IsTransport(err):
		slog.WarnContext(r.Context(), "upstream_unreachable", "path", r.URL.Path, "error", err.Error())
		renderError(w, r, http.StatusBadGateway, orchestrators.MsgTransport, "/dashboard")
	case errors.As(err, &apiErr):
		renderError(w, r, http.StatusBadGateway, clubapi.ErrorMessage(err, msgLoadFailed), "/dashboard")
	default:
		internalError(w, r, err)
	}
}

// commandError answers a failed mutation that has no form to re-render.
// back is where the error page links to.
func (s *server) commandError(w http.ResponseWriter, r *http.Request, err error, back string) {
	var cmd *orchestrators.CommandError
	switch {
	case clubapi.IsUnauthorized(err):
		s.endSession(w, r)
	case clubapi.IsNotFound(err):
		s.notFound(w, r)
	case errors.As(err, &cmd):
		renderError(w, r, http.StatusBadGateway, cmd.Message, back)
	default:
		renderError(w, r, http.StatusUnprocessableEntity, err.Error(), back)
	}
}

// formFailed reports the message to show above a re-rendered form. A rejected
// token ends the session instead and handled is true.
func (s *server) formFailed(w http.ResponseWriter, r *http.Request, err error) (msg string, handled bool) {
	if clubapi.IsUnauthorized(err) {
		s.endSession(w, r)
		return "", true
	}
	return orchestrators.Message(err), false
}

// parseForm parses a form post, answering 400 when the body is unreadable.
func parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return false
	}
	return true
}

// pathID reads a chi path parameter as an entity ID.
func pathID(r *http.Request, name string) entity.ID {
	return entity.ID(chi.URLParam(r, name))
}

func parseOwnership(r *http.Request) registration.Ownership {
	return registration.Ownership{
		Mode: registration.Mode(r.FormValue("mode")),
		Account: registration.NewAccount{
			FirstName:      r.FormValue("firstName"),
			LastName:       r.FormValue("lastName"),
			Email:          r.FormValue("email"),
			Password:       r.FormValue("password"),
			Phone:          r.FormValue("phone"),
			DocumentNumber: r.FormValue("documentNumber"),
		},
		UserID: r.FormValue("userId"),
	}
}

// fieldErrors maps each failed field to its message for inline display.
func fieldErrors(err error) map[string]string {
	var verr *registration.ValidationError
	if !errors.As(err, &verr) {
		return nil
	}
	out := make(map[string]string, len(verr.Fields))
	for _, f := range verr.Fields {
		out[f.Field] = f.Err.Error()
	}
	return out
}
