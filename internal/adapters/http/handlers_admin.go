package web

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"clubadmin/internal/adapters/http/middleware"
	"clubadmin/internal/adapters/http/perf"
	"clubadmin/internal/application/projections"
)

// handleDashboard handles GET /dashboard
func (s *server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	result, err := projections.QueryDashboard(r.Context(),
		projections.DashboardQuery{Identity: sess.Identity},
		projections.DashboardDeps{Gateway: s.API, Clock: s.Clock},
	)
	if err != nil {
		s.upstreamError(w, r, err)
		return
	}
	respond(w, r, "dashboard.html", map[string]any{"D": result}, result)
}

// handleSettings handles GET /settings
func (s *server) handleSettings(w http.ResponseWriter, r *http.Request) {
	settings := map[string]any{
		"APIURL":    s.Config.APIURL,
		"Env":       s.Config.Env,
		"PublicURL": s.Config.PublicURL,
		"TimeZone":  s.Config.TimeZone,
		"Version":   s.Version,
		"Mail":      s.Mailer != nil && s.Config.ResendKey != "",
	}
	respond(w, r, "settings.html", settings, settings)
}

// perfWindow is the default look-back of the perf page.
const perfWindow = time.Hour

// handlePerf handles GET /admin/perf. ?minutes= narrows the window.
func (s *server) handlePerf(w http.ResponseWriter, r *http.Request) {
	window := perfWindow
	if m, err := strconv.Atoi(r.URL.Query().Get("minutes")); err == nil && m > 0 {
		window = time.Duration(m) * time.Minute
	}
	var snap perf.Snapshot
	if s.Collector != nil {
		snap = s.Collector.Snapshot(s.Clock.Now().Add(-window), 10)
	}
	respond(w, r, "perf.html", map[string]any{
		"Snapshot": snap,
		"Minutes":  int(window / time.Minute),
	}, snap)
}

// handleHealthz handles GET /healthz
func (s *server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if s.DB != nil {
		if err := s.DB.PingContext(ctx); err != nil {
			slog.ErrorContext(ctx, "health_check_failed", "error", err.Error())
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": s.Version})
}
