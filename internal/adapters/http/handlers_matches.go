package web

import (
	"net/http"

	"clubadmin/internal/application/listutil"
	"clubadmin/internal/application/orchestrators"
	"clubadmin/internal/application/projections"
	"clubadmin/internal/domain/entity"
	"clubadmin/internal/domain/match"
)

// handleMatchList handles GET /matches?tab=all|upcoming
func (s *server) handleMatchList(w http.ResponseWriter, r *http.Request) {
	q := listutil.ParseQuery(r.URL.Query(), projections.ListTabs...)
	result, err := projections.QueryMatchList(r.Context(), q, s.API)
	if err != nil {
		s.upstreamError(w, r, err)
		return
	}
	respond(w, r, "matches_list.html", map[string]any{
		"L":              result,
		"Tabs":           projections.ListTabs,
		"PerPageOptions": listutil.PerPageOptions,
	}, result)
}

// handleMatchDetail handles GET /matches/{id}
func (s *server) handleMatchDetail(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryMatchDetail(r.Context(), pathID(r, "id"), s.API)
	if err != nil {
		s.upstreamError(w, r, err)
		return
	}
	respond(w, r, "match_detail.html", map[string]any{"M": result}, result)
}

// renderMatchForm renders the create form when id is zero, the edit form otherwise.
func (s *server) renderMatchForm(w http.ResponseWriter, r *http.Request, id entity.ID, form match.Form, msg string) {
	opts, err := projections.QueryFormOptions(r.Context(),
		projections.FormOptionsQuery{Teams: true},
		projections.FormOptionsDeps{Teams: s.API},
	)
	if err != nil {
		s.upstreamError(w, r, err)
		return
	}
	renderTemplate(w, r, "match_form.html", map[string]any{
		"ID":       id,
		"Form":     form,
		"Error":    msg,
		"Options":  opts,
		"Statuses": match.Statuses,
	})
}

func matchFormFrom(r *http.Request) match.Form {
	return match.Form{
		HomeTeamID:  r.FormValue("homeTeamId"),
		AwayTeamID:  r.FormValue("awayTeamId"),
		MatchDate:   r.FormValue("matchDate"),
		Venue:       r.FormValue("venue"),
		Competition: r.FormValue("competition"),
		Round:       r.FormValue("round"),
		Status:      r.FormValue("status"),
		Notes:       r.FormValue("notes"),
	}
}

// handleMatchNew handles GET /matches/new
func (s *server) handleMatchNew(w http.ResponseWriter, r *http.Request) {
	s.renderMatchForm(w, r, "", match.Form{Status: string(match.StatusScheduled)}, "")
}

// handleMatchCreate handles POST /matches
func (s *server) handleMatchCreate(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	form := matchFormFrom(r)
	id, err := orchestrators.ExecuteCreateMatch(r.Context(), form, s.API)
	if err != nil {
		msg, handled := s.formFailed(w, r, err)
		if !handled {
			s.renderMatchForm(w, r, "", form, msg)
		}
		return
	}
	http.Redirect(w, r, "/matches/"+id.String(), http.StatusSeeOther)
}

// handleMatchEdit handles GET /matches/{id}/edit
func (s *server) handleMatchEdit(w http.ResponseWriter, r *http.Request) {
	m, err := s.API.GetMatch(r.Context(), pathID(r, "id"))
	if err != nil {
		s.upstreamError(w, r, err)
		return
	}
	s.renderMatchForm(w, r, m.ID, match.FormFrom(m), "")
}

// handleMatchUpdate handles POST /matches/{id}/edit
func (s *server) handleMatchUpdate(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	id := pathID(r, "id")
	form := matchFormFrom(r)
	if err := orchestrators.ExecuteUpdateMatch(r.Context(), id, form, s.API); err != nil {
		msg, handled := s.formFailed(w, r, err)
		if !handled {
			s.renderMatchForm(w, r, id, form, msg)
		}
		return
	}
	http.Redirect(w, r, "/matches/"+id.String(), http.StatusSeeOther)
}

// handleMatchScore handles POST /matches/{id}/score
func (s *server) handleMatchScore(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	id := pathID(r, "id")
	back := "/matches/" + id.String()
	if err := orchestrators.ExecuteUpdateMatchScore(r.Context(), id, r.FormValue("homeScore"), r.FormValue("awayScore"), s.API); err != nil {
		s.commandError(w, r, err, back)
		return
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

// handleMatchDelete handles POST /matches/{id}/delete
func (s *server) handleMatchDelete(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	if err := orchestrators.ExecuteDelete(r.Context(), "partido", id, s.API.DeleteMatch); err != nil {
		s.commandError(w, r, err, "/matches/"+id.String())
		return
	}
	http.Redirect(w, r, "/matches", http.StatusSeeOther)
}
