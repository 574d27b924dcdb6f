package web

import (
	"net/http"

	"clubadmin/internal/application/listutil"
	"clubadmin/internal/application/orchestrators"
	"clubadmin/internal/application/projections"
	"clubadmin/internal/domain/entity"
	"clubadmin/internal/domain/team"
)

// handleTeamList handles GET /teams
func (s *server) handleTeamList(w http.ResponseWriter, r *http.Request) {
	q := listutil.ParseQuery(r.URL.Query())
	result, err := projections.QueryTeamList(r.Context(), q, s.API)
	if err != nil {
		s.upstreamError(w, r, err)
		return
	}
	respond(w, r, "teams_list.html", map[string]any{
		"L":              result,
		"PerPageOptions": listutil.PerPageOptions,
	}, result)
}

// handleTeamDetail handles GET /teams/{id}
func (s *server) handleTeamDetail(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryTeamDetail(r.Context(), pathID(r, "id"), projections.TeamDetailDeps{
		Teams:   s.API,
		Players: s.API,
	})
	if err != nil {
		s.upstreamError(w, r, err)
		return
	}
	respond(w, r, "team_detail.html", map[string]any{"T": result}, result)
}

// renderTeamForm renders the create form when id is zero, the edit form otherwise.
func (s *server) renderTeamForm(w http.ResponseWriter, r *http.Request, id entity.ID, form team.Form, msg string) {
	opts, err := projections.QueryFormOptions(r.Context(),
		projections.FormOptionsQuery{Coaches: true},
		projections.FormOptionsDeps{Coaches: s.API},
	)
	if err != nil {
		s.upstreamError(w, r, err)
		return
	}
	renderTemplate(w, r, "team_form.html", map[string]any{
		"ID":         id,
		"Form":       form,
		"Error":      msg,
		"Options":    opts,
		"Categories": team.Categories,
		"Divisions":  team.Divisions,
	})
}

func teamFormFrom(r *http.Request) team.Form {
	return team.Form{
		Name:           r.FormValue("name"),
		Category:       r.FormValue("category"),
		Division:       r.FormValue("division"),
		FoundedYear:    r.FormValue("foundedYear"),
		HeadCoachID:    r.FormValue("headCoachId"),
		PrimaryColor:   r.FormValue("primaryColor"),
		SecondaryColor: r.FormValue("secondaryColor"),
	}
}

// handleTeamNew handles GET /teams/new
func (s *server) handleTeamNew(w http.ResponseWriter, r *http.Request) {
	s.renderTeamForm(w, r, "", team.Form{
		Category:       team.DefaultCategory,
		Division:       team.DefaultDivision,
		FoundedYear:    s.Clock.Now().In(s.Config.Location()).Format("2006"),
		PrimaryColor:   team.DefaultPrimaryColor,
		SecondaryColor: team.DefaultSecondaryColor,
	}, "")
}

// handleTeamCreate handles POST /teams
func (s *server) handleTeamCreate(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	form := teamFormFrom(r)
	id, err := orchestrators.ExecuteCreateTeam(r.Context(), form, s.API)
	if err != nil {
		msg, handled := s.formFailed(w, r, err)
		if !handled {
			s.renderTeamForm(w, r, "", form, msg)
		}
		return
	}
	http.Redirect(w, r, "/teams/"+id.String(), http.StatusSeeOther)
}

// handleTeamEdit handles GET /teams/{id}/edit
func (s *server) handleTeamEdit(w http.ResponseWriter, r *http.Request) {
	t, err := s.API.GetTeam(r.Context(), pathID(r, "id"))
	if err != nil {
		s.upstreamError(w, r, err)
		return
	}
	s.renderTeamForm(w, r, t.ID, team.FormFrom(t), "")
}

// handleTeamUpdate handles POST /teams/{id}/edit
func (s *server) handleTeamUpdate(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	id := pathID(r, "id")
	form := teamFormFrom(r)
	if err := orchestrators.ExecuteUpdateTeam(r.Context(), id, form, s.API); err != nil {
		msg, handled := s.formFailed(w, r, err)
		if !handled {
			s.renderTeamForm(w, r, id, form, msg)
		}
		return
	}
	http.Redirect(w, r, "/teams/"+id.String(), http.StatusSeeOther)
}

// handleTeamAddPlayers handles POST /teams/{id}/players
func (s *server) handleTeamAddPlayers(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	id := pathID(r, "id")
	back := "/teams/" + id.String()
	if err := orchestrators.ExecuteAddTeamPlayers(r.Context(), id, r.Form["playerIds"], s.API); err != nil {
		s.commandError(w, r, err, back)
		return
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

// handleTeamDelete handles POST /teams/{id}/delete
func (s *server) handleTeamDelete(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	if err := orchestrators.ExecuteDelete(r.Context(), "equipo", id, s.API.DeleteTeam); err != nil {
		s.commandError(w, r, err, "/teams/"+id.String())
		return
	}
	http.Redirect(w, r, "/teams", http.StatusSeeOther)
}
