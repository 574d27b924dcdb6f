package web

import (
	"net/http"

	"clubadmin/internal/adapters/http/middleware"
	"clubadmin/internal/application/listutil"
	"clubadmin/internal/application/orchestrators"
	"clubadmin/internal/application/projections"
	"clubadmin/internal/domain/account"
	"clubadmin/internal/domain/player"
	"clubadmin/internal/domain/registration"
)

// handlePlayerList handles GET /players
func (s *server) handlePlayerList(w http.ResponseWriter, r *http.Request) {
	q := listutil.ParseQuery(r.URL.Query())
	result, err := projections.QueryPlayerList(r.Context(), q, s.API)
	if err != nil {
		s.upstreamError(w, r, err)
		return
	}
	respond(w, r, "players_list.html", map[string]any{
		"L":              result,
		"PerPageOptions": listutil.PerPageOptions,
	}, result)
}

// handlePlayerDetail handles GET /players/{id}
func (s *server) handlePlayerDetail(w http.ResponseWriter, r *http.Request) {
	query := projections.PlayerDetailQuery{
		ID:              pathID(r, "id"),
		IncludePayments: middleware.Can(r.Context(), account.NavPayments),
	}
	result, err := projections.QueryPlayerDetail(r.Context(), query, projections.PlayerDetailDeps{
		Players:  s.API,
		Payments: s.API,
	})
	if err != nil {
		s.upstreamError(w, r, err)
		return
	}
	respond(w, r, "player_detail.html", map[string]any{"P": result}, result)
}

func newPlayerForm(s *server) registration.PlayerForm {
	return registration.PlayerForm{
		Ownership:    registration.Ownership{Mode: registration.DefaultMode},
		Position:     string(player.DefaultPosition),
		DominantHand: string(player.HandRight),
		JoinDate:     s.Clock.Now().In(s.Config.Location()).Format("2006-01-02"),
	}
}

func renderPlayerForm(w http.ResponseWriter, r *http.Request, form registration.PlayerForm, msg string, fields map[string]string) {
	renderTemplate(w, r, "player_new.html", map[string]any{
		"Form":       form,
		"Error":      msg,
		"Fields":     fields,
		"Modes":      registration.Modes,
		"Positions":  player.Positions,
		"Categories": player.Categories,
	})
}

// handlePlayerNew handles GET /players/new
func (s *server) handlePlayerNew(w http.ResponseWriter, r *http.Request) {
	renderPlayerForm(w, r, newPlayerForm(s), "", nil)
}

// handlePlayerCreate handles POST /players
func (s *server) handlePlayerCreate(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	form := registration.PlayerForm{
		Ownership:        parseOwnership(r),
		BirthDate:        r.FormValue("birthDate"),
		Position:         r.FormValue("position"),
		JerseyNumber:     r.FormValue("jerseyNumber"),
		Category:         r.FormValue("category"),
		Height:           r.FormValue("height"),
		Weight:           r.FormValue("weight"),
		DominantHand:     r.FormValue("dominantHand"),
		MedicalInfo:      r.FormValue("medicalInfo"),
		EmergencyContact: r.FormValue("emergencyContact"),
		JoinDate:         r.FormValue("joinDate"),
	}
	deps := orchestrators.RegisterPlayerDeps{
		Gateway:  s.API,
		Mailer:   s.Mailer,
		LoginURL: s.Config.PublicURL + "/login",
	}
	if _, err := orchestrators.ExecuteRegisterPlayer(r.Context(), form, deps); err != nil {
		msg, handled := s.formFailed(w, r, err)
		if handled {
			return
		}
		renderPlayerForm(w, r, form, msg, fieldErrors(err))
		return
	}
	http.Redirect(w, r, "/players", http.StatusSeeOther)
}

// handlePlayerActive handles POST /players/{id}/active
func (s *server) handlePlayerActive(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	id := pathID(r, "id")
	back := "/players/" + id.String()
	active := r.FormValue("active") == "true"
	if err := orchestrators.ExecuteSetPlayerActive(r.Context(), id, active, s.API); err != nil {
		s.commandError(w, r, err, back)
		return
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

// handlePlayerDelete handles POST /players/{id}/delete
func (s *server) handlePlayerDelete(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	if err := orchestrators.ExecuteDelete(r.Context(), "jugador", id, s.API.DeletePlayer); err != nil {
		s.commandError(w, r, err, "/players/"+id.String())
		return
	}
	http.Redirect(w, r, "/players", http.StatusSeeOther)
}
