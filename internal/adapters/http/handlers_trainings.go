package web

import (
	"net/http"

	"clubadmin/internal/application/listutil"
	"clubadmin/internal/application/orchestrators"
	"clubadmin/internal/application/projections"
	"clubadmin/internal/domain/training"
)

// handleTrainingList handles GET /trainings
func (s *server) handleTrainingList(w http.ResponseWriter, r *http.Request) {
	q := listutil.ParseQuery(r.URL.Query())
	result, err := projections.QueryTrainingList(r.Context(), q, s.API)
	if err != nil {
		s.upstreamError(w, r, err)
		return
	}
	respond(w, r, "trainings_list.html", map[string]any{
		"L":              result,
		"PerPageOptions": listutil.PerPageOptions,
	}, result)
}

// handleTrainingDetail handles GET /trainings/{id}
func (s *server) handleTrainingDetail(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryTrainingDetail(r.Context(), pathID(r, "id"), projections.TrainingDetailDeps{
		Trainings: s.API,
		Players:   s.API,
	})
	if err != nil {
		s.upstreamError(w, r, err)
		return
	}
	respond(w, r, "training_detail.html", map[string]any{"T": result}, result)
}

func (s *server) renderTrainingForm(w http.ResponseWriter, r *http.Request, form training.Form, msg string) {
	opts, err := projections.QueryFormOptions(r.Context(),
		projections.FormOptionsQuery{Teams: true, Coaches: true},
		projections.FormOptionsDeps{Teams: s.API, Coaches: s.API},
	)
	if err != nil {
		s.upstreamError(w, r, err)
		return
	}
	renderTemplate(w, r, "training_new.html", map[string]any{
		"Form":    form,
		"Error":   msg,
		"Options": opts,
		"Types":   training.Types,
	})
}

// handleTrainingNew handles GET /trainings/new
func (s *server) handleTrainingNew(w http.ResponseWriter, r *http.Request) {
	s.renderTrainingForm(w, r, training.Form{TrainingType: training.Types[0]}, "")
}

// handleTrainingCreate handles POST /trainings
func (s *server) handleTrainingCreate(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	form := training.Form{
		Title:        r.FormValue("title"),
		StartTime:    r.FormValue("startTime"),
		EndTime:      r.FormValue("endTime"),
		Location:     r.FormValue("location"),
		TeamID:       r.FormValue("teamId"),
		CoachID:      r.FormValue("coachId"),
		TrainingType: r.FormValue("trainingType"),
		Objectives:   r.FormValue("objectives"),
		Exercises:    r.FormValue("exercises"),
	}
	id, err := orchestrators.ExecuteCreateTraining(r.Context(), form, s.API)
	if err != nil {
		msg, handled := s.formFailed(w, r, err)
		if !handled {
			s.renderTrainingForm(w, r, form, msg)
		}
		return
	}
	http.Redirect(w, r, "/trainings/"+id.String(), http.StatusSeeOther)
}

// handleTrainingAttendance handles POST /trainings/{id}/attendance. The
// checked boxes replace the attendee list; none checked records nobody.
func (s *server) handleTrainingAttendance(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	id := pathID(r, "id")
	back := "/trainings/" + id.String()
	if err := orchestrators.ExecuteMarkAttendance(r.Context(), id, r.Form["playerIds"], s.API); err != nil {
		s.commandError(w, r, err, back)
		return
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

// handleTrainingDelete handles POST /trainings/{id}/delete
func (s *server) handleTrainingDelete(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	if err := orchestrators.ExecuteDelete(r.Context(), "entrenamiento", id, s.API.DeleteTraining); err != nil {
		s.commandError(w, r, err, "/trainings/"+id.String())
		return
	}
	http.Redirect(w, r, "/trainings", http.StatusSeeOther)
}
