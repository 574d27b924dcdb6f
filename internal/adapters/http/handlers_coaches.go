package web

import (
	"net/http"

	"clubadmin/internal/application/listutil"
	"clubadmin/internal/application/orchestrators"
	"clubadmin/internal/application/projections"
	"clubadmin/internal/domain/coach"
	"clubadmin/internal/domain/registration"
)

// handleCoachList handles GET /coaches
func (s *server) handleCoachList(w http.ResponseWriter, r *http.Request) {
	q := listutil.ParseQuery(r.URL.Query())
	result, err := projections.QueryCoachList(r.Context(), q, s.API)
	if err != nil {
		s.upstreamError(w, r, err)
		return
	}
	respond(w, r, "coaches_list.html", map[string]any{
		"L":              result,
		"PerPageOptions": listutil.PerPageOptions,
	}, result)
}

// handleCoachDetail handles GET /coaches/{id}
func (s *server) handleCoachDetail(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryCoachDetail(r.Context(), pathID(r, "id"), s.API)
	if err != nil {
		s.upstreamError(w, r, err)
		return
	}
	respond(w, r, "coach_detail.html", map[string]any{"C": result}, result)
}

func renderCoachForm(w http.ResponseWriter, r *http.Request, form registration.CoachForm, msg string, fields map[string]string) {
	renderTemplate(w, r, "coach_new.html", map[string]any{
		"Form":                form,
		"Error":               msg,
		"Fields":              fields,
		"Modes":               registration.Modes,
		"Specializations":     coach.Specializations,
		"CertificationLevels": coach.CertificationLevels,
	})
}

// handleCoachNew handles GET /coaches/new
func (s *server) handleCoachNew(w http.ResponseWriter, r *http.Request) {
	renderCoachForm(w, r, registration.CoachForm{
		Ownership:          registration.Ownership{Mode: registration.DefaultMode},
		Specialization:     coach.DefaultSpecialization,
		CertificationLevel: coach.DefaultCertificationLevel,
		HireDate:           s.Clock.Now().In(s.Config.Location()).Format("2006-01-02"),
	}, "", nil)
}

// handleCoachCreate handles POST /coaches
func (s *server) handleCoachCreate(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	form := registration.CoachForm{
		Ownership:          parseOwnership(r),
		BirthDate:          r.FormValue("birthDate"),
		Specialization:     r.FormValue("specialization"),
		CertificationLevel: r.FormValue("certificationLevel"),
		HireDate:           r.FormValue("hireDate"),
		Salary:             r.FormValue("salary"),
		Certifications:     r.FormValue("certifications"),
		Biography:          r.FormValue("biography"),
	}
	deps := orchestrators.RegisterCoachDeps{
		Gateway:  s.API,
		Mailer:   s.Mailer,
		LoginURL: s.Config.PublicURL + "/login",
	}
	if _, err := orchestrators.ExecuteRegisterCoach(r.Context(), form, deps); err != nil {
		msg, handled := s.formFailed(w, r, err)
		if handled {
			return
		}
		renderCoachForm(w, r, form, msg, fieldErrors(err))
		return
	}
	http.Redirect(w, r, "/coaches", http.StatusSeeOther)
}

func renderCoachEdit(w http.ResponseWriter, r *http.Request, c coach.Coach, form coach.EditForm, msg string) {
	renderTemplate(w, r, "coach_edit.html", map[string]any{
		"Coach":               c,
		"Form":                form,
		"Error":               msg,
		"Specializations":     coach.Specializations,
		"CertificationLevels": coach.CertificationLevels,
	})
}

// handleCoachEdit handles GET /coaches/{id}/edit
func (s *server) handleCoachEdit(w http.ResponseWriter, r *http.Request) {
	c, err := s.API.GetCoach(r.Context(), pathID(r, "id"))
	if err != nil {
		s.upstreamError(w, r, err)
		return
	}
	renderCoachEdit(w, r, c, coach.EditFormFrom(c), "")
}

// handleCoachUpdate handles POST /coaches/{id}/edit
func (s *server) handleCoachUpdate(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	id := pathID(r, "id")
	form := coach.EditForm{
		Specialization:     r.FormValue("specialization"),
		CertificationLevel: r.FormValue("certificationLevel"),
		Salary:             r.FormValue("salary"),
		Certifications:     r.FormValue("certifications"),
		Biography:          r.FormValue("biography"),
		IsActive:           r.FormValue("isActive") == "true",
	}
	if err := orchestrators.ExecuteUpdateCoach(r.Context(), id, form, s.API); err != nil {
		msg, handled := s.formFailed(w, r, err)
		if handled {
			return
		}
		renderCoachEdit(w, r, coach.Coach{ID: id}, form, msg)
		return
	}
	http.Redirect(w, r, "/coaches/"+id.String(), http.StatusSeeOther)
}

// handleCoachDelete handles POST /coaches/{id}/delete
func (s *server) handleCoachDelete(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	if err := orchestrators.ExecuteDelete(r.Context(), "entrenador", id, s.API.DeleteCoach); err != nil {
		s.commandError(w, r, err, "/coaches/"+id.String())
		return
	}
	http.Redirect(w, r, "/coaches", http.StatusSeeOther)
}
