package web

import (
	"net/http"

	"clubadmin/internal/application/listutil"
	"clubadmin/internal/application/orchestrators"
	"clubadmin/internal/application/projections"
	"clubadmin/internal/domain/event"
)

// handleEventList handles GET /events?tab=all|upcoming
func (s *server) handleEventList(w http.ResponseWriter, r *http.Request) {
	q := listutil.ParseQuery(r.URL.Query(), projections.ListTabs...)
	result, err := projections.QueryEventList(r.Context(), q, s.API)
	if err != nil {
		s.upstreamError(w, r, err)
		return
	}
	respond(w, r, "events_list.html", map[string]any{
		"L":              result,
		"Tabs":           projections.ListTabs,
		"PerPageOptions": listutil.PerPageOptions,
	}, result)
}

// handleEventDetail handles GET /events/{id}
func (s *server) handleEventDetail(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryEventDetail(r.Context(), pathID(r, "id"), projections.EventDetailDeps{
		Events:  s.API,
		Players: s.API,
	})
	if err != nil {
		s.upstreamError(w, r, err)
		return
	}
	respond(w, r, "event_detail.html", map[string]any{"E": result}, result)
}

func renderEventForm(w http.ResponseWriter, r *http.Request, form event.Form, msg string) {
	renderTemplate(w, r, "event_new.html", map[string]any{
		"Form":  form,
		"Error": msg,
		"Types": event.Types,
	})
}

// handleEventNew handles GET /events/new
func (s *server) handleEventNew(w http.ResponseWriter, r *http.Request) {
	renderEventForm(w, r, event.Form{EventType: event.Types[0]}, "")
}

// handleEventCreate handles POST /events
func (s *server) handleEventCreate(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	form := event.Form{
		Title:        r.FormValue("title"),
		Description:  r.FormValue("description"),
		EventType:    r.FormValue("eventType"),
		StartDate:    r.FormValue("startDate"),
		EndDate:      r.FormValue("endDate"),
		Location:     r.FormValue("location"),
		Capacity:     r.FormValue("capacity"),
		Cost:         r.FormValue("cost"),
		Requirements: r.FormValue("requirements"),
	}
	id, err := orchestrators.ExecuteCreateEvent(r.Context(), form, s.API)
	if err != nil {
		msg, handled := s.formFailed(w, r, err)
		if !handled {
			renderEventForm(w, r, form, msg)
		}
		return
	}
	http.Redirect(w, r, "/events/"+id.String(), http.StatusSeeOther)
}

// handleEventAddParticipants handles POST /events/{id}/participants
func (s *server) handleEventAddParticipants(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	id := pathID(r, "id")
	back := "/events/" + id.String()
	if err := orchestrators.ExecuteAddEventParticipants(r.Context(), id, r.Form["playerIds"], s.API); err != nil {
		s.commandError(w, r, err, back)
		return
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

// handleEventRemoveParticipant handles POST /events/{id}/participants/{playerId}/delete
func (s *server) handleEventRemoveParticipant(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	back := "/events/" + id.String()
	if err := orchestrators.ExecuteRemoveEventParticipant(r.Context(), id, pathID(r, "playerId"), s.API); err != nil {
		s.commandError(w, r, err, back)
		return
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

// handleEventDelete handles POST /events/{id}/delete
func (s *server) handleEventDelete(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	if err := orchestrators.ExecuteDelete(r.Context(), "evento", id, s.API.DeleteEvent); err != nil {
		s.commandError(w, r, err, "/events/"+id.String())
		return
	}
	http.Redirect(w, r, "/events", http.StatusSeeOther)
}
