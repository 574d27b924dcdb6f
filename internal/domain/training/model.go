package training

import (
	"errors"
	"strings"

	"clubadmin/internal/domain/coach"
	"clubadmin/internal/domain/entity"
	"clubadmin/internal/domain/player"
	"clubadmin/internal/domain/team"
)

// Status is the lifecycle state of a training session.
type Status string

// Status constants
const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Label returns the Spanish badge text.
func (s Status) Label() string {
	switch s {
	case StatusScheduled:
		return "Programado"
	case StatusCompleted:
		return "Completado"
	case StatusCancelled:
		return "Cancelado"
	}
	return string(s)
}

// Color returns the badge color class.
func (s Status) Color() string {
	switch s {
	case StatusScheduled:
		return "blue"
	case StatusCompleted:
		return "green"
	case StatusCancelled:
		return "red"
	}
	return "gray"
}

// Types offered on the training form, with their badge colors.
var Types = []string{"Técnico", "Táctico", "Físico", "Recuperación"}

// TypeColor returns the badge color for a training type.
func TypeColor(t string) string {
	switch t {
	case "Técnico":
		return "blue"
	case "Táctico":
		return "purple"
	case "Físico":
		return "red"
	case "Recuperación":
		return "green"
	}
	return "gray"
}

// Domain errors
var (
	ErrEmptyTitle     = errors.New("title cannot be empty")
	ErrMissingWindow  = errors.New("start and end time are required")
	ErrEndBeforeStart = errors.New("end time must be after start time")
	ErrMissingTeam    = errors.New("team is required")
	ErrMissingCoach   = errors.New("coach is required")
)

// Training mirrors a training session owned by the club API.
type Training struct {
	ID           entity.ID       `json:"id"`
	Title        string          `json:"title"`
	StartTime    entity.Time     `json:"startTime"`
	EndTime      entity.Time     `json:"endTime"`
	Location     string          `json:"location"`
	Team         team.Team       `json:"team"`
	Coach        coach.Coach     `json:"coach"`
	TrainingType string          `json:"trainingType"`
	Objectives   string          `json:"objectives,omitempty"`
	Exercises    string          `json:"exercises,omitempty"`
	Attendees    []player.Player `json:"attendees,omitempty"`
	Status       Status          `json:"status"`
	entity.Timestamps
}

// DurationMinutes is the whole minutes between start and end, truncated.
// PRE: none
// POST: Deterministic function of StartTime and EndTime
func DurationMinutes(t Training) int {
	return int(t.EndTime.Sub(t.StartTime.Time).Minutes())
}

// Attended reports whether the player is in the attendee list.
func (t Training) Attended(id entity.ID) bool {
	for _, p := range t.Attendees {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Form is the raw create form.
type Form struct {
	Title        string
	StartTime    string
	EndTime      string
	Location     string
	TeamID       string
	CoachID      string
	TrainingType string
	Objectives   string
	Exercises    string
}

// Payload is the POST body for /trainings.
type Payload struct {
	Title        string    `json:"title"`
	StartTime    string    `json:"startTime"`
	EndTime      string    `json:"endTime"`
	Location     string    `json:"location"`
	TeamID       entity.ID `json:"teamId"`
	CoachID      entity.ID `json:"coachId"`
	TrainingType string    `json:"trainingType"`
	Objectives   *string   `json:"objectives"`
	Exercises    *string   `json:"exercises"`
}

// Compose validates the form and builds the request body.
// PRE: none
// POST: EndTime is strictly after StartTime
func (f Form) Compose() (Payload, error) {
	if strings.TrimSpace(f.Title) == "" {
		return Payload{}, ErrEmptyTitle
	}
	start, err1 := entity.ParseTime(f.StartTime)
	end, err2 := entity.ParseTime(f.EndTime)
	if err1 != nil || err2 != nil || start.IsZero() || end.IsZero() {
		return Payload{}, ErrMissingWindow
	}
	if !end.After(start.Time) {
		return Payload{}, ErrEndBeforeStart
	}
	if f.TeamID == "" {
		return Payload{}, ErrMissingTeam
	}
	if f.CoachID == "" {
		return Payload{}, ErrMissingCoach
	}
	p := Payload{
		Title:        f.Title,
		StartTime:    start.Time.Format("2006-01-02T15:04:05Z07:00"),
		EndTime:      end.Time.Format("2006-01-02T15:04:05Z07:00"),
		Location:     f.Location,
		TeamID:       entity.ID(f.TeamID),
		CoachID:      entity.ID(f.CoachID),
		TrainingType: f.TrainingType,
	}
	if strings.TrimSpace(f.Objectives) != "" {
		p.Objectives = &f.Objectives
	}
	if strings.TrimSpace(f.Exercises) != "" {
		p.Exercises = &f.Exercises
	}
	return p, nil
}

// Attendance is the POST body for /trainings/:id/attendance.
type Attendance struct {
	PlayerIDs []entity.ID `json:"playerIds"`
}

// NewAttendance drops blank IDs. An empty list records that nobody attended.
func NewAttendance(ids []string) Attendance {
	return Attendance{PlayerIDs: entity.IDs(ids)}
}
