package event

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"clubadmin/internal/domain/entity"
	"clubadmin/internal/domain/player"
)

// Status is the lifecycle state of a club event.
type Status string

// Status constants
const (
	StatusUpcoming  Status = "upcoming"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Label returns the Spanish badge text.
func (s Status) Label() string {
	switch s {
	case StatusUpcoming:
		return "Próximo"
	case StatusOngoing:
		return "En Curso"
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
	case StatusUpcoming:
		return "blue"
	case StatusOngoing:
		return "green"
	case StatusCompleted:
		return "gray"
	case StatusCancelled:
		return "red"
	}
	return "gray"
}

// Types offered on the event form.
var Types = []string{"Social", "Deportivo", "Reunión", "Viaje", "Otro"}

// TypeColor returns the badge color for an event type.
func TypeColor(t string) string {
	switch t {
	case "Social":
		return "pink"
	case "Deportivo":
		return "blue"
	case "Reunión":
		return "purple"
	case "Viaje":
		return "green"
	}
	return "gray"
}

// Domain errors
var (
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrMissingWindow   = errors.New("start and end date are required")
	ErrEndBeforeStart  = errors.New("end date must not be before start date")
	ErrInvalidCapacity = errors.New("capacity must be a positive whole number")
	ErrInvalidCost     = errors.New("cost must be a non-negative number")
	ErrNoParticipants  = errors.New("select at least one player")
)

// Event mirrors a club event owned by the club API.
type Event struct {
	ID           entity.ID       `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	EventType    string          `json:"eventType"`
	StartDate    entity.Time     `json:"startDate"`
	EndDate      entity.Time     `json:"endDate"`
	Location     string          `json:"location"`
	Capacity     *int            `json:"capacity,omitempty"`
	Participants []player.Player `json:"participants,omitempty"`
	Status       Status          `json:"status"`
	Cost         *float64        `json:"cost,omitempty"`
	Requirements string          `json:"requirements,omitempty"`
	entity.Timestamps
}

// SpotsLeft returns the remaining capacity. ok is false when capacity is unlimited.
func (e Event) SpotsLeft() (left int, ok bool) {
	if e.Capacity == nil {
		return 0, false
	}
	left = *e.Capacity - len(e.Participants)
	if left < 0 {
		left = 0
	}
	return left, true
}

// Form is the raw create form.
type Form struct {
	Title        string
	Description  string
	EventType    string
	StartDate    string
	EndDate      string
	Location     string
	Capacity     string
	Cost         string
	Requirements string
}

// Payload is the POST body for /events.
type Payload struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	EventType    string   `json:"eventType"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	Location     string   `json:"location"`
	Capacity     *int     `json:"capacity"`
	Cost         *float64 `json:"cost"`
	Requirements *string  `json:"requirements"`
}

// Compose validates the form and builds the request body.
// PRE: none
// POST: Capacity and Cost are null when left blank
func (f Form) Compose() (Payload, error) {
	if strings.TrimSpace(f.Title) == "" {
		return Payload{}, ErrEmptyTitle
	}
	start, err1 := entity.ParseTime(f.StartDate)
	end, err2 := entity.ParseTime(f.EndDate)
	if err1 != nil || err2 != nil || start.IsZero() || end.IsZero() {
		return Payload{}, ErrMissingWindow
	}
	if end.Before(start.Time) {
		return Payload{}, ErrEndBeforeStart
	}
	p := Payload{
		Title:       f.Title,
		Description: f.Description,
		EventType:   f.EventType,
		StartDate:   start.Time.Format("2006-01-02T15:04:05Z07:00"),
		EndDate:     end.Time.Format("2006-01-02T15:04:05Z07:00"),
		Location:    f.Location,
	}
	if s := strings.TrimSpace(f.Capacity); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return Payload{}, ErrInvalidCapacity
		}
		p.Capacity = &n
	}
	if s := strings.TrimSpace(f.Cost); s != "" {
		c, err := strconv.ParseFloat(s, 64)
		if err != nil || c < 0 || math.IsNaN(c) || math.IsInf(c, 0) {
			return Payload{}, ErrInvalidCost
		}
		p.Cost = &c
	}
	if strings.TrimSpace(f.Requirements) != "" {
		p.Requirements = &f.Requirements
	}
	return p, nil
}

// Participants is the POST body for /events/:id/participants.
type Participants struct {
	PlayerIDs []entity.ID `json:"playerIds"`
}

// NewParticipants drops blank IDs and rejects an empty selection.
func NewParticipants(ids []string) (Participants, error) {
	out := entity.IDs(ids)
	if len(out) == 0 {
		return Participants{}, ErrNoParticipants
	}
	return Participants{PlayerIDs: out}, nil
}
