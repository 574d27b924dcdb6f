package match

import (
	"errors"
	"strconv"
	"strings"

	"clubadmin/internal/domain/entity"
	"clubadmin/internal/domain/team"
)

// Status is the lifecycle state of a match.
type Status string

// Status constants
const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusFinished   Status = "finished"
	StatusCancelled  Status = "cancelled"
	StatusPostponed  Status = "postponed"
)

// Statuses lists every status in form order.
var Statuses = []Status{StatusScheduled, StatusInProgress, StatusFinished, StatusCancelled, StatusPostponed}

// Label returns the Spanish badge text.
func (s Status) Label() string {
	switch s {
	case StatusScheduled:
		return "Programado"
	case StatusInProgress:
		return "En Juego"
	case StatusFinished:
		return "Finalizado"
	case StatusCancelled:
		return "Cancelado"
	case StatusPostponed:
		return "Aplazado"
	}
	return string(s)
}

// Color returns the badge color class.
func (s Status) Color() string {
	switch s {
	case StatusScheduled:
		return "blue"
	case StatusInProgress:
		return "yellow"
	case StatusFinished:
		return "green"
	case StatusCancelled:
		return "red"
	case StatusPostponed:
		return "orange"
	}
	return "gray"
}

// Domain errors
var (
	ErrSameTeams     = errors.New("home and away teams must differ")
	ErrMissingTeams  = errors.New("both teams are required")
	ErrMissingDate   = errors.New("match date is required")
	ErrInvalidScore  = errors.New("scores must be non-negative whole numbers")
	ErrInvalidStatus = errors.New("unknown match status")
)

// Stats are the optional per-match counters.
type Stats struct {
	HomeShots      *int `json:"homeShots,omitempty"`
	AwayShots      *int `json:"awayShots,omitempty"`
	HomePossession *int `json:"homePossession,omitempty"`
	AwayPossession *int `json:"awayPossession,omitempty"`
	HomeFouls      *int `json:"homeFouls,omitempty"`
	AwayFouls      *int `json:"awayFouls,omitempty"`
}

// Match mirrors a match record owned by the club API.
type Match struct {
	ID          entity.ID   `json:"id"`
	HomeTeam    team.Team   `json:"homeTeam"`
	AwayTeam    team.Team   `json:"awayTeam"`
	MatchDate   entity.Time `json:"matchDate"`
	Venue       string      `json:"venue"`
	Competition string      `json:"competition"`
	Round       string      `json:"round,omitempty"`
	HomeScore   *int        `json:"homeScore,omitempty"`
	AwayScore   *int        `json:"awayScore,omitempty"`
	Status      Status      `json:"status"`
	Statistics  *Stats      `json:"statistics,omitempty"`
	Notes       string      `json:"notes,omitempty"`
	entity.Timestamps
}

// HasScore reports whether both scores are known.
func (m Match) HasScore() bool {
	return m.HomeScore != nil && m.AwayScore != nil
}

// Form is the raw create/edit form.
type Form struct {
	HomeTeamID  string
	AwayTeamID  string
	MatchDate   string
	Venue       string
	Competition string
	Round       string
	Status      string
	Notes       string
}

// Payload is the POST/PATCH body for /matches.
type Payload struct {
	HomeTeamID  entity.ID `json:"homeTeamId"`
	AwayTeamID  entity.ID `json:"awayTeamId"`
	MatchDate   string    `json:"matchDate"`
	Venue       string    `json:"venue"`
	Competition string    `json:"competition"`
	Round       *string   `json:"round"`
	Status      Status    `json:"status,omitempty"`
	Notes       *string   `json:"notes"`
}

// Compose validates the form and builds the request body.
// PRE: none
// POST: MatchDate is RFC 3339; empty optional text is null
func (f Form) Compose() (Payload, error) {
	if f.HomeTeamID == "" || f.AwayTeamID == "" {
		return Payload{}, ErrMissingTeams
	}
	if f.HomeTeamID == f.AwayTeamID {
		return Payload{}, ErrSameTeams
	}
	at, err := entity.ParseTime(f.MatchDate)
	if err != nil || at.IsZero() {
		return Payload{}, ErrMissingDate
	}
	p := Payload{
		HomeTeamID:  entity.ID(f.HomeTeamID),
		AwayTeamID:  entity.ID(f.AwayTeamID),
		MatchDate:   at.Time.Format("2006-01-02T15:04:05Z07:00"),
		Venue:       f.Venue,
		Competition: f.Competition,
		Round:       optional(f.Round),
		Notes:       optional(f.Notes),
	}
	if f.Status != "" {
		s := Status(f.Status)
		if !s.isKnown() {
			return Payload{}, ErrInvalidStatus
		}
		p.Status = s
	}
	return p, nil
}

// FormFrom prefills the edit form from an existing match.
func FormFrom(m Match) Form {
	return Form{
		HomeTeamID:  m.HomeTeam.ID.String(),
		AwayTeamID:  m.AwayTeam.ID.String(),
		MatchDate:   m.MatchDate.LocalString(),
		Venue:       m.Venue,
		Competition: m.Competition,
		Round:       m.Round,
		Status:      string(m.Status),
		Notes:       m.Notes,
	}
}

// Score is the PATCH body for /matches/:id/score.
type Score struct {
	HomeScore int `json:"homeScore"`
	AwayScore int `json:"awayScore"`
}

// ParseScore reads both scores from form text.
// PRE: none
// POST: Returns ErrInvalidScore for blanks, negatives or non-numbers
func ParseScore(home, away string) (Score, error) {
	h, err := strconv.Atoi(strings.TrimSpace(home))
	if err != nil || h < 0 {
		return Score{}, ErrInvalidScore
	}
	a, err := strconv.Atoi(strings.TrimSpace(away))
	if err != nil || a < 0 {
		return Score{}, ErrInvalidScore
	}
	return Score{HomeScore: h, AwayScore: a}, nil
}

func (s Status) isKnown() bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
