package team

import (
	"errors"
	"strconv"
	"strings"

	"clubadmin/internal/domain/coach"
	"clubadmin/internal/domain/entity"
	"clubadmin/internal/domain/player"
)

// Form defaults.
const (
	DefaultCategory       = "Masculino"
	DefaultDivision       = "Primera"
	DefaultPrimaryColor   = "#000000"
	DefaultSecondaryColor = "#FFFFFF"
)

// Categories offered on the team form.
var Categories = []string{"Masculino", "Femenino", "Mixto"}

// Divisions offered on the team form.
var Divisions = []string{"Primera", "Segunda", "Tercera", "Juvenil", "Cadete", "Infantil"}

// Domain errors
var (
	ErrEmptyName          = errors.New("name cannot be empty")
	ErrInvalidFoundedYear = errors.New("founded year must be a number")
	ErrNoPlayers          = errors.New("select at least one player")
)

// Team mirrors a team record owned by the club API.
type Team struct {
	ID               entity.ID       `json:"id"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	Division         string          `json:"division"`
	FoundedYear      int             `json:"foundedYear"`
	Logo             string          `json:"logo,omitempty"`
	PrimaryColor     string          `json:"primaryColor,omitempty"`
	SecondaryColor   string          `json:"secondaryColor,omitempty"`
	HeadCoach        *coach.Coach    `json:"headCoach,omitempty"`
	AssistantCoaches []coach.Coach   `json:"assistantCoaches,omitempty"`
	Players          []player.Player `json:"players,omitempty"`
	IsActive         bool            `json:"isActive"`
	entity.Timestamps
}

// Statistics are the per-team counters from /teams/:id/statistics.
type Statistics struct {
	Played       int `json:"played"`
	Won          int `json:"won"`
	Drawn        int `json:"drawn"`
	Lost         int `json:"lost"`
	GoalsFor     int `json:"goalsFor"`
	GoalsAgainst int `json:"goalsAgainst"`
}

// Form is the raw team form as submitted.
type Form struct {
	Name           string
	Category       string
	Division       string
	FoundedYear    string
	HeadCoachID    string
	PrimaryColor   string
	SecondaryColor string
}

// Payload is the POST/PATCH body for /teams.
type Payload struct {
	Name           string     `json:"name"`
	Category       string     `json:"category"`
	Division       string     `json:"division"`
	FoundedYear    int        `json:"foundedYear"`
	HeadCoachID    *entity.ID `json:"headCoachId"`
	PrimaryColor   string     `json:"primaryColor"`
	SecondaryColor string     `json:"secondaryColor"`
}

// Compose validates the form and builds the request body.
// PRE: none
// POST: HeadCoachID is nil when no coach was selected
func (f Form) Compose() (Payload, error) {
	if strings.TrimSpace(f.Name) == "" {
		return Payload{}, ErrEmptyName
	}
	year, err := strconv.Atoi(strings.TrimSpace(f.FoundedYear))
	if err != nil {
		return Payload{}, ErrInvalidFoundedYear
	}
	p := Payload{
		Name:           f.Name,
		Category:       f.Category,
		Division:       f.Division,
		FoundedYear:    year,
		PrimaryColor:   f.PrimaryColor,
		SecondaryColor: f.SecondaryColor,
	}
	if f.HeadCoachID != "" {
		id := entity.ID(f.HeadCoachID)
		p.HeadCoachID = &id
	}
	return p, nil
}

// FormFrom prefills the edit form from an existing team.
func FormFrom(t Team) Form {
	f := Form{
		Name:           t.Name,
		Category:       t.Category,
		Division:       t.Division,
		FoundedYear:    strconv.Itoa(t.FoundedYear),
		PrimaryColor:   t.PrimaryColor,
		SecondaryColor: t.SecondaryColor,
	}
	if t.HeadCoach != nil {
		f.HeadCoachID = t.HeadCoach.ID.String()
	}
	return f
}

// CountActive returns how many teams are active.
func CountActive(teams []Team) int {
	n := 0
	for _, t := range teams {
		if t.IsActive {
			n++
		}
	}
	return n
}

// Roster is the POST body for /teams/:id/players.
type Roster struct {
	PlayerIDs []entity.ID `json:"playerIds"`
}

// NewRoster drops blank IDs and rejects an empty selection.
func NewRoster(ids []string) (Roster, error) {
	out := entity.IDs(ids)
	if len(out) == 0 {
		return Roster{}, ErrNoPlayers
	}
	return Roster{PlayerIDs: out}, nil
}
