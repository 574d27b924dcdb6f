package player

import (
	"strings"

	"clubadmin/internal/domain/entity"
)

// Position is a handball playing position.
type Position string

// Position constants
const (
	PositionGoalkeeper Position = "goalkeeper"
	PositionLeftWing   Position = "left_wing"
	PositionLeftBack   Position = "left_back"
	PositionCenterBack Position = "center_back"
	PositionRightBack  Position = "right_back"
	PositionRightWing  Position = "right_wing"
	PositionPivot      Position = "pivot"
)

// Positions lists every position in form order.
var Positions = []Position{
	PositionGoalkeeper, PositionLeftWing, PositionLeftBack, PositionCenterBack,
	PositionRightBack, PositionRightWing, PositionPivot,
}

// DefaultPosition is preselected on the new-player form.
const DefaultPosition = PositionCenterBack

// IsValid reports whether p is one of the seven positions.
func (p Position) IsValid() bool {
	for _, v := range Positions {
		if v == p {
			return true
		}
	}
	return false
}

// Hand is the dominant throwing hand.
type Hand string

// Hand constants
const (
	HandLeft  Hand = "left"
	HandRight Hand = "right"
)

// Categories offered on the registration form.
var Categories = []string{"Infantil", "Cadete", "Juvenil", "Senior", "Veterano"}

// TeamSummary is the team backref embedded in a player.
type TeamSummary struct {
	ID       entity.ID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Division string    `json:"division"`
}

// Player mirrors a player record owned by the club API.
type Player struct {
	ID               entity.ID    `json:"id"`
	FirstName        string       `json:"firstName"`
	LastName         string       `json:"lastName"`
	Email            string       `json:"email"`
	Phone            string       `json:"phone"`
	DocumentNumber   string       `json:"documentNumber"`
	BirthDate        entity.Time  `json:"birthDate"`
	Photo            string       `json:"photo,omitempty"`
	Position         Position     `json:"position"`
	JerseyNumber     *int         `json:"jerseyNumber,omitempty"`
	Height           *float64     `json:"height,omitempty"`
	Weight           *float64     `json:"weight,omitempty"`
	DominantHand     Hand         `json:"dominantHand,omitempty"`
	MedicalInfo      string       `json:"medicalInfo,omitempty"`
	EmergencyContact string       `json:"emergencyContact,omitempty"`
	Category         string       `json:"category,omitempty"`
	JoinDate         entity.Time  `json:"joinDate"`
	Team             *TeamSummary `json:"team,omitempty"`
	IsActive         bool         `json:"isActive"`
	entity.Timestamps
}

// FullName returns "First Last".
func (p Player) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Matches reports whether a free-text search hits the player's name, email or document.
// INVARIANT: Player is not mutated
func (p Player) Matches(query string) bool {
	return entity.Search(query, p.FullName(), p.Email, p.DocumentNumber)
}

// Statistics are the per-player counters from /players/:id/statistics.
type Statistics struct {
	TotalGoals    int `json:"totalGoals"`
	TotalAssists  int `json:"totalAssists"`
	MatchesPlayed int `json:"matchesPlayed"`
	TotalMinutes  int `json:"totalMinutes"`
}

// Update is the PATCH body for /players/:id. Nil fields are left unchanged.
type Update struct {
	IsActive         *bool     `json:"isActive,omitempty"`
	Position         *Position `json:"position,omitempty"`
	JerseyNumber     *int      `json:"jerseyNumber,omitempty"`
	Category         *string   `json:"category,omitempty"`
	MedicalInfo      *string   `json:"medicalInfo,omitempty"`
	EmergencyContact *string   `json:"emergencyContact,omitempty"`
}

// CountActive returns how many players are active and inactive.
func CountActive(players []Player) (active, inactive int) {
	for _, p := range players {
		if p.IsActive {
			active++
		} else {
			inactive++
		}
	}
	return active, inactive
}
