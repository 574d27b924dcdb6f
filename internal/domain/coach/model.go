package coach

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"clubadmin/internal/domain/entity"
)

// Form defaults and options.
const (
	DefaultSpecialization     = "General"
	DefaultCertificationLevel = "Nivel 1"
)

// Specializations offered on the coach form.
var Specializations = []string{"General", "Porteros", "Preparación Física", "Táctica", "Formación"}

// CertificationLevels offered on the coach form.
var CertificationLevels = []string{"Nivel 1", "Nivel 2", "Nivel 3", "Nacional", "Internacional"}

// TeamSummary is a team backref embedded in a coach.
type TeamSummary struct {
	ID       entity.ID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
}

// Coach mirrors a coach record owned by the club API.
type Coach struct {
	ID                 entity.ID     `json:"id"`
	FirstName          string        `json:"firstName"`
	LastName           string        `json:"lastName"`
	Email              string        `json:"email"`
	Phone              string        `json:"phone"`
	DocumentNumber     string        `json:"documentNumber"`
	BirthDate          entity.Time   `json:"birthDate"`
	Photo              string        `json:"photo,omitempty"`
	Specialization     string        `json:"specialization"`
	CertificationLevel string        `json:"certificationLevel"`
	HireDate           entity.Time   `json:"hireDate"`
	Salary             float64       `json:"salary"`
	Certifications     []string      `json:"certifications,omitempty"`
	Biography          string        `json:"biography,omitempty"`
	IsActive           bool          `json:"isActive"`
	TeamsAsHead        []TeamSummary `json:"teamsAsHead,omitempty"`
	TeamsAsAssistant   []TeamSummary `json:"teamsAsAssistant,omitempty"`
	entity.Timestamps
}

// FullName returns "First Last".
func (c Coach) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Statistics are the per-coach counters from /coaches/:id/statistics.
type Statistics struct {
	TeamsCount     int `json:"teamsCount"`
	PlayersCount   int `json:"playersCount"`
	TrainingsCount int `json:"trainingsCount"`
}

// Update is the PATCH body for /coaches/:id. Nil fields are left unchanged.
type Update struct {
	Specialization     *string   `json:"specialization,omitempty"`
	CertificationLevel *string   `json:"certificationLevel,omitempty"`
	Salary             *float64  `json:"salary,omitempty"`
	Certifications     *[]string `json:"certifications,omitempty"`
	Biography          *string   `json:"biography,omitempty"`
	IsActive           *bool     `json:"isActive,omitempty"`
}

// ErrInvalidSalary is returned when the salary is blank, negative or not a number.
var ErrInvalidSalary = errors.New("salary must be a non-negative number")

// SplitCertifications turns "UEFA A, IHF Level 2,," into its trimmed,
// non-empty entries. The result is never nil.
func SplitCertifications(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// EditForm is the raw edit form for an existing coach.
type EditForm struct {
	Specialization     string
	CertificationLevel string
	Salary             string
	Certifications     string
	Biography          string
	IsActive           bool
}

// Compose builds the PATCH body. Every field is sent so the edit form
// fully describes the coach's professional profile.
// PRE: none
// POST: Salary is finite and non-negative
func (f EditForm) Compose() (Update, error) {
	salary, err := strconv.ParseFloat(strings.TrimSpace(f.Salary), 64)
	if err != nil || salary < 0 || math.IsNaN(salary) || math.IsInf(salary, 0) {
		return Update{}, ErrInvalidSalary
	}
	certs := SplitCertifications(f.Certifications)
	bio := f.Biography
	active := f.IsActive
	specialization := f.Specialization
	level := f.CertificationLevel
	return Update{
		Specialization:     &specialization,
		CertificationLevel: &level,
		Salary:             &salary,
		Certifications:     &certs,
		Biography:          &bio,
		IsActive:           &active,
	}, nil
}

// EditFormFrom prefills the edit form from an existing coach.
func EditFormFrom(c Coach) EditForm {
	return EditForm{
		Specialization:     c.Specialization,
		CertificationLevel: c.CertificationLevel,
		Salary:             strconv.FormatFloat(c.Salary, 'f', -1, 64),
		Certifications:     strings.Join(c.Certifications, ", "),
		Biography:          c.Biography,
		IsActive:           c.IsActive,
	}
}

// CountActive returns how many coaches are active.
func CountActive(coaches []Coach) int {
	n := 0
	for _, c := range coaches {
		if c.IsActive {
			n++
		}
	}
	return n
}
