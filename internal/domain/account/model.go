package account

import (
	"encoding/json"
	"errors"
	"strings"

	"clubadmin/internal/domain/entity"
)

// Role is the closed set of roles the club API assigns to users.
type Role string

// Role constants
const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleCoach   Role = "coach"
	RolePlayer  Role = "player"
	// RoleUnknown is what any other remote value decodes to. It has no capabilities.
	RoleUnknown Role = ""
)

// ValidRoles contains all known role values.
var ValidRoles = []Role{RoleAdmin, RoleManager, RoleCoach, RolePlayer}

// Domain errors
var (
	ErrEmptyEmail    = errors.New("email cannot be empty")
	ErrInvalidEmail  = errors.New("email must contain '@'")
	ErrEmptyPassword = errors.New("password cannot be empty")
	ErrUnknownRole   = errors.New("role must be one of: admin, manager, coach, player")
)

// ParseRole maps a remote role string onto the enum.
// PRE: none
// POST: Returns the matching role, or RoleUnknown with ErrUnknownRole
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleManager:
		return RoleManager, nil
	case RoleCoach:
		return RoleCoach, nil
	case RolePlayer:
		return RolePlayer, nil
	}
	return RoleUnknown, ErrUnknownRole
}

// UnmarshalJSON decodes unknown roles to RoleUnknown instead of failing,
// so a new remote role degrades to an empty menu.
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r, _ = ParseRole(s)
	return nil
}

// Label returns the badge text shown next to the user's name.
func (r Role) Label() string {
	if r == RoleUnknown {
		return "SIN ROL"
	}
	return strings.ToUpper(string(r))
}

// Identity is the authenticated user as reported by the club API.
type Identity struct {
	ID        entity.ID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
}

// FullName returns "First Last", falling back to the email.
func (i Identity) FullName() string {
	name := strings.TrimSpace(i.FirstName + " " + i.LastName)
	if name == "" {
		return i.Email
	}
	return name
}

// Credentials are submitted on the login form.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the credentials before they are sent upstream.
// PRE: none
// POST: Returns nil if both fields are usable
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Email) == "" {
		return ErrEmptyEmail
	}
	if !strings.Contains(c.Email, "@") {
		return ErrInvalidEmail
	}
	if c.Password == "" {
		return ErrEmptyPassword
	}
	return nil
}
