// Package registration composes the create request for a player or a coach
// under one of three account ownership modes.
package registration

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"clubadmin/internal/domain/entity"
)

// Mode says whether the new member gets a fresh user account, is linked to
// an existing one, or has none.
type Mode string

// Mode constants
const (
	ModeNew      Mode = "new"
	ModeExisting Mode = "existing"
	ModeNone     Mode = "none"
)

// DefaultMode is preselected on the registration forms.
const DefaultMode = ModeNew

// Endpoint selects which create route of the club API receives the body.
type Endpoint string

// Endpoint constants
const (
	EndpointStandard Endpoint = "standard"
	EndpointWithUser Endpoint = "with-user"
)

// Endpoint maps the mode to its create route. Only linking an existing user
// goes through the standard route; ModeNone keeps the with-user route the
// club API has always received for it.
func (m Mode) Endpoint() Endpoint {
	if m == ModeExisting {
		return EndpointStandard
	}
	return EndpointWithUser
}

// Label returns the Spanish radio-button text.
func (m Mode) Label() string {
	switch m {
	case ModeNew:
		return "Crear nuevo usuario"
	case ModeExisting:
		return "Vincular usuario existente"
	case ModeNone:
		return "Sin usuario"
	}
	return string(m)
}

// Modes lists every mode in form order.
var Modes = []Mode{ModeNew, ModeExisting, ModeNone}

// Validation errors
var (
	ErrUnknownMode       = errors.New("unknown account mode")
	ErrUserIDRequired    = errors.New("user id is required")
	ErrUserIDInvalid     = errors.New("user id must be a whole number")
	ErrFirstNameRequired = errors.New("first name is required")
	ErrLastNameRequired  = errors.New("last name is required")
	ErrEmailRequired     = errors.New("email is required")
	ErrEmailInvalid      = errors.New("email must contain @")
	ErrPasswordRequired  = errors.New("password is required")
	ErrPasswordTooShort  = errors.New("password must be at least 6 characters")
	ErrPhoneRequired     = errors.New("phone is required")
	ErrDocumentRequired  = errors.New("document number is required")
	ErrBirthDateRequired = errors.New("birth date is required")
)

// MinPasswordLength applies to accounts created alongside a member.
const MinPasswordLength = 6

// NewAccount carries the identity of a user account created with the member.
// Values are sent exactly as typed.
type NewAccount struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Phone          string `json:"phone"`
	DocumentNumber string `json:"documentNumber"`
}

// Ownership is the account part shared by both registration forms.
type Ownership struct {
	Mode    Mode
	Account NewAccount
	UserID  string
}

// Request is a composed create call: which route, which body.
type Request[T any] struct {
	Endpoint Endpoint
	Body     T
}

// FieldError is one failed form field.
type FieldError struct {
	Field string
	Err   error
}

// ValidationError aggregates every failed field of one submission.
type ValidationError struct {
	Fields []FieldError
}

// Error joins the field messages with ", ".
func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Err.Error()
	}
	return strings.Join(msgs, ", ")
}

// Unwrap exposes the field errors to errors.Is.
func (e *ValidationError) Unwrap() []error {
	out := make([]error, len(e.Fields))
	for i, f := range e.Fields {
		out[i] = f.Err
	}
	return out
}

type collector struct {
	fields []FieldError
}

func (c *collector) add(field string, err error) {
	c.fields = append(c.fields, FieldError{Field: field, Err: err})
}

func (c *collector) err() error {
	if len(c.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: c.fields}
}

// ownershipPart is embedded in every body. A nil *NewAccount contributes no
// keys and a nil UserID is omitted.
type ownershipPart struct {
	*NewAccount
	UserID *int `json:"userId,omitempty"`
}

func composeOwnership(o Ownership, c *collector) ownershipPart {
	switch o.Mode {
	case ModeNew:
		a := o.Account
		required := []struct {
			field string
			value string
			err   error
		}{
			{"firstName", a.FirstName, ErrFirstNameRequired},
			{"lastName", a.LastName, ErrLastNameRequired},
			{"email", a.Email, ErrEmailRequired},
			{"password", a.Password, ErrPasswordRequired},
			{"phone", a.Phone, ErrPhoneRequired},
			{"documentNumber", a.DocumentNumber, ErrDocumentRequired},
		}
		for _, r := range required {
			if strings.TrimSpace(r.value) == "" {
				c.add(r.field, r.err)
			}
		}
		if a.Email != "" && !strings.Contains(a.Email, "@") {
			c.add("email", ErrEmailInvalid)
		}
		if a.Password != "" && len([]rune(a.Password)) < MinPasswordLength {
			c.add("password", ErrPasswordTooShort)
		}
		return ownershipPart{NewAccount: &a}
	case ModeExisting:
		s := strings.TrimSpace(o.UserID)
		if s == "" {
			c.add("userId", ErrUserIDRequired)
			return ownershipPart{}
		}
		id, err := strconv.Atoi(s)
		if err != nil {
			c.add("userId", ErrUserIDInvalid)
			return ownershipPart{}
		}
		return ownershipPart{UserID: &id}
	case ModeNone:
		return ownershipPart{}
	}
	c.add("mode", ErrUnknownMode)
	return ownershipPart{}
}

func requireDate(c *collector, field, value string, missing error) string {
	t, err := entity.ParseTime(strings.TrimSpace(value))
	if err != nil || t.IsZero() {
		c.add(field, missing)
		return ""
	}
	return t.DateString()
}

// optionalFloat parses a blank-or-number field. Blank is nil; NaN and
// infinities are rejected like any other unparsable input.
func optionalFloat(c *collector, field, value string, invalid error) *float64 {
	s := strings.TrimSpace(value)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		c.add(field, invalid)
		return nil
	}
	return &v
}

func optionalText(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
