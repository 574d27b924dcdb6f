package registration

import (
	"errors"
	"strings"

	"clubadmin/internal/domain/coach"
)

// Coach validation errors
var (
	ErrSpecializationRequired     = errors.New("specialization is required")
	ErrCertificationLevelRequired = errors.New("certification level is required")
	ErrHireDateRequired           = errors.New("hire date is required")
	ErrSalaryRequired             = errors.New("salary is required")
	ErrSalaryInvalid              = errors.New("salary must be a non-negative number")
)

// CoachForm is the raw new-coach form.
type CoachForm struct {
	Ownership
	BirthDate          string
	Specialization     string
	CertificationLevel string
	HireDate           string
	Salary             string
	Certifications     string
	Biography          string
}

// CoachPayload is the body for POST /coaches and /coaches/with-user.
type CoachPayload struct {
	ownershipPart
	BirthDate          string   `json:"birthDate"`
	Specialization     string   `json:"specialization"`
	CertificationLevel string   `json:"certificationLevel"`
	HireDate           string   `json:"hireDate"`
	Salary             float64  `json:"salary"`
	Certifications     []string `json:"certifications"`
	Biography          *string  `json:"biography"`
}

// Account returns the identity sent with the body, or nil.
func (p CoachPayload) Account() *NewAccount { return p.NewAccount }

// ComposeCoach validates a new-coach form and builds the create request.
// PRE: none
// POST: On success the endpoint follows f.Mode; Certifications is never nil
// INVARIANT: On error no request is produced
func ComposeCoach(f CoachForm) (Request[CoachPayload], error) {
	var c collector
	body := CoachPayload{ownershipPart: composeOwnership(f.Ownership, &c)}

	body.BirthDate = requireDate(&c, "birthDate", f.BirthDate, ErrBirthDateRequired)
	body.Specialization = f.Specialization
	if strings.TrimSpace(f.Specialization) == "" {
		c.add("specialization", ErrSpecializationRequired)
	}
	body.CertificationLevel = f.CertificationLevel
	if strings.TrimSpace(f.CertificationLevel) == "" {
		c.add("certificationLevel", ErrCertificationLevelRequired)
	}
	body.HireDate = requireDate(&c, "hireDate", f.HireDate, ErrHireDateRequired)

	if strings.TrimSpace(f.Salary) == "" {
		c.add("salary", ErrSalaryRequired)
	} else if s := optionalFloat(&c, "salary", f.Salary, ErrSalaryInvalid); s != nil {
		if *s < 0 {
			c.add("salary", ErrSalaryInvalid)
		} else {
			body.Salary = *s
		}
	}

	body.Certifications = SplitCertifications(f.Certifications)
	body.Biography = optionalText(f.Biography)

	if err := c.err(); err != nil {
		return Request[CoachPayload]{}, err
	}
	return Request[CoachPayload]{Endpoint: f.Mode.Endpoint(), Body: body}, nil
}

// SplitCertifications turns "UEFA A, IHF Level 2,," into its trimmed,
// non-empty entries.
func SplitCertifications(s string) []string {
	return coach.SplitCertifications(s)
}
