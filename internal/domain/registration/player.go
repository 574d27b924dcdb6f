package registration

import (
	"errors"
	"strconv"
	"strings"

	"clubadmin/internal/domain/player"
)

// Player validation errors
var (
	ErrPositionInvalid     = errors.New("position must be one of the seven playing positions")
	ErrCategoryRequired    = errors.New("category is required")
	ErrJoinDateRequired    = errors.New("join date is required")
	ErrJerseyNumberInvalid = errors.New("jersey number must be a whole number")
	ErrHeightInvalid       = errors.New("height must be a number")
	ErrWeightInvalid       = errors.New("weight must be a number")
	ErrHandInvalid         = errors.New("dominant hand must be left or right")
)

// PlayerForm is the raw new-player form.
type PlayerForm struct {
	Ownership
	BirthDate        string
	Position         string
	JerseyNumber     string
	Category         string
	Height           string
	Weight           string
	DominantHand     string
	MedicalInfo      string
	EmergencyContact string
	JoinDate         string
}

// PlayerPayload is the body for POST /players and /players/with-user.
type PlayerPayload struct {
	ownershipPart
	BirthDate        string          `json:"birthDate"`
	Position         player.Position `json:"position"`
	JerseyNumber     *int            `json:"jerseyNumber"`
	Category         string          `json:"category"`
	Height           *float64        `json:"height"`
	Weight           *float64        `json:"weight"`
	DominantHand     player.Hand     `json:"dominantHand"`
	MedicalInfo      *string         `json:"medicalInfo"`
	EmergencyContact string          `json:"emergencyContact"`
	JoinDate         string          `json:"joinDate"`
}

// Account returns the identity sent with the body, or nil.
func (p PlayerPayload) Account() *NewAccount { return p.NewAccount }

// ComposePlayer validates a new-player form and builds the create request.
// PRE: none
// POST: On success the endpoint follows f.Mode and the body carries identity
// fields only for ModeNew and userId only for ModeExisting
// INVARIANT: On error no request is produced
func ComposePlayer(f PlayerForm) (Request[PlayerPayload], error) {
	var c collector
	body := PlayerPayload{ownershipPart: composeOwnership(f.Ownership, &c)}

	body.BirthDate = requireDate(&c, "birthDate", f.BirthDate, ErrBirthDateRequired)
	body.Position = player.Position(f.Position)
	if !body.Position.IsValid() {
		c.add("position", ErrPositionInvalid)
	}
	body.Category = f.Category
	if strings.TrimSpace(f.Category) == "" {
		c.add("category", ErrCategoryRequired)
	}
	body.JoinDate = requireDate(&c, "joinDate", f.JoinDate, ErrJoinDateRequired)

	if s := strings.TrimSpace(f.JerseyNumber); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			c.add("jerseyNumber", ErrJerseyNumberInvalid)
		} else {
			body.JerseyNumber = &n
		}
	}
	body.Height = optionalFloat(&c, "height", f.Height, ErrHeightInvalid)
	body.Weight = optionalFloat(&c, "weight", f.Weight, ErrWeightInvalid)

	switch player.Hand(f.DominantHand) {
	case "":
		body.DominantHand = player.HandRight
	case player.HandLeft, player.HandRight:
		body.DominantHand = player.Hand(f.DominantHand)
	default:
		c.add("dominantHand", ErrHandInvalid)
	}
	body.MedicalInfo = optionalText(f.MedicalInfo)
	body.EmergencyContact = f.EmergencyContact

	if err := c.err(); err != nil {
		return Request[PlayerPayload]{}, err
	}
	return Request[PlayerPayload]{Endpoint: f.Mode.Endpoint(), Body: body}, nil
}
