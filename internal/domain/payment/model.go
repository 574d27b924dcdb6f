package payment

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"clubadmin/internal/domain/entity"
	"clubadmin/internal/domain/player"
)

// Status is the settlement state of a payment.
type Status string

// Status constants
const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusOverdue   Status = "overdue"
	StatusCancelled Status = "cancelled"
)

// Label returns the Spanish badge text.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pendiente"
	case StatusPaid:
		return "Pagado"
	case StatusOverdue:
		return "Vencido"
	case StatusCancelled:
		return "Cancelado"
	}
	return string(s)
}

// Color returns the badge color class.
func (s Status) Color() string {
	switch s {
	case StatusPending:
		return "yellow"
	case StatusPaid:
		return "green"
	case StatusOverdue:
		return "red"
	}
	return "gray"
}

// Methods offered on the payment form.
var Methods = []string{"Efectivo", "Transferencia", "Tarjeta", "Nequi", "Daviplata"}

// Concepts suggested on the payment form.
var Concepts = []string{"Mensualidad", "Inscripción", "Uniforme", "Torneo", "Otro"}

// Domain errors
var (
	ErrMissingPlayer  = errors.New("player is required")
	ErrInvalidAmount  = errors.New("amount must be a positive number")
	ErrEmptyConcept   = errors.New("concept cannot be empty")
	ErrMissingDueDate = errors.New("due date is required")
)

// Payment mirrors a payment record owned by the club API.
type Payment struct {
	ID                   entity.ID     `json:"id"`
	Player               player.Player `json:"player"`
	Amount               float64       `json:"amount"`
	Concept              string        `json:"concept"`
	PaymentDate          entity.Time   `json:"paymentDate"`
	DueDate              entity.Time   `json:"dueDate"`
	Status               Status        `json:"status"`
	PaymentMethod        string        `json:"paymentMethod"`
	TransactionReference string        `json:"transactionReference,omitempty"`
	Notes                string        `json:"notes,omitempty"`
	entity.Timestamps
}

// Matches reports whether a free-text search hits the player's name or the concept.
func (p Payment) Matches(query string) bool {
	return entity.Search(query, p.Player.FullName(), p.Concept)
}

// OverdueDays is the number of whole days between the due date and now.
// Only payments the server already flagged overdue get a value.
// PRE: none
// POST: ok is false unless p.Status is overdue; days is floored
func OverdueDays(p Payment, now time.Time) (days int, ok bool) {
	if p.Status != StatusOverdue || p.DueDate.IsZero() {
		return 0, false
	}
	elapsed := now.Sub(p.DueDate.Time)
	d := int(elapsed / (24 * time.Hour))
	if elapsed < 0 && elapsed%(24*time.Hour) != 0 {
		d--
	}
	return d, true
}

// Statistics are the aggregate counters from /payments/statistics.
type Statistics struct {
	Total              int     `json:"total"`
	Paid               int     `json:"paid"`
	Pending            int     `json:"pending"`
	Overdue            int     `json:"overdue"`
	TotalPaidAmount    float64 `json:"totalPaidAmount"`
	TotalPendingAmount float64 `json:"totalPendingAmount"`
}

// Form is the raw create form.
type Form struct {
	PlayerID      string
	Amount        string
	Concept       string
	DueDate       string
	PaymentMethod string
	Notes         string
}

// Payload is the POST body for /payments.
type Payload struct {
	PlayerID      entity.ID `json:"playerId"`
	Amount        float64   `json:"amount"`
	Concept       string    `json:"concept"`
	DueDate       string    `json:"dueDate"`
	PaymentMethod string    `json:"paymentMethod"`
	Notes         *string   `json:"notes"`
}

// Compose validates the form and builds the request body.
// PRE: none
// POST: Amount is a finite positive number; DueDate is yyyy-mm-dd
func (f Form) Compose() (Payload, error) {
	if f.PlayerID == "" {
		return Payload{}, ErrMissingPlayer
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(f.Amount), 64)
	if err != nil || amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Payload{}, ErrInvalidAmount
	}
	if strings.TrimSpace(f.Concept) == "" {
		return Payload{}, ErrEmptyConcept
	}
	due, err := entity.ParseTime(f.DueDate)
	if err != nil || due.IsZero() {
		return Payload{}, ErrMissingDueDate
	}
	p := Payload{
		PlayerID:      entity.ID(f.PlayerID),
		Amount:        amount,
		Concept:       f.Concept,
		DueDate:       due.DateString(),
		PaymentMethod: f.PaymentMethod,
	}
	if strings.TrimSpace(f.Notes) != "" {
		p.Notes = &f.Notes
	}
	return p, nil
}

// MarkPaid is the PATCH body for /payments/:id/mark-paid.
type MarkPaid struct {
	TransactionReference *string `json:"transactionReference,omitempty"`
}

// NewMarkPaid builds the body, omitting a blank reference.
func NewMarkPaid(reference string) MarkPaid {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return MarkPaid{}
	}
	return MarkPaid{TransactionReference: &reference}
}
