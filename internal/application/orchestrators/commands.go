package orchestrators

import (
	"context"
	"log/slog"

	"clubadmin/internal/domain/coach"
	"clubadmin/internal/domain/entity"
	"clubadmin/internal/domain/event"
	"clubadmin/internal/domain/match"
	"clubadmin/internal/domain/payment"
	"clubadmin/internal/domain/player"
	"clubadmin/internal/domain/team"
	"clubadmin/internal/domain/training"
)

// TeamGateway is the subset of the club API used by team commands.
type TeamGateway interface {
	CreateTeam(ctx context.Context, p team.Payload) (team.Team, error)
	UpdateTeam(ctx context.Context, id entity.ID, p team.Payload) (team.Team, error)
	AddTeamPlayers(ctx context.Context, id entity.ID, r team.Roster) error
}

// MatchGateway is the subset of the club API used by match commands.
type MatchGateway interface {
	CreateMatch(ctx context.Context, p match.Payload) (match.Match, error)
	UpdateMatch(ctx context.Context, id entity.ID, p match.Payload) (match.Match, error)
	UpdateMatchScore(ctx context.Context, id entity.ID, s match.Score) (match.Match, error)
}

// TrainingGateway is the subset of the club API used by training commands.
type TrainingGateway interface {
	CreateTraining(ctx context.Context, p training.Payload) (training.Training, error)
	MarkTrainingAttendance(ctx context.Context, id entity.ID, a training.Attendance) error
}

// PaymentGateway is the subset of the club API used by payment commands.
type PaymentGateway interface {
	CreatePayment(ctx context.Context, p payment.Payload) (payment.Payment, error)
	MarkPaymentPaid(ctx context.Context, id entity.ID, m payment.MarkPaid) (payment.Payment, error)
}

// EventGateway is the subset of the club API used by event commands.
type EventGateway interface {
	CreateEvent(ctx context.Context, p event.Payload) (event.Event, error)
	AddEventParticipants(ctx context.Context, id entity.ID, p event.Participants) error
	RemoveEventParticipant(ctx context.Context, id, playerID entity.ID) error
}

// PlayerUpdater is the subset of the club API used to edit players.
type PlayerUpdater interface {
	UpdatePlayer(ctx context.Context, id entity.ID, u player.Update) (player.Player, error)
}

// CoachUpdater is the subset of the club API used to edit coaches.
type CoachUpdater interface {
	UpdateCoach(ctx context.Context, id entity.ID, u coach.Update) (coach.Coach, error)
}

// Deleter removes one record by id. Client methods such as DeletePlayer satisfy it.
type Deleter func(ctx context.Context, id entity.ID) error

// ExecuteCreateTeam validates and submits a new team.
// PRE: none
// POST: Returns the created team's id
func ExecuteCreateTeam(ctx context.Context, form team.Form, gw TeamGateway) (entity.ID, error) {
	p, err := form.Compose()
	if err != nil {
		return "", err
	}
	t, err := gw.CreateTeam(ctx, p)
	if err != nil {
		return "", upstreamFailure(err, "Error al crear equipo")
	}
	return t.ID, nil
}

// ExecuteUpdateTeam validates and submits a team edit.
func ExecuteUpdateTeam(ctx context.Context, id entity.ID, form team.Form, gw TeamGateway) error {
	p, err := form.Compose()
	if err != nil {
		return err
	}
	if _, err := gw.UpdateTeam(ctx, id, p); err != nil {
		return upstreamFailure(err, "Error al actualizar equipo")
	}
	return nil
}

// ExecuteAddTeamPlayers adds the selected players to a team roster.
// PRE: none
// POST: Returns team.ErrNoPlayers without calling the API when nothing is selected
func ExecuteAddTeamPlayers(ctx context.Context, id entity.ID, playerIDs []string, gw TeamGateway) error {
	roster, err := team.NewRoster(playerIDs)
	if err != nil {
		return err
	}
	if err := gw.AddTeamPlayers(ctx, id, roster); err != nil {
		return upstreamFailure(err, "Error al agregar jugadores")
	}
	return nil
}

// ExecuteCreateMatch validates and submits a new match.
func ExecuteCreateMatch(ctx context.Context, form match.Form, gw MatchGateway) (entity.ID, error) {
	p, err := form.Compose()
	if err != nil {
		return "", err
	}
	m, err := gw.CreateMatch(ctx, p)
	if err != nil {
		return "", upstreamFailure(err, "Error al crear partido")
	}
	return m.ID, nil
}

// ExecuteUpdateMatch validates and submits a match edit.
func ExecuteUpdateMatch(ctx context.Context, id entity.ID, form match.Form, gw MatchGateway) error {
	p, err := form.Compose()
	if err != nil {
		return err
	}
	if _, err := gw.UpdateMatch(ctx, id, p); err != nil {
		return upstreamFailure(err, "Error al actualizar partido")
	}
	return nil
}

// ExecuteUpdateMatchScore records the final or running score.
// PRE: none
// POST: Returns match.ErrInvalidScore for blank or negative scores
func ExecuteUpdateMatchScore(ctx context.Context, id entity.ID, home, away string, gw MatchGateway) error {
	score, err := match.ParseScore(home, away)
	if err != nil {
		return err
	}
	if _, err := gw.UpdateMatchScore(ctx, id, score); err != nil {
		return upstreamFailure(err, "Error al actualizar el marcador")
	}
	slog.InfoContext(ctx, "match_score_updated", "match_id", id, "home", score.HomeScore, "away", score.AwayScore)
	return nil
}

// ExecuteCreateTraining validates and submits a new training session.
func ExecuteCreateTraining(ctx context.Context, form training.Form, gw TrainingGateway) (entity.ID, error) {
	p, err := form.Compose()
	if err != nil {
		return "", err
	}
	t, err := gw.CreateTraining(ctx, p)
	if err != nil {
		return "", upstreamFailure(err, "Error al crear entrenamiento")
	}
	return t.ID, nil
}

// ExecuteMarkAttendance records who attended a training. An empty
// selection is sent as-is and records that nobody attended.
func ExecuteMarkAttendance(ctx context.Context, id entity.ID, playerIDs []string, gw TrainingGateway) error {
	if err := gw.MarkTrainingAttendance(ctx, id, training.NewAttendance(playerIDs)); err != nil {
		return upstreamFailure(err, "Error al registrar asistencia")
	}
	return nil
}

// ExecuteCreatePayment validates and submits a new payment.
func ExecuteCreatePayment(ctx context.Context, form payment.Form, gw PaymentGateway) (entity.ID, error) {
	p, err := form.Compose()
	if err != nil {
		return "", err
	}
	created, err := gw.CreatePayment(ctx, p)
	if err != nil {
		return "", upstreamFailure(err, "Error al registrar pago")
	}
	return created.ID, nil
}

// ExecuteMarkPaymentPaid marks a payment as paid.
// PRE: none
// POST: A blank reference is omitted from the body
func ExecuteMarkPaymentPaid(ctx context.Context, id entity.ID, reference string, gw PaymentGateway) error {
	if _, err := gw.MarkPaymentPaid(ctx, id, payment.NewMarkPaid(reference)); err != nil {
		return upstreamFailure(err, "Error al marcar como pagado")
	}
	slog.InfoContext(ctx, "payment_marked_paid", "payment_id", id)
	return nil
}

// ExecuteCreateEvent validates and submits a new event.
func ExecuteCreateEvent(ctx context.Context, form event.Form, gw EventGateway) (entity.ID, error) {
	p, err := form.Compose()
	if err != nil {
		return "", err
	}
	e, err := gw.CreateEvent(ctx, p)
	if err != nil {
		return "", upstreamFailure(err, "Error al crear evento")
	}
	return e.ID, nil
}

// ExecuteAddEventParticipants registers the selected players for an event.
func ExecuteAddEventParticipants(ctx context.Context, id entity.ID, playerIDs []string, gw EventGateway) error {
	parts, err := event.NewParticipants(playerIDs)
	if err != nil {
		return err
	}
	if err := gw.AddEventParticipants(ctx, id, parts); err != nil {
		return upstreamFailure(err, "Error al agregar participantes")
	}
	return nil
}

// ExecuteRemoveEventParticipant removes one player from an event.
func ExecuteRemoveEventParticipant(ctx context.Context, id, playerID entity.ID, gw EventGateway) error {
	if err := gw.RemoveEventParticipant(ctx, id, playerID); err != nil {
		return upstreamFailure(err, "Error al quitar participante")
	}
	return nil
}

// ExecuteSetPlayerActive activates or deactivates a player.
func ExecuteSetPlayerActive(ctx context.Context, id entity.ID, active bool, gw PlayerUpdater) error {
	if _, err := gw.UpdatePlayer(ctx, id, player.Update{IsActive: &active}); err != nil {
		return upstreamFailure(err, "Error al actualizar jugador")
	}
	slog.InfoContext(ctx, "player_active_changed", "player_id", id, "active", active)
	return nil
}

// ExecuteUpdateCoach validates and submits a coach edit.
func ExecuteUpdateCoach(ctx context.Context, id entity.ID, form coach.EditForm, gw CoachUpdater) error {
	u, err := form.Compose()
	if err != nil {
		return err
	}
	if _, err := gw.UpdateCoach(ctx, id, u); err != nil {
		return upstreamFailure(err, "Error al actualizar entrenador")
	}
	return nil
}

// ExecuteDelete removes one record. label names the resource in the
// fallback message and logs, e.g. "jugador".
// PRE: del is non-nil
// POST: Returns a CommandError on upstream failure
func ExecuteDelete(ctx context.Context, label string, id entity.ID, del Deleter) error {
	if err := del(ctx, id); err != nil {
		return upstreamFailure(err, "Error al eliminar "+label)
	}
	slog.InfoContext(ctx, "record_deleted", "kind", label, "id", id)
	return nil
}
