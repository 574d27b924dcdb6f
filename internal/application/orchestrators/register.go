package orchestrators

import (
	"context"
	"log/slog"

	"clubadmin/internal/adapters/email"
	"clubadmin/internal/domain/coach"
	"clubadmin/internal/domain/entity"
	"clubadmin/internal/domain/player"
	"clubadmin/internal/domain/registration"
)

// Fallback messages when the club API rejects a registration without a message.
const (
	MsgCreatePlayerFailed = "Error al crear jugador"
	MsgCreateCoachFailed  = "Error al crear entrenador"
)

// PlayerRegistrar creates players.
type PlayerRegistrar interface {
	CreatePlayer(ctx context.Context, req registration.Request[registration.PlayerPayload]) (player.Player, error)
}

// CoachRegistrar creates coaches.
type CoachRegistrar interface {
	CreateCoach(ctx context.Context, req registration.Request[registration.CoachPayload]) (coach.Coach, error)
}

// RegisterPlayerDeps holds dependencies for RegisterPlayer.
type RegisterPlayerDeps struct {
	Gateway  PlayerRegistrar
	Mailer   email.Sender // optional
	LoginURL string
}

// RegisterCoachDeps holds dependencies for RegisterCoach.
type RegisterCoachDeps struct {
	Gateway  CoachRegistrar
	Mailer   email.Sender // optional
	LoginURL string
}

// ExecuteRegisterPlayer composes and submits a new player.
// PRE: none
// POST: On success returns the created player's id; a welcome mail is sent
// when the request created a backing account
// INVARIANT: A form that fails local validation never reaches the gateway
func ExecuteRegisterPlayer(ctx context.Context, form registration.PlayerForm, deps RegisterPlayerDeps) (entity.ID, error) {
	req, err := registration.ComposePlayer(form)
	if err != nil {
		return "", err
	}
	created, err := deps.Gateway.CreatePlayer(ctx, req)
	if err != nil {
		slog.WarnContext(ctx, "registration_failed", "kind", "player", "mode", form.Mode, "error", err)
		return "", upstreamFailure(err, MsgCreatePlayerFailed)
	}
	slog.InfoContext(ctx, "registration_created", "kind", "player", "mode", form.Mode, "id", created.ID)
	if acct := req.Body.Account(); acct != nil {
		sendWelcome(ctx, deps.Mailer, *acct, "jugador", deps.LoginURL)
	}
	return created.ID, nil
}

// ExecuteRegisterCoach composes and submits a new coach.
// PRE: none
// POST: On success returns the created coach's id; a welcome mail is sent
// when the request created a backing account
func ExecuteRegisterCoach(ctx context.Context, form registration.CoachForm, deps RegisterCoachDeps) (entity.ID, error) {
	req, err := registration.ComposeCoach(form)
	if err != nil {
		return "", err
	}
	created, err := deps.Gateway.CreateCoach(ctx, req)
	if err != nil {
		slog.WarnContext(ctx, "registration_failed", "kind", "coach", "mode", form.Mode, "error", err)
		return "", upstreamFailure(err, MsgCreateCoachFailed)
	}
	slog.InfoContext(ctx, "registration_created", "kind", "coach", "mode", form.Mode, "id", created.ID)
	if acct := req.Body.Account(); acct != nil {
		sendWelcome(ctx, deps.Mailer, *acct, "entrenador", deps.LoginURL)
	}
	return created.ID, nil
}

// sendWelcome is best-effort: failures are logged and never fail the registration.
func sendWelcome(ctx context.Context, mailer email.Sender, acct registration.NewAccount, kind, loginURL string) {
	if mailer == nil {
		return
	}
	msg, err := email.WelcomeMessage(email.Welcome{
		FirstName:    acct.FirstName,
		Email:        acct.Email,
		MemberKind:   kind,
		DashboardURL: loginURL,
	})
	if err != nil {
		slog.ErrorContext(ctx, "welcome_email_failed", "error", err)
		return
	}
	if _, err := mailer.Send(ctx, msg); err != nil {
		slog.WarnContext(ctx, "welcome_email_failed", "to", acct.Email, "error", err)
	}
}
