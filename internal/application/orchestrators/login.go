package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/jonboulle/clockwork"

	"clubadmin/internal/adapters/clubapi"
	"clubadmin/internal/adapters/storage/session"
	"clubadmin/internal/domain/account"
)

// MsgInvalidCredentials is shown when the club API rejects the login.
const MsgInvalidCredentials = "Credenciales inválidas"

const msgLoginFailed = "Error al iniciar sesión"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenExpired       = errors.New("access token is already expired")
)

// LoginGateway exchanges credentials for a bearer token.
type LoginGateway interface {
	Login(ctx context.Context, creds account.Credentials) (clubapi.LoginResult, error)
}

// SessionCreator persists a new session.
type SessionCreator interface {
	Create(ctx context.Context, s session.Session) (string, error)
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult carries the result of a successful login.
type LoginResult struct {
	SessionID string
	Identity  account.Identity
	ExpiresAt time.Time
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	Gateway  LoginGateway
	Sessions SessionCreator
	Clock    clockwork.Clock
}

// ExecuteLogin authenticates against the club API and opens a session.
// PRE: none
// POST: On success a session holding the identity and bearer token exists
// INVARIANT: The password is never stored or logged
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	creds := account.Credentials{Email: input.Email, Password: input.Password}
	if err := creds.Validate(); err != nil {
		return LoginResult{}, err
	}

	res, err := deps.Gateway.Login(ctx, creds)
	if err != nil {
		if clubapi.IsUnauthorized(err) {
			slog.InfoContext(ctx, "auth_event", "event", "login_failed", "email", input.Email, "reason", "rejected")
			return LoginResult{}, &CommandError{Message: MsgInvalidCredentials, Err: ErrInvalidCredentials}
		}
		slog.WarnContext(ctx, "auth_event", "event", "login_failed", "email", input.Email, "reason", "upstream", "error", err)
		return LoginResult{}, upstreamFailure(err, msgLoginFailed)
	}

	clock := deps.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	now := clock.Now()
	expires := SessionExpiry(res.AccessToken, now)
	if !expires.After(now) {
		slog.WarnContext(ctx, "auth_event", "event", "login_failed", "email", input.Email, "reason", "token_expired")
		return LoginResult{}, &CommandError{Message: msgLoginFailed, Err: ErrTokenExpired}
	}

	id, err := deps.Sessions.Create(ctx, session.Session{
		Identity:  res.User,
		Token:     res.AccessToken,
		CreatedAt: now,
		ExpiresAt: expires,
	})
	if err != nil {
		return LoginResult{}, fmt.Errorf("create session: %w", err)
	}

	slog.InfoContext(ctx, "auth_event", "event", "login_success", "email", res.User.Email, "role", res.User.Role)
	return LoginResult{SessionID: id, Identity: res.User, ExpiresAt: expires}, nil
}

// SessionExpiry is the earlier of now+session.MaxLifetime and the token's
// exp claim. Opaque tokens get the full lifetime. The signature is not
// checked; the club API remains the authority on the token.
func SessionExpiry(token string, now time.Time) time.Time {
	limit := now.Add(session.MaxLifetime)
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil || claims.ExpiresAt == nil {
		return limit
	}
	if exp := claims.ExpiresAt.Time; exp.Before(limit) {
		return exp
	}
	return limit
}

// SessionDeleter removes a session.
type SessionDeleter interface {
	Delete(ctx context.Context, id string) error
}

// LogoutDeps holds dependencies for Logout.
type LogoutDeps struct {
	Sessions SessionDeleter
}

// ExecuteLogout ends a session. The club API is not called.
// PRE: none
// POST: The session row is gone; an empty id is a no-op
func ExecuteLogout(ctx context.Context, sessionID string, deps LogoutDeps) error {
	if sessionID == "" {
		return nil
	}
	if err := deps.Sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	slog.InfoContext(ctx, "auth_event", "event", "logout")
	return nil
}
