// Package session persists dashboard login sessions. Each row holds the
// user's identity and the club API bearer token, sealed at rest.
package session

import (
	"context"
	"errors"
	"time"

	"clubadmin/internal/domain/account"
)

// ErrNotFound is returned for unknown or expired sessions.
var ErrNotFound = errors.New("session not found")

// MaxLifetime caps every session regardless of the token's own expiry.
const MaxLifetime = 24 * time.Hour

// Session is one logged-in browser.
type Session struct {
	ID        string
	Identity  account.Identity
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Store persists sessions.
type Store interface {
	// Create stores s under a fresh random id and returns the id.
	Create(ctx context.Context, s Session) (string, error)
	// Get returns a live session; expired rows report ErrNotFound.
	Get(ctx context.Context, id string) (Session, error)
	// Delete removes a session. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error
	// DeleteExpired removes sessions that expired before now.
	DeleteExpired(ctx context.Context) (int64, error)
}
