package session

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"clubadmin/internal/adapters/storage"
	"clubadmin/internal/domain/account"
	"clubadmin/internal/domain/entity"
)

// timeLayout is fixed-width so expires_at compares correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     storage.SQLDB
	sealer *Sealer
	clock  clockwork.Clock
}

// NewSQLiteStore creates a session store.
// PRE: db has the session table (storage.InitDB); sealer is non-nil
func NewSQLiteStore(db storage.SQLDB, sealer *Sealer, clock clockwork.Clock) *SQLiteStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &SQLiteStore{db: db, sealer: sealer, clock: clock}
}

// Create stores a new session under a random 256-bit id.
// PRE: s.Token is non-empty; s.ExpiresAt is set
// POST: The row holds the token sealed, never in clear
func (st *SQLiteStore) Create(ctx context.Context, s Session) (string, error) {
	id, err := generateID()
	if err != nil {
		return "", err
	}
	sealed, err := st.sealer.Seal([]byte(s.Token))
	if err != nil {
		return "", fmt.Errorf("seal token: %w", err)
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = st.clock.Now()
	}
	_, err = st.db.ExecContext(storage.WithOp(ctx, "session.Create"),
		`INSERT INTO session (id, user_id, first_name, last_name, email, role, token_sealed, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, s.Identity.ID.String(), s.Identity.FirstName, s.Identity.LastName, s.Identity.Email,
		string(s.Identity.Role), sealed,
		s.CreatedAt.UTC().Format(timeLayout), s.ExpiresAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("insert session: %w", err)
	}
	return id, nil
}

// Get loads a live session.
// PRE: none
// POST: Returns ErrNotFound for unknown ids, expired rows and rows whose
// token no longer opens under the current key
func (st *SQLiteStore) Get(ctx context.Context, id string) (Session, error) {
	if id == "" {
		return Session{}, ErrNotFound
	}
	row := st.db.QueryRowContext(storage.WithOp(ctx, "session.Get"),
		`SELECT id, user_id, first_name, last_name, email, role, token_sealed, created_at, expires_at
		 FROM session WHERE id = ?`, id)

	var (
		s                  Session
		userID, role       string
		sealed             []byte
		created, expiresAt string
	)
	err := row.Scan(&s.ID, &userID, &s.Identity.FirstName, &s.Identity.LastName, &s.Identity.Email,
		&role, &sealed, &created, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("load session: %w", err)
	}
	s.Identity.ID = entity.ID(userID)
	s.Identity.Role, _ = account.ParseRole(role)
	if s.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return Session{}, fmt.Errorf("session created_at: %w", err)
	}
	if s.ExpiresAt, err = time.Parse(timeLayout, expiresAt); err != nil {
		return Session{}, fmt.Errorf("session expires_at: %w", err)
	}
	if !st.clock.Now().Before(s.ExpiresAt) {
		return Session{}, ErrNotFound
	}
	token, err := st.sealer.Open(sealed)
	if err != nil {
		return Session{}, ErrNotFound
	}
	s.Token = string(token)
	return s, nil
}

// Delete removes a session.
func (st *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := st.db.ExecContext(storage.WithOp(ctx, "session.Delete"), "DELETE FROM session WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes every session that has expired.
func (st *SQLiteStore) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := st.db.ExecContext(storage.WithOp(ctx, "session.DeleteExpired"),
		"DELETE FROM session WHERE expires_at <= ?", st.clock.Now().UTC().Format(timeLayout))
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return res.RowsAffected()
}

func generateID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
