package sessions

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

var _ Repo = (*PGRepo)(nil)

// GetUser returns a user by username.
func (r *PGRepo) GetUser(ctx context.Context, username string) (User, error) {
	const query = `
SELECT username, password_hash, role, created_at
FROM users
WHERE username = $1
LIMIT 1`
	var u User
	err := r.DB.QueryRowContext(ctx, query, username).Scan(
		&u.Username,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

// CreateSession inserts a new session row.
func (r *PGRepo) CreateSession(ctx context.Context, session Session) error {
	const query = `
INSERT INTO sessions (id, username, role, created_at, expires_at)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.DB.ExecContext(ctx, query,
		session.ID,
		session.Username,
		session.Role,
		session.CreatedAt,
		session.ExpiresAt,
	)
	return err
}

// GetSession returns a session by ID.
func (r *PGRepo) GetSession(ctx context.Context, sessionID string) (Session, error) {
	const query = `
SELECT id, username, role, created_at, expires_at, revoked_at
FROM sessions
WHERE id = $1
LIMIT 1`
	var s Session
	var revokedAt sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, sessionID).Scan(
		&s.ID,
		&s.Username,
		&s.Role,
		&s.CreatedAt,
		&s.ExpiresAt,
		&revokedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, ErrNotFound
		}
		return Session{}, err
	}
	if revokedAt.Valid {
		s.RevokedAt = &revokedAt.Time
	}
	return s, nil
}

// RevokeSession marks a session as revoked.
func (r *PGRepo) RevokeSession(ctx context.Context, sessionID string) error {
	const query = `
UPDATE sessions
SET revoked_at = now()
WHERE id = $1 AND revoked_at IS NULL`
	res, err := r.DB.ExecContext(ctx, query, sessionID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
