package sessions

import "context"

// Repo defines persistence operations for users and sessions.
type Repo interface {
	GetUser(ctx context.Context, username string) (User, error)
	CreateSession(ctx context.Context, session Session) error
	GetSession(ctx context.Context, sessionID string) (Session, error)
	RevokeSession(ctx context.Context, sessionID string) error
}
