package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"invoice-assistant/internal/shared/auth"
	"invoice-assistant/internal/shared/server/middleware"
	"invoice-assistant/internal/shared/telemetry"
)

const sessionTTL = 24 * time.Hour

// Service contains business logic for login, logout, and session resolution.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// LoginResult is returned to the client after a successful login.
type LoginResult struct {
	SessionID string `json:"sessionId"`
	Token     string `json:"token"`
	Username  string `json:"username"`
	Role      string `json:"userRole"`
}

// Login verifies credentials and opens a new session.
func (s *Service) Login(ctx context.Context, username, password string) (LoginResult, error) {
	if username == "" || password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	user, err := s.Repo.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// Same error as a wrong password so usernames cannot be probed.
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	session := Session{
		ID:        uuid.NewString(),
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(sessionTTL),
	}
	if err := s.Repo.CreateSession(ctx, session); err != nil {
		return LoginResult{}, err
	}

	token, err := auth.SignSession(user.Username, user.Role, session.ID)
	if err != nil {
		return LoginResult{}, err
	}

	telemetry.Info("session.opened", map[string]any{
		"username":   user.Username,
		"session_id": session.ID,
	})

	return LoginResult{
		SessionID: session.ID,
		Token:     token,
		Username:  user.Username,
		Role:      user.Role,
	}, nil
}

// Logout revokes a session. Revoking an unknown session is not an error.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.Repo.RevokeSession(ctx, sessionID); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	telemetry.Info("session.closed", map[string]any{"session_id": sessionID})
	return nil
}

// Resolve implements middleware.SessionResolver.
func (s *Service) Resolve(ctx context.Context, sessionID string) (middleware.Identity, error) {
	session, err := s.Repo.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return middleware.Identity{}, middleware.ErrSessionNotFound
		}
		return middleware.Identity{}, err
	}
	if !session.Active(time.Now().UTC()) {
		return middleware.Identity{}, middleware.ErrSessionNotFound
	}
	return middleware.Identity{
		Username:  session.Username,
		Role:      session.Role,
		SessionID: session.ID,
	}, nil
}
