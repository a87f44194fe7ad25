package sessions

import (
	"context"
	"errors"
	"testing"

	"invoice-assistant/internal/shared/server/middleware"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	repo := NewMemoryRepo()
	if err := repo.SeedUser("admin", "admin123", "admin"); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return NewService(repo)
}

func TestLoginIssuesSession(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	result, err := svc.Login(ctx, "admin", "admin123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.SessionID == "" || result.Token == "" {
		t.Fatalf("incomplete login result: %+v", result)
	}
	if result.Username != "admin" || result.Role != "admin" {
		t.Fatalf("unexpected identity: %+v", result)
	}

	id, err := svc.Resolve(ctx, result.SessionID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if id.Username != "admin" || id.SessionID != result.SessionID {
		t.Fatalf("resolved identity = %+v", id)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "admin", "nope"},
		{"unknown user", "ghost", "admin123"},
		{"empty password", "admin", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Login(ctx, tc.username, tc.password); !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	result, err := svc.Login(ctx, "admin", "admin123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := svc.Logout(ctx, result.SessionID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.Resolve(ctx, result.SessionID); !errors.Is(err, middleware.ErrSessionNotFound) {
		t.Fatalf("expected revoked session, got %v", err)
	}

	// Logging out an unknown session is not an error.
	if err := svc.Logout(ctx, "missing"); err != nil {
		t.Fatalf("logout unknown: %v", err)
	}
}

func TestResolveUnknownSession(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.Resolve(context.Background(), "nope"); !errors.Is(err, middleware.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}
