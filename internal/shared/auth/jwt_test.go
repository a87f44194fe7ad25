package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestSignAndVerifyRoundTrip(t *testing.T) {
	token, err := SignSession("admin", "admin", "sess-1")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if token == "" {
		t.Fatalf("empty token")
	}

	claims, err := VerifySession(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Username != "admin" || claims.Role != "admin" || claims.SessionID != "sess-1" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestSignRequiresIdentity(t *testing.T) {
	if _, err := SignSession("", "admin", "sess-1"); err == nil {
		t.Fatalf("expected error for empty username")
	}
	if _, err := SignSession("admin", "admin", ""); err == nil {
		t.Fatalf("expected error for empty session id")
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	token, err := SignSession("admin", "admin", "sess-1")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	tampered := parts[0] + "." + parts[1] + ".AAAA" + parts[2][4:]

	if _, err := VerifySession(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	if _, err := VerifySession("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
