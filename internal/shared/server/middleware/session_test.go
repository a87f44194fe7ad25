package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"invoice-assistant/internal/shared/auth"
)

type staticResolver struct {
	sessions map[string]Identity
}

func (r staticResolver) Resolve(_ context.Context, sessionID string) (Identity, error) {
	identity, ok := r.sessions[sessionID]
	if !ok {
		return Identity{}, ErrSessionNotFound
	}
	return identity, nil
}

func TestSessionAllowsOptionsWithoutIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Session(staticResolver{}))
	router.OPTIONS("/invoice-management/dashboard/filter", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodOptions, "/invoice-management/dashboard/filter", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
}

func TestSessionRejectsMissingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Session(staticResolver{}))
	router.GET("/invoice-management/dashboard", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/invoice-management/dashboard", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestSessionResolvesIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	resolver := staticResolver{sessions: map[string]Identity{
		"sess-1": {Username: "ops", Role: "admin", SessionID: "sess-1"},
	}}

	router := gin.New()
	router.Use(Session(resolver))
	router.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"username": UsernameFromContext(c),
			"role":     RoleFromContext(c),
			"session":  SessionIDFromContext(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(SessionHeader, "sess-1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	body := resp.Body.String()
	for _, want := range []string{"ops", "admin", "sess-1"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected body to contain %q, got %s", want, body)
		}
	}
}

func TestSessionAcceptsBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	resolver := staticResolver{sessions: map[string]Identity{
		"sess-1": {Username: "ops", Role: "admin", SessionID: "sess-1"},
	}}

	router := gin.New()
	router.Use(Session(resolver))
	router.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": UsernameFromContext(c)})
	})

	token, err := auth.SignSession("ops", "admin", "sess-1")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), "ops") {
		t.Fatalf("identity not resolved from token: %s", resp.Body.String())
	}
}

func TestSessionRejectsBadBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Session(staticResolver{}))
	router.GET("/whoami", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestSessionRejectsTokenForRevokedSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	// Valid signature, but the session is no longer in the store.
	router := gin.New()
	router.Use(Session(staticResolver{}))
	router.GET("/whoami", func(c *gin.Context) { c.Status(http.StatusOK) })

	token, err := auth.SignSession("ops", "admin", "sess-gone")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestSessionSkipsPublicPrefixes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Session(staticResolver{}, "/auth/"))
	router.POST("/auth/login", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}
