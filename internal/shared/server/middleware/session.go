package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"invoice-assistant/internal/shared/auth"
	"invoice-assistant/internal/shared/server/respond"
)

const (
	sessionIDKey = "sessionId"
	usernameKey  = "username"
	userRoleKey  = "userRole"

	// SessionHeader carries the opaque session identifier issued at login.
	SessionHeader = "X-Session-ID"
)

// Identity is the resolved caller identity for a request.
type Identity struct {
	Username  string
	Role      string
	SessionID string
}

// ErrSessionNotFound is returned by resolvers for unknown or expired sessions.
var ErrSessionNotFound = errors.New("session not found")

// SessionResolver validates an opaque session ID and returns the identity it belongs to.
type SessionResolver interface {
	Resolve(ctx context.Context, sessionID string) (Identity, error)
}

// Session validates the caller's credential and stores identity in
// context. The X-Session-ID header carries the opaque session ID; a
// signed session token in Authorization: Bearer is accepted as an
// alternative. Either way the session ID is resolved against the
// store, so revoked sessions are rejected even with a valid token.
// Paths listed in publicPrefixes are reachable without a session.
func Session(resolver SessionResolver, publicPrefixes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		path := c.Request.URL.Path
		for _, prefix := range publicPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		sessionID := strings.TrimSpace(c.GetHeader(SessionHeader))
		if sessionID == "" {
			if token := bearerToken(c); token != "" {
				claims, err := auth.VerifySession(token)
				if err != nil {
					respond.Error(c, http.StatusUnauthorized, "unauthorized", "Invalid session token", nil)
					return
				}
				sessionID = claims.SessionID
			}
		}
		if sessionID == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing session", nil)
			return
		}

		identity, err := resolver.Resolve(c.Request.Context(), sessionID)
		if err != nil {
			if errors.Is(err, ErrSessionNotFound) {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "Invalid or expired session", nil)
				return
			}
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to resolve session", nil)
			return
		}

		c.Set(sessionIDKey, identity.SessionID)
		c.Set(usernameKey, identity.Username)
		c.Set(userRoleKey, identity.Role)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// SessionIDFromContext fetches the session ID set by the session middleware.
func SessionIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(sessionIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

// UsernameFromContext fetches the username set by the session middleware.
func UsernameFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(usernameKey)
	if name, ok := val.(string); ok {
		return name
	}
	return ""
}

// RoleFromContext fetches the user role set by the session middleware.
func RoleFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userRoleKey)
	if role, ok := val.(string); ok {
		return role
	}
	return ""
}
