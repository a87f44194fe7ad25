package sessions

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"invoice-assistant/internal/shared/server/middleware"
	"invoice-assistant/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the sessions service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches auth routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/login", h.login)
	rg.POST("/auth/logout", h.logout)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	result, err := h.Svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "Invalid username or password", []map[string]string{
				{"field": "password", "issue": "invalid_credentials"},
			})
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to log in", nil)
		}
		return
	}

	respond.OK(c, result)
}

func (h *Handler) logout(c *gin.Context) {
	sessionID := middleware.SessionIDFromContext(c)
	if sessionID == "" {
		sessionID = strings.TrimSpace(c.GetHeader(middleware.SessionHeader))
	}

	if err := h.Svc.Logout(c.Request.Context(), sessionID); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to log out", nil)
		return
	}
	respond.OK(c, gin.H{"success": true})
}
