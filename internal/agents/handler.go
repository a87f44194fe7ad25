package agents

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"invoice-assistant/internal/llm"
	"invoice-assistant/internal/shared/server/middleware"
	"invoice-assistant/internal/shared/server/respond"
)

// Handler exposes the invoice and incident question-answering agents.
type Handler struct {
	Service *Service
}

// NewHandler constructs a Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

// RegisterRoutes mounts the agent routes on the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/invoice-management/sql-agent", h.ask(llm.DomainInvoice))
	rg.POST("/incident-analytics-agent/query", h.ask(llm.DomainIncident))
}

type askRequest struct {
	Question  string `json:"question"`
	SessionID string `json:"session_id"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

func (h *Handler) ask(domain string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req askRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
			return
		}

		sessionID := req.SessionID
		if sessionID == "" {
			sessionID = middleware.SessionIDFromContext(c)
		}

		answer, err := h.Service.Ask(c.Request.Context(), domain, req.Question, sessionID)
		switch {
		case errors.Is(err, ErrEmptyQuestion):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, llm.ErrNotConfigured):
			respond.Error(c, http.StatusServiceUnavailable, "agent_unavailable", "no LLM provider is configured", nil)
		case err != nil:
			respond.Error(c, http.StatusBadGateway, "agent_error", "the agent could not answer", nil)
		default:
			c.JSON(http.StatusOK, askResponse{Answer: answer})
		}
	}
}
