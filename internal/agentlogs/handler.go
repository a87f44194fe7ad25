package agentlogs

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"invoice-assistant/internal/shared/server/respond"
)

// Handler exposes the agent transcript endpoint.
type Handler struct {
	Service *Service
}

// NewHandler constructs a Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

// RegisterRoutes mounts the agent log routes on the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/agent-logs/transactions/:transaction_id", h.get)
}

func (h *Handler) get(c *gin.Context) {
	resp, err := h.Service.Get(c.Request.Context(), c.Param("transaction_id"))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not load agent logs", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}
