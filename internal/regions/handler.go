package regions

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"invoice-assistant/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the regions service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches region routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/regions-management/regions-countries", h.lookup)
}

func (h *Handler) lookup(c *gin.Context) {
	resp, err := h.Svc.Lookup(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load regions", nil)
		return
	}
	respond.JSON(c, http.StatusOK, resp)
}
