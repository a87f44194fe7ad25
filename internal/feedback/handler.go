package feedback

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"invoice-assistant/internal/shared/server/respond"
)

// Handler exposes the brand feedback endpoints.
type Handler struct {
	Service *Service
}

// NewHandler constructs a Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

// RegisterRoutes mounts the feedback routes on the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	grp := rg.Group("/invoice-management/regions/:region_code/countries/:country_code/brands/:brand_name")
	grp.GET("/feedback", h.get)
	grp.POST("/feedback", h.submit)
}

func (h *Handler) get(c *gin.Context) {
	resp, err := h.Service.Get(c.Request.Context(),
		c.Param("region_code"), c.Param("country_code"), c.Param("brand_name"))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not load feedback", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
		return
	}

	resp, err := h.Service.Submit(c.Request.Context(),
		c.Param("region_code"), c.Param("country_code"), c.Param("brand_name"), req)
	switch {
	case errors.Is(err, ErrBadRating):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case err != nil:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not store feedback", nil)
	default:
		c.JSON(http.StatusOK, resp)
	}
}
