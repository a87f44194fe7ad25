package prompts

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"invoice-assistant/internal/shared/server/respond"
)

// Handler exposes the prompt registry endpoints.
type Handler struct {
	Service *Service
}

// NewHandler constructs a Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

// RegisterRoutes mounts the prompt registry routes on the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	grp := rg.Group("/prompt-registry")
	grp.GET("", h.list)
	grp.GET("/stats", h.stats)
	grp.GET("/:id", h.detail)
	grp.POST("", h.create)
	grp.PUT("/:id", h.update)
	grp.PUT("/:id/activate", h.setActive(true))
	grp.PUT("/:id/deactivate", h.setActive(false))
}

func (h *Handler) list(c *gin.Context) {
	brand := c.Query("brand_name")
	country := c.Query("country_code")
	if brand == "" || country == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "brand_name and country_code are required", nil)
		return
	}
	resp, err := h.Service.List(c.Request.Context(), brand, country)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not list configurations", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) stats(c *gin.Context) {
	resp, err := h.Service.Stats(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not compute stats", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) detail(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.Service.Detail(c.Request.Context(), id)
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "configuration not found", nil)
	case err != nil:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not load configuration", nil)
	default:
		c.JSON(http.StatusOK, resp)
	}
}

func (h *Handler) create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
		return
	}
	item, err := h.Service.Create(c.Request.Context(), req)
	switch {
	case errors.Is(err, ErrMissingBrand), errors.Is(err, ErrInvalidMethod),
		errors.Is(err, ErrInvalidSchema), errors.Is(err, ErrUnknownCountry):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case err != nil:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not create configuration", nil)
	default:
		c.JSON(http.StatusCreated, item)
	}
}

func (h *Handler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
		return
	}
	item, err := h.Service.Update(c.Request.Context(), id, req)
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "configuration not found", nil)
	case errors.Is(err, ErrInvalidMethod), errors.Is(err, ErrInvalidSchema), errors.Is(err, ErrNothingToUpdate):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case err != nil:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not update configuration", nil)
	default:
		c.JSON(http.StatusOK, item)
	}
}

func (h *Handler) setActive(active bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req struct {
			UpdatedBy string `json:"updatedBy"`
		}
		_ = c.ShouldBindJSON(&req)

		err := h.Service.SetActive(c.Request.Context(), id, active, req.UpdatedBy)
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "configuration not found", nil)
		case err != nil:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "could not update configuration", nil)
		default:
			c.JSON(http.StatusOK, gin.H{"id": id, "isActive": active})
		}
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "id must be a positive integer", nil)
		return 0, false
	}
	return id, true
}
