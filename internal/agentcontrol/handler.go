package agentcontrol

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"invoice-assistant/internal/shared/server/respond"
)

// Handler exposes the agent control endpoints.
type Handler struct {
	Service *Service
}

// NewHandler constructs a Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

// RegisterRoutes mounts the agent control routes on the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	grp := rg.Group("/agent-control")
	grp.GET("", h.list)
	grp.GET("/:id", h.get)
	grp.POST("", h.create)
	grp.PUT("/:id", h.update)
	grp.DELETE("/:id", h.remove)
}

func (h *Handler) list(c *gin.Context) {
	resp, err := h.Service.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not list controls", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	entry, err := h.Service.Get(c.Request.Context(), id)
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "control not found", nil)
	case err != nil:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not load control", nil)
	default:
		c.JSON(http.StatusOK, entry)
	}
}

func (h *Handler) create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
		return
	}
	entry, err := h.Service.Create(c.Request.Context(), req)
	switch {
	case errors.Is(err, ErrMissingControl), errors.Is(err, ErrMissingValue):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrDuplicate):
		respond.Error(c, http.StatusConflict, "conflict", err.Error(), nil)
	case err != nil:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not create control", nil)
	default:
		c.JSON(http.StatusCreated, entry)
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
	entry, err := h.Service.Update(c.Request.Context(), id, req)
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "control not found", nil)
	case errors.Is(err, ErrMissingValue), errors.Is(err, ErrNothingToUpdate):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case err != nil:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not update control", nil)
	default:
		c.JSON(http.StatusOK, entry)
	}
}

func (h *Handler) remove(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	err := h.Service.Delete(c.Request.Context(), id)
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "control not found", nil)
	case err != nil:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not delete control", nil)
	default:
		c.JSON(http.StatusOK, gin.H{"deleted": id})
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
