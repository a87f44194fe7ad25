package payments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"invoice-assistant/internal/shared/server/respond"
)

const maxPageSize = 1000

// Handler exposes the invoice payment endpoints.
type Handler struct {
	Service *Service
}

// NewHandler constructs a Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

// RegisterRoutes mounts the payment routes on the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	grp := rg.Group("/invoice-management/payments")
	grp.POST("/invoices/:invoice_number/ids/:invoice_id", h.create)
	grp.GET("", h.list)
}

func (h *Handler) create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
		return
	}

	resp, err := h.Service.Create(c.Request.Context(),
		c.Param("invoice_number"), c.Param("invoice_id"), req)
	switch {
	case errors.Is(err, ErrInvoiceNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, ErrBadPaymentDate), errors.Is(err, ErrBadPaymentTime), errors.Is(err, ErrBadAmount):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case err != nil:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not record payment", nil)
	default:
		c.JSON(http.StatusOK, resp)
	}
}

func (h *Handler) list(c *gin.Context) {
	limit, ok := queryInt(c, "limit", 0)
	if !ok {
		return
	}
	offset, ok := queryInt(c, "offset", 0)
	if !ok {
		return
	}
	if limit < 0 || limit > maxPageSize || offset < 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "limit must be 1-1000 and offset non-negative", nil)
		return
	}

	resp, err := h.Service.List(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not list payments", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func queryInt(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", name+" must be an integer", nil)
		return 0, false
	}
	return v, true
}
