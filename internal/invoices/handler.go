package invoices

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"invoice-assistant/internal/shared/server/respond"
)

// Handler exposes the invoice dashboard and search endpoints.
type Handler struct {
	Service *Service
}

// NewHandler constructs a Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

// RegisterRoutes mounts the invoice routes on the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	grp := rg.Group("/invoice-management")
	grp.POST("/dashboard/filter", h.dashboard)
	grp.POST("/invoices/search", h.search)
}

type dashboardRequest struct {
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
	Region   string `json:"region"`
	Country  string `json:"country"`
	Vendor   string `json:"vendor"`
}

type searchRequest struct {
	Filters struct {
		FromDate      string `json:"from_date"`
		ToDate        string `json:"to_date"`
		Region        string `json:"region"`
		Country       string `json:"country"`
		Vendor        string `json:"vendor"`
		BrandName     string `json:"brand_name"`
		PONumber      string `json:"po_number"`
		InvoiceNumber string `json:"invoice_number"`
		InvoiceType   string `json:"invoice_type"`
		Status        string `json:"status"`
	} `json:"filters"`
	Sort       Sort       `json:"sort"`
	Pagination Pagination `json:"pagination"`
}

func (h *Handler) dashboard(c *gin.Context) {
	var req dashboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
		return
	}

	filter, err := buildFilter(req.FromDate, req.ToDate, req.Region, req.Country, req.Vendor)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", err.Error(), nil)
		return
	}

	resp, err := h.Service.Dashboard(c.Request.Context(), filter)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not build dashboard", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
		return
	}

	filter, err := buildFilter(req.Filters.FromDate, req.Filters.ToDate, req.Filters.Region, req.Filters.Country, req.Filters.Vendor)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", err.Error(), nil)
		return
	}
	filter.BrandName = normalizeFilterValue(req.Filters.BrandName)
	filter.PONumber = normalizeFilterValue(req.Filters.PONumber)
	filter.InvoiceNumber = normalizeFilterValue(req.Filters.InvoiceNumber)
	filter.InvoiceType = normalizeFilterValue(req.Filters.InvoiceType)
	filter.Status = normalizeFilterValue(req.Filters.Status)

	resp, err := h.Service.Search(c.Request.Context(), filter, req.Sort, req.Pagination)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not search invoices", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func buildFilter(fromDate, toDate, region, country, vendor string) (Filter, error) {
	filter := Filter{
		Region:  normalizeFilterValue(region),
		Country: normalizeFilterValue(country),
		Vendor:  strings.TrimSpace(vendor),
	}

	from, err := parseDate(fromDate)
	if err != nil {
		return Filter{}, err
	}
	to, err := parseDate(toDate)
	if err != nil {
		return Filter{}, err
	}
	if (from == nil) != (to == nil) {
		return Filter{}, errDateRangeIncomplete
	}
	if from != nil && to != nil && from.After(*to) {
		return Filter{}, errDateRangeInverted
	}
	filter.FromDate = from
	filter.ToDate = to
	return filter, nil
}

// normalizeFilterValue maps the dropdown sentinels to "no constraint".
func normalizeFilterValue(v string) string {
	v = strings.TrimSpace(v)
	if v == "All" || v == "Select" {
		return ""
	}
	return v
}

func parseDate(v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, errBadDate
	}
	return &t, nil
}
