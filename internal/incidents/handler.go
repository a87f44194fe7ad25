package incidents

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"invoice-assistant/internal/shared/server/respond"
)

var errBadDate = errors.New("dates must use the YYYY-MM-DD format")

// Handler exposes the live-incident analytics endpoint.
type Handler struct {
	Service *Service
}

// NewHandler constructs a Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

// RegisterRoutes mounts the incident routes on the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/live-incidents/analytics", h.analytics)
}

func (h *Handler) analytics(c *gin.Context) {
	filter := Filter{
		BusinessLine:       strings.TrimSpace(c.Query("business_line")),
		ApplicationName:    strings.TrimSpace(c.Query("application_name")),
		RootCauseCategory:  strings.TrimSpace(c.Query("root_cause_category")),
		ResolutionCategory: strings.TrimSpace(c.Query("resolution_category")),
	}

	if v := c.Query("major_incident_only"); v != "" {
		only, err := strconv.ParseBool(v)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "invalid_request", "major_incident_only must be a boolean", nil)
			return
		}
		filter.MajorIncidentOnly = only
	}

	// days_back wins over an explicit date range.
	if v := c.Query("days_back"); v != "" {
		daysBack, err := strconv.Atoi(v)
		if err != nil || daysBack < 0 {
			respond.Error(c, http.StatusBadRequest, "invalid_request", "days_back must be a non-negative integer", nil)
			return
		}
		from := time.Now().UTC().AddDate(0, 0, -daysBack)
		filter.DateFrom = &from
	} else {
		from, err := parseDate(c.Query("date_from"))
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "invalid_request", err.Error(), nil)
			return
		}
		to, err := parseDate(c.Query("date_to"))
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "invalid_request", err.Error(), nil)
			return
		}
		if to != nil {
			end := to.Add(24*time.Hour - time.Nanosecond)
			to = &end
		}
		filter.DateFrom = from
		filter.DateTo = to
	}

	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			respond.Error(c, http.StatusBadRequest, "invalid_request", "limit must be a positive integer", nil)
			return
		}
		limit = n
	}

	result, err := h.Service.Analytics(c.Request.Context(), filter, limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not compute analytics", nil)
		return
	}
	c.JSON(http.StatusOK, result)
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
