package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/minilytics/backend/internal/application/analytics"
)

// AnalyticsHandler handles dashboard query endpoints
type AnalyticsHandler struct {
	BaseHandler
	analyticsService *analytics.Service
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analyticsService *analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// siteIDFilter extracts the optional site_id query parameter
func siteIDFilter(c *gin.Context) *string {
	if siteID := c.Query("site_id"); siteID != "" {
		return &siteID
	}
	return nil
}

// Summary returns aggregate traffic statistics for the requested window
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	window := c.DefaultQuery("window", analytics.DefaultWindow)

	summary, err := h.analyticsService.Summarize(c.Request.Context(), siteIDFilter(c), window)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}

// Events returns the most recent raw events, newest first
func (h *AnalyticsHandler) Events(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.BadRequest(c, "limit must be an integer")
			return
		}
		limit = parsed
	}

	events, err := h.analyticsService.RecentEvents(c.Request.Context(), siteIDFilter(c), limit)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, events)
}
