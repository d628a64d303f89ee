package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/minilytics/backend/internal/application/registry"
	"github.com/minilytics/backend/internal/interfaces/http/dto"
	"github.com/minilytics/backend/internal/interfaces/http/middleware"
)

// SiteHandler handles site registry API endpoints
type SiteHandler struct {
	BaseHandler
	siteService *registry.SiteService
}

// NewSiteHandler creates a new SiteHandler
func NewSiteHandler(siteService *registry.SiteService) *SiteHandler {
	return &SiteHandler{
		siteService: siteService,
	}
}

// List returns all sites owned by the authenticated user
func (h *SiteHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	sites, err := h.siteService.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sites)
}

// Create registers a new site for the authenticated user
func (h *SiteHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req registry.CreateSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	created, err := h.siteService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, created)
}

// Delete removes a site owned by the authenticated user. Sites owned
// by other users are reported as not found.
func (h *SiteHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.NotFound(c, "Site not found")
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.NotFound(c, "Site not found")
		return
	}

	if err := h.siteService.Delete(c.Request.Context(), userID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
