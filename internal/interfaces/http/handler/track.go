package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/minilytics/backend/internal/application/tracking"
)

// TrackHandler handles the public event collection endpoint. It sits
// outside the authenticated API surface: any page on the internet may
// POST to it, so it carries its own wildcard CORS headers instead of
// going through the configured CORS middleware.
type TrackHandler struct {
	BaseHandler
	ingestService *tracking.IngestService
}

// NewTrackHandler creates a new TrackHandler
func NewTrackHandler(ingestService *tracking.IngestService) *TrackHandler {
	return &TrackHandler{
		ingestService: ingestService,
	}
}

// setCollectionCORSHeaders sets permissive CORS headers for the
// collection endpoint. Browsers send tracking beacons cross-origin
// from every registered site.
func setCollectionCORSHeaders(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type")
	c.Header("Access-Control-Max-Age", "86400")
}

// Preflight answers CORS preflight requests for the collection endpoint
func (h *TrackHandler) Preflight(c *gin.Context) {
	setCollectionCORSHeaders(c)
	c.Status(http.StatusNoContent)
}

// Track accepts a tracking event and responds before it is persisted.
// Responses stay deliberately plain: the browser snippet only checks
// the status code, and error bodies must never leak internals to
// arbitrary origins.
func (h *TrackHandler) Track(c *gin.Context) {
	setCollectionCORSHeaders(c)

	if h.ingestService == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "service unavailable"})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable request body"})
		return
	}

	var req tracking.TrackRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
		return
	}

	if err := h.ingestService.Ingest(c.Request.Context(), req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
