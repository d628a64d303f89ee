package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/minilytics/backend/web"
)

const (
	javascriptContentType = "application/javascript; charset=utf-8"
	trackerCacheControl   = "public, max-age=3600"
)

// TrackerAssetsHandler serves the embedded browser tracking scripts.
// The scripts are public and cacheable; versioned deployments bust the
// cache by shipping a new binary.
type TrackerAssetsHandler struct{}

// NewTrackerAssetsHandler creates a new TrackerAssetsHandler
func NewTrackerAssetsHandler() *TrackerAssetsHandler {
	return &TrackerAssetsHandler{}
}

// ServeScript serves the classic script-tag tracker
func (h *TrackerAssetsHandler) ServeScript(c *gin.Context) {
	c.Header("Cache-Control", trackerCacheControl)
	c.Header("Access-Control-Allow-Origin", "*")
	c.Data(http.StatusOK, javascriptContentType, web.TrackerJS)
}

// ServeModule serves the ES module build of the tracker
func (h *TrackerAssetsHandler) ServeModule(c *gin.Context) {
	c.Header("Cache-Control", trackerCacheControl)
	c.Header("Access-Control-Allow-Origin", "*")
	c.Data(http.StatusOK, javascriptContentType, web.TrackerESM)
}
