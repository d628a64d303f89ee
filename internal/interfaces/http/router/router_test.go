package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRouterSetup(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	sites := NewDomainGroup("sites", "/sites")
	sites.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"sites": []string{}})
	})
	sites.POST("", func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	sites.DELETE("/:id", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	r := NewRouter(engine, WithAPIVersion("v1"))
	r.Register(sites)
	r.Setup()

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/api/v1/sites", http.StatusOK},
		{http.MethodPost, "/api/v1/sites", http.StatusCreated},
		{http.MethodDelete, "/api/v1/sites/abc", http.StatusNoContent},
		{http.MethodGet, "/api/v2/sites", http.StatusNotFound},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, tt.status, w.Code, "%s %s", tt.method, tt.path)
	}
}

func TestRouterGroupMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	called := false
	group := NewDomainGroup("analytics", "/analytics")
	group.Use(func(c *gin.Context) {
		called = true
		c.Next()
	})
	group.GET("/summary", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	r := NewRouter(engine)
	r.Register(group)
	r.Setup()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/summary", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
}

func TestRouterUseAppliesToAPIGroup(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/public", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	group := NewDomainGroup("sites", "/sites")
	group.GET("", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	r := NewRouter(engine)
	r.Use(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusUnauthorized)
	})
	r.Register(group)
	r.Setup()

	// API routes go through the router middleware.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sites", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Routes registered directly on the engine do not.
	req = httptest.NewRequest(http.MethodGet, "/public", nil)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
