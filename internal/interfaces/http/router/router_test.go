package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubRegistrar struct {
	registered bool
}

func (s *stubRegistrar) RegisterRoutes(rg *gin.RouterGroup) {
	s.registered = true
	rg.GET("/invoices", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"items": []string{}})
	})
}

func get(engine *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	engine.ServeHTTP(w, req)
	return w
}

func TestRouter_Setup(t *testing.T) {
	engine := gin.New()
	reg := &stubRegistrar{}

	NewRouter(engine).Register(reg).Setup()

	assert.True(t, reg.registered)
	assert.Equal(t, http.StatusOK, get(engine, "/api/v1/invoices").Code)
}

func TestRouter_HealthEndpoints(t *testing.T) {
	engine := gin.New()
	NewRouter(engine).Setup()

	for _, path := range []string{"/health", "/healthz", "/ready", "/api/v1/health"} {
		t.Run(path, func(t *testing.T) {
			w := get(engine, path)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), "ok")
		})
	}
}

func TestRouter_WithBasePath(t *testing.T) {
	engine := gin.New()
	NewRouter(engine, WithBasePath("/api/v2")).Register(&stubRegistrar{}).Setup()

	assert.Equal(t, http.StatusOK, get(engine, "/api/v2/invoices").Code)
	assert.Equal(t, http.StatusNotFound, get(engine, "/api/v1/invoices").Code)
}
