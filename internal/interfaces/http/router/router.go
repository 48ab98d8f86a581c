// Package router wires the middleware chain and route groups onto the
// gin engine.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const defaultBasePath = "/api/v1"

// RouteRegistrar registers a handler's routes on the API group.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router collects route registrars and mounts them under the versioned
// API base path.
type Router struct {
	engine     *gin.Engine
	basePath   string
	registrars []RouteRegistrar
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithBasePath overrides the API base path.
func WithBasePath(path string) RouterOption {
	return func(r *Router) {
		r.basePath = path
	}
}

// NewRouter creates a Router over the given engine.
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:   engine,
		basePath: defaultBasePath,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register queues a registrar for Setup.
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup mounts the health endpoints and every registered handler group.
func (r *Router) Setup() {
	r.engine.GET("/health", healthHandler)
	r.engine.GET("/healthz", healthHandler)
	r.engine.GET("/ready", healthHandler)

	api := r.engine.Group(r.basePath)
	api.GET("/health", healthHandler)

	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
