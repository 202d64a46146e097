package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sales/backend/internal/infrastructure/config"
	"github.com/sales/backend/internal/interfaces/http/middleware"
)

// RouteRegistrar is implemented by every handler that owns a route group.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router assembles the gin engine from the registered handlers.
type Router struct {
	engine     *gin.Engine
	registrars []RouteRegistrar
}

// New creates a Router with the common middleware chain installed.
func New(cfg *config.Config, logger *zap.Logger, registrars ...RouteRegistrar) *Router {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	registerValidators()

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.AccessLog(logger),
		middleware.Recovery(logger),
		middleware.CORS(),
	)

	return &Router{
		engine:     engine,
		registrars: registrars,
	}
}

// Setup mounts every registrar under /api/v1 and returns the engine.
func (r *Router) Setup() *gin.Engine {
	api := r.engine.Group("/api/v1")
	for _, reg := range r.registrars {
		reg.RegisterRoutes(api)
	}
	return r.engine
}
