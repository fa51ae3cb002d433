package routes

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/romansndlr/remix-todos/internal/adapter/http/handler"
	"github.com/romansndlr/remix-todos/internal/adapter/http/middleware"
	"github.com/romansndlr/remix-todos/internal/adapter/http/view"
	"github.com/romansndlr/remix-todos/internal/core/telemetry"
	"github.com/romansndlr/remix-todos/pkg/config"
)

type HandlersConfig struct {
	TodoHandler *handler.TodoHandler
}

// Dependencies are the optional collaborators of the router. A nil field
// disables the middleware that needs it.
type Dependencies struct {
	Metrics     *telemetry.AppMetrics
	Logger      *config.Logger
	RateLimiter *config.RateLimiter
}

func SetupRouterWithConfig(handlers HandlersConfig, deps Dependencies, cfg *config.AppConfig) *gin.Engine {
	router := gin.New()
	router.SetHTMLTemplate(view.Templates())

	router.Use(gin.Recovery())
	router.Use(config.NewHTTPSEnforcer(cfg, deps.Logger.Zap()).HTTPSMiddleware())
	router.Use(otelgin.Middleware(cfg.ServiceName))
	router.Use(middleware.CurrentMiddleware())
	router.Use(middleware.LoggingMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware())

	if deps.RateLimiter != nil && cfg.RateLimit.Enabled {
		router.Use(deps.RateLimiter.RateLimitMiddleware())
	}

	if deps.Metrics != nil {
		router.Use(middleware.MetricsMiddleware(deps.Metrics))
	}

	setupTodoRoutes(router, handlers.TodoHandler)

	return router
}

func setupTodoRoutes(router *gin.Engine, todoHandler *handler.TodoHandler) {
	router.GET("/health", todoHandler.Health)
	router.GET("/", todoHandler.Index)
	router.POST("/", todoHandler.Submit)
}
