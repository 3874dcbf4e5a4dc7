package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"user-directory/internal/adapter/handler"
	"user-directory/internal/infrastructure/middleware"
)

type Router struct {
	engine         *gin.Engine
	userHandler    *handler.UserHandler
	authHandler    *handler.AuthHandler
	avatarHandler  *handler.AvatarHandler
	authMiddleware *middleware.AuthMiddleware
	rateLimiter    *middleware.RateLimiter
	logger         *zap.Logger
}

type RouterConfig struct {
	UserHandler    *handler.UserHandler
	AuthHandler    *handler.AuthHandler
	AvatarHandler  *handler.AvatarHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimiter // nil disables rate limiting
	Logger         *zap.Logger
	Environment    string
}

func NewRouter(cfg RouterConfig) *Router {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	r := &Router{
		engine:         engine,
		userHandler:    cfg.UserHandler,
		authHandler:    cfg.AuthHandler,
		avatarHandler:  cfg.AvatarHandler,
		authMiddleware: cfg.AuthMiddleware,
		rateLimiter:    cfg.RateLimiter,
		logger:         cfg.Logger,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Metrics())
	r.engine.Use(middleware.CORS())
	if r.rateLimiter != nil {
		r.engine.Use(r.rateLimiter.Limit())
	}
}

func (r *Router) setupRoutes() {
	r.engine.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger documentation
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.engine.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", r.authHandler.Login)
		}

		users := api.Group("/users")
		{
			users.POST("", r.userHandler.Create)
			users.GET("", r.userHandler.List)
			users.GET("/search", r.userHandler.Search)
			users.GET("/email/:email", r.userHandler.GetByEmail)
			users.GET("/email-exists/:email", r.userHandler.EmailExists)
			users.GET("/:id", r.userHandler.Get)
			users.PUT("/:id", r.userHandler.Update)
			users.DELETE("/:id", r.userHandler.Delete)
			users.PATCH("/:id/reactivate", r.userHandler.Reactivate)
			users.PUT("/:id/avatar", r.authMiddleware.RequireAuth(), r.avatarHandler.Upload)
		}
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
