package api

import (
	"net/http"

	"github.com/zerohouse/2015-01-HUDIWEB-JADO/api/comment"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/api/health"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/api/middleware"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/api/shop"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/api/user"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/config"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// Router Route configuration
type Router struct {
	engine            *gin.Engine
	config            *config.Config
	healthController  *health.Controller
	userController    *user.Controller
	shopController    *shop.Controller
	commentController *comment.Controller
	uploads           http.FileSystem
}

// NewRouter uploads 为 nil 时不挂载上传文件的静态路由
func NewRouter(
	cfg *config.Config,
	healthController *health.Controller,
	userController *user.Controller,
	shopController *shop.Controller,
	commentController *comment.Controller,
	uploads http.FileSystem,
) *Router {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if cfg.Upload.MaxSizeMB > 0 {
		engine.MaxMultipartMemory = cfg.Upload.MaxSizeMB << 20
	}

	// 顺序很重要：request id → recovery → logging → metrics → CORS → rate limit → session
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.RecoveryMiddleware())
	engine.Use(middleware.LoggingMiddleware())
	if cfg.Server.MetricsEnabled {
		engine.Use(metrics.GinMiddleware())
	}
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))
	engine.Use(middleware.RateLimitMiddleware(&cfg.Server.RateLimit))
	engine.Use(middleware.SessionMiddleware(&cfg.Session))

	return &Router{
		engine:            engine,
		config:            cfg,
		healthController:  healthController,
		userController:    userController,
		shopController:    shopController,
		commentController: commentController,
		uploads:           uploads,
	}
}

// SetupRoutes Set up all routes
func (r *Router) SetupRoutes() {
	r.healthController.RegisterRoutes(r.engine)
	r.userController.RegisterRoutes(r.engine)
	r.shopController.RegisterRoutes(r.engine)
	r.commentController.RegisterRoutes(r.engine)

	if r.config.Server.MetricsEnabled {
		r.engine.GET("/metrics", gin.WrapH(metrics.Handler()))
	}
	if r.uploads != nil && r.config.Upload.URLPrefix != "" {
		r.engine.StaticFS(r.config.Upload.URLPrefix, r.uploads)
	}

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    r.config.App.Name,
			"version": r.config.App.Version,
			"env":     r.config.App.Env,
			"health":  "/health",
		})
	})
}

// GetEngine Get Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
