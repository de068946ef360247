package user

import (
	"net/http"

	"github.com/zerohouse/2015-01-HUDIWEB-JADO/api/ctxutil"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/api/middleware"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/api/response"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/application/auth"
	shopapp "github.com/zerohouse/2015-01-HUDIWEB-JADO/application/shop"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// LandingView 登出后跳转到的视图
const LandingView = "main"

// Controller 登录、登出、注册
type Controller struct {
	authService *auth.Service
	shopService *shopapp.ApplicationService
}

func NewController(authService *auth.Service, shopService *shopapp.ApplicationService) *Controller {
	return &Controller{authService: authService, shopService: shopService}
}

// RegisterRoutes Register user routes
func (c *Controller) RegisterRoutes(router gin.IRouter) {
	userGroup := router.Group("/user")
	{
		userGroup.GET("/logout", c.Logout)
		userGroup.POST("/login", c.Login)
		userGroup.POST("/register", c.Register)
		userGroup.GET("/me", middleware.RequireLogin(), c.Me)
	}
}

// LoginRequest Login request
type LoginRequest struct {
	ID       string `json:"id" form:"id" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// Logout 无条件失效 session，302 回到首页
func (c *Controller) Logout(ctx *gin.Context) {
	landing, err := c.authService.Logout(ctxutil.WithRequestID(ctx), sessions.Default(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	ctx.Header("X-View", LandingView)
	ctx.Redirect(http.StatusFound, landing)
}

func (c *Controller) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	u, err := c.authService.Login(ctxutil.WithRequestID(ctx), sessions.Default(ctx), req.ID, req.Password)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, u, "Logged in")
}

func (c *Controller) Register(ctx *gin.Context) {
	var req auth.RegisterRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	u, err := c.authService.Register(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, u, "User registered")
}

// Me 当前登录用户
func (c *Controller) Me(ctx *gin.Context) {
	u, err := c.shopService.GetMyInfo(ctxutil.WithRequestID(ctx), middleware.CurrentUser(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, u, "User retrieved successfully")
}
