package shop

import (
	"net/http"
	"strconv"

	"github.com/zerohouse/2015-01-HUDIWEB-JADO/api/ctxutil"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/api/middleware"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/api/response"
	shopapp "github.com/zerohouse/2015-01-HUDIWEB-JADO/application/shop"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/payment"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/shop"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/user"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/infrastructure/storage"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// Controller 店铺前台与卖家设置页接口
type Controller struct {
	shopService *shopapp.ApplicationService
}

func NewController(shopService *shopapp.ApplicationService) *Controller {
	return &Controller{shopService: shopService}
}

// RegisterRoutes Register shop routes
func (c *Controller) RegisterRoutes(router gin.IRouter) {
	shopGroup := router.Group("/shop")
	{
		shopGroup.GET("/:url", c.GetShop)
		shopGroup.GET("/:url/products", c.GetShopProducts)
		shopGroup.GET("/:url/payments", middleware.RequireLogin(), c.GetPayments)
		shopGroup.GET("/category/:categoryId", c.GetShopByCategory)
		shopGroup.GET("/category/:categoryId/products", c.GetCategoryProducts)
		shopGroup.GET("/board/:boardId/articles", c.GetBoardArticles)
	}

	settingGroup := router.Group("/setting", middleware.RequireLogin())
	{
		settingGroup.GET("", c.GetSetting)
		settingGroup.PUT("/info", c.EditInfo)
		settingGroup.POST("/image", c.EditImage)
		settingGroup.PUT("/theme", c.EditTheme)
		settingGroup.POST("/boards", c.InsertBoards)
		settingGroup.DELETE("/boards/:id", c.DeleteBoard)
		settingGroup.POST("/categories", c.InsertCategories)
		settingGroup.DELETE("/categories/:id", c.DeleteCategory)
	}
}

// NamesRequest 批量新增看板/分类
type NamesRequest struct {
	Names []string `json:"names" form:"names" binding:"required"`
}

// ThemeRequest 主题修改
type ThemeRequest struct {
	Theme int `json:"theme" form:"theme"`
}

// PaymentsResponse 支付列表与合计
type PaymentsResponse struct {
	Payments []payment.WithProduct `json:"payments"`
	Total    decimal.Decimal       `json:"total"`
}

func (c *Controller) GetShop(ctx *gin.Context) {
	sh, err := c.shopService.GetShopByURL(ctxutil.WithRequestID(ctx), ctx.Param("url"), middleware.CurrentUser(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, sh, "Shop retrieved successfully")
}

func (c *Controller) GetShopByCategory(ctx *gin.Context) {
	categoryID, ok := idParam(ctx, "categoryId")
	if !ok {
		return
	}
	sh, err := c.shopService.GetShopByCategoryID(ctxutil.WithRequestID(ctx), categoryID, middleware.CurrentUser(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, sh, "Shop retrieved successfully")
}

func (c *Controller) GetShopProducts(ctx *gin.Context) {
	products, err := c.shopService.SettingProductByURL(ctxutil.WithRequestID(ctx), ctx.Param("url"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, products, "Products retrieved successfully")
}

func (c *Controller) GetCategoryProducts(ctx *gin.Context) {
	categoryID, ok := idParam(ctx, "categoryId")
	if !ok {
		return
	}
	reqCtx := ctxutil.WithRequestID(ctx)
	if _, err := c.shopService.GetCategoryByID(reqCtx, categoryID); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	products, err := c.shopService.GetProducts(reqCtx, categoryID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, products, "Products retrieved successfully")
}

func (c *Controller) GetBoardArticles(ctx *gin.Context) {
	boardID, ok := idParam(ctx, "boardId")
	if !ok {
		return
	}
	articles, err := c.shopService.GetArticles(ctxutil.WithRequestID(ctx), boardID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, articles, "Articles retrieved successfully")
}

// GetPayments 卖家看到全部，顾客只看到自己的
func (c *Controller) GetPayments(ctx *gin.Context) {
	viewer := &user.User{ID: middleware.CurrentUser(ctx)}
	payments, err := c.shopService.GetPayments(ctxutil.WithRequestID(ctx), viewer, ctx.Param("url"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, PaymentsResponse{
		Payments: payments,
		Total:    c.shopService.GetPaymentsTotal(payments),
	}, "Payments retrieved successfully")
}

// ---- setting page (login required) ----

func (c *Controller) GetSetting(ctx *gin.Context) {
	sh, err := c.shopService.SettingByID(ctxutil.WithRequestID(ctx), middleware.CurrentUser(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, sh, "Setting retrieved successfully")
}

// EditInfo 只能改自己的店铺，请求体里的 url 被忽略
func (c *Controller) EditInfo(ctx *gin.Context) {
	var edited shop.Shop
	if err := ctx.ShouldBindJSON(&edited); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	reqCtx := ctxutil.WithRequestID(ctx)
	url, err := c.shopService.GetURL(reqCtx, middleware.CurrentUser(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	edited.URL = url

	sh, err := c.shopService.SettingEditInfo(reqCtx, &edited)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, sh, "Shop info updated")
}

// EditImage multipart 字段 file
func (c *Controller) EditImage(ctx *gin.Context) {
	reqCtx := ctxutil.WithRequestID(ctx)
	url, err := c.shopService.GetURL(reqCtx, middleware.CurrentUser(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	fh, err := ctx.FormFile("file")
	if err != nil {
		response.HandleAppError(ctx, storage.ErrFileMissing)
		return
	}

	imageURL, err := c.shopService.SettingEditImage(reqCtx, &storage.FileInfo{URL: url, File: fh})
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, gin.H{"imageUrl": imageURL}, "Shop image updated")
}

func (c *Controller) EditTheme(ctx *gin.Context) {
	var req ThemeRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}
	if err := c.shopService.SettingEditTheme(ctxutil.WithRequestID(ctx), req.Theme, middleware.CurrentUser(ctx)); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, gin.H{"theme": req.Theme}, "Shop theme updated")
}

func (c *Controller) InsertBoards(ctx *gin.Context) {
	var req NamesRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	reqCtx := ctxutil.WithRequestID(ctx)
	url, err := c.shopService.GetURL(reqCtx, middleware.CurrentUser(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	boards, err := c.shopService.BoardInsert(reqCtx, req.Names, url)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, boards, "Boards created")
}

func (c *Controller) InsertCategories(ctx *gin.Context) {
	var req NamesRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	reqCtx := ctxutil.WithRequestID(ctx)
	url, err := c.shopService.GetURL(reqCtx, middleware.CurrentUser(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	categories, err := c.shopService.CategoryInsert(reqCtx, req.Names, url)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, categories, "Categories created")
}

// DeleteBoard 只能删自己店铺的看板；有文章时返回 REFUSED 结果（200）
func (c *Controller) DeleteBoard(ctx *gin.Context) {
	boardID, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	reqCtx := ctxutil.WithRequestID(ctx)
	own, err := c.shopService.SettingByID(reqCtx, middleware.CurrentUser(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	if _, found := c.shopService.GetBoard(boardID, own.Boards); !found {
		response.HandleAppError(ctx, shop.NewBoardNotFoundError(boardID))
		return
	}

	result, err := c.shopService.BoardDelete(reqCtx, boardID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, result, deleteMessage("Board", result))
}

func (c *Controller) DeleteCategory(ctx *gin.Context) {
	categoryID, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	reqCtx := ctxutil.WithRequestID(ctx)
	own, err := c.shopService.SettingByID(reqCtx, middleware.CurrentUser(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	if _, found := c.shopService.GetCategory(categoryID, own.Categories); !found {
		response.HandleAppError(ctx, shop.NewCategoryNotFoundError(categoryID))
		return
	}

	result, err := c.shopService.CategoryDelete(reqCtx, categoryID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, result, deleteMessage("Category", result))
}

func deleteMessage(kind string, r shop.DeleteResult) string {
	if r.IsDeleted() {
		return kind + " deleted"
	}
	return kind + " delete refused: " + r.Reason
}

// idParam 解析路径中的数字 id，失败时已经写好 400 响应
func idParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.HandleError(ctx, err, "Invalid "+name, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
