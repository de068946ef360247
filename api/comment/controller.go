package comment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/zerohouse/2015-01-HUDIWEB-JADO/api/ctxutil"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/api/middleware"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/api/response"
	productapp "github.com/zerohouse/2015-01-HUDIWEB-JADO/application/product"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/product"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Controller 商品评论接口。
// 成功时直接返回评论数组（不包 Response 信封），前端按数组渲染。
type Controller struct {
	productService *productapp.ApplicationService
}

func NewController(productService *productapp.ApplicationService) *Controller {
	return &Controller{productService: productService}
}

// RegisterRoutes Register comment routes
func (c *Controller) RegisterRoutes(router gin.IRouter) {
	group := router.Group("/api/comment")
	{
		group.POST("/create", c.Create)
		group.POST("/delete", c.Delete)
		group.GET("/list/:productId", c.List)
	}
	router.GET("/product/:id", c.GetProduct)
}

// Create 商品不存在时返回 200 + null
func (c *Controller) Create(ctx *gin.Context) {
	var req productapp.CommentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}
	if userID := middleware.CurrentUser(ctx); userID != "" {
		req.UserID = userID
	}

	comments, err := c.productService.InsertComment(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		if errors.Is(err, product.ErrInsertTargetNotFound) {
			ctx.JSON(http.StatusOK, nil)
			return
		}
		response.HandleAppError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, nonNil(comments))
}

// Delete 任何失败都返回 200 + null
func (c *Controller) Delete(ctx *gin.Context) {
	var req productapp.CommentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusOK, nil)
		return
	}

	reqCtx := ctxutil.WithRequestID(ctx)
	comments, err := c.productService.DeleteComment(reqCtx, req)
	if err != nil {
		logger.FromContext(reqCtx).Warn("Comment delete failed",
			zap.Int64("comment_id", req.ID),
			zap.Int64("product_id", req.ProductID),
			zap.Error(err),
		)
		ctx.JSON(http.StatusOK, nil)
		return
	}
	ctx.JSON(http.StatusOK, nonNil(comments))
}

// List 商品的全部评论，按 id 升序
func (c *Controller) List(ctx *gin.Context) {
	productID, err := strconv.ParseInt(ctx.Param("productId"), 10, 64)
	if err != nil {
		response.HandleError(ctx, err, "Invalid productId", http.StatusBadRequest)
		return
	}
	comments, err := c.productService.GetComments(ctxutil.WithRequestID(ctx), productID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, nonNil(comments))
}

// GetProduct 商品详情（带评论），使用统一响应信封
func (c *Controller) GetProduct(ctx *gin.Context) {
	productID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		response.HandleError(ctx, err, "Invalid product id", http.StatusBadRequest)
		return
	}
	p, err := c.productService.GetProduct(ctxutil.WithRequestID(ctx), productID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, p, "Product retrieved successfully")
}

// nonNil 空列表输出 []，null 留给失败
func nonNil(comments []product.Comment) []product.Comment {
	if comments == nil {
		return []product.Comment{}
	}
	return comments
}
