package ctxutil

import (
	"context"

	"github.com/zerohouse/2015-01-HUDIWEB-JADO/api/response"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/infrastructure/persistence"

	"github.com/gin-gonic/gin"
)

// WithRequestID 控制器调用应用服务时使用的 context，带上请求 ID
func WithRequestID(ctx *gin.Context) context.Context {
	requestID := response.GetRequestID(ctx)
	return persistence.ContextWithRequestID(ctx.Request.Context(), requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	return persistence.RequestIDFromContext(ctx)
}
