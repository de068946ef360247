package middleware

import (
	"net/http"

	"github.com/zerohouse/2015-01-HUDIWEB-JADO/api/response"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/application/auth"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/config"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// SessionMiddleware 基于签名 cookie 的 session
func SessionMiddleware(cfg *config.SessionConfig) gin.HandlerFunc {
	store := cookie.NewStore([]byte(cfg.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.MaxAge,
		Secure:   cfg.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sessions.Sessions(cfg.Name, store)
}

// Session 返回当前请求的 session；SessionMiddleware 未挂载时为 nil
func Session(c *gin.Context) sessions.Session {
	if _, ok := c.Get(sessions.DefaultKey); !ok {
		return nil
	}
	return sessions.Default(c)
}

// CurrentUser 登录用户 id，未登录为空串
func CurrentUser(c *gin.Context) string {
	return auth.CurrentUserID(Session(c))
}

// RequireLogin 未登录直接 401
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Response{
				Success:   false,
				Error:     "UNAUTHORIZED",
				Message:   "login required",
				Code:      http.StatusUnauthorized,
				RequestID: response.GetRequestID(c),
			})
			return
		}
		c.Next()
	}
}
