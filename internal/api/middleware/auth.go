package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/instalite/internal/model"
	"github.com/d60-Lab/instalite/internal/service"
	"github.com/d60-Lab/instalite/pkg/response"
)

const (
	// CookieName 会话 cookie，值允许带 "Bearer " 前缀
	CookieName = "access_token"

	userKey = "current_user"
)

// ExtractToken 依次尝试 Authorization 头与 cookie；都没有则返回空串（匿名）
func ExtractToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return h[7:]
	}
	raw, err := c.Cookie(CookieName)
	if err != nil || raw == "" {
		return ""
	}
	if parts := strings.SplitN(raw, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return raw
}

// Auth 严格鉴权：无令牌、令牌无效或用户不存在都返回 401
func Auth(authSvc service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := ExtractToken(c)
		if tok == "" {
			response.Unauthorized(c, "not authenticated")
			return
		}
		user, err := authSvc.ResolveSubject(c.Request.Context(), tok)
		if err != nil {
			response.Unauthorized(c, "invalid token")
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// AuthOptional 可选鉴权：匿名或令牌无效时继续放行，身份为空
func AuthOptional(authSvc service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tok := ExtractToken(c); tok != "" {
			if user, err := authSvc.ResolveSubject(c.Request.Context(), tok); err == nil {
				c.Set(userKey, user)
			}
		}
		c.Next()
	}
}

// AdminOnly 叠加在 Auth 之后使用
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			response.Unauthorized(c, "not authenticated")
			return
		}
		if !user.IsAdmin {
			response.Forbidden(c, "admin only")
			return
		}
		c.Next()
	}
}

// CurrentUser 读取已解析身份；匿名返回 nil
func CurrentUser(c *gin.Context) *model.User {
	if v, ok := c.Get(userKey); ok {
		if u, ok := v.(*model.User); ok {
			return u
		}
	}
	return nil
}
