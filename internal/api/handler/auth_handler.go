package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/instalite/internal/api/middleware"
	"github.com/d60-Lab/instalite/internal/service"
	"github.com/d60-Lab/instalite/pkg/response"
)

// 会话 cookie 有效期 24h，与令牌 TTL 解耦
const sessionCookieMaxAge = 60 * 60 * 24

type registerRequest struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register 注册新用户
// @Summary 注册
// @Tags auth
// @Accept json
// @Produce json
// @Param request body registerRequest true "注册信息"
// @Success 201 {object} response.Response{data=service.UserPublic}
// @Failure 400 {object} response.Response
// @Router /api/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, err := h.authSvc.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, service.NewUserPublic(user))
}

// Token 表单登录换取 bearer 令牌，同时种下会话 cookie
// @Summary 登录
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "用户名"
// @Param password formData string true "密码"
// @Success 200 {object} response.Response{data=tokenResponse}
// @Failure 401 {object} response.Response
// @Router /api/auth/token [post]
func (h *Handler) Token(c *gin.Context) {
	username := c.PostForm("username")
	pass := c.PostForm("password")
	tok, _, err := h.authSvc.Login(c.Request.Context(), username, pass)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.setSessionCookie(c, tok)
	response.Success(c, tokenResponse{AccessToken: tok, TokenType: "bearer"})
}

// Logout 仅清除 cookie；令牌无服务端吊销，到期前仍然有效
// @Summary 登出
// @Tags auth
// @Success 204
// @Router /api/auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	h.clearSessionCookie(c)
	response.NoContent(c)
}

// Me 返回当前登录身份
// @Summary 当前用户
// @Tags auth
// @Produce json
// @Success 200 {object} response.Response{data=service.UserPublic}
// @Failure 401 {object} response.Response
// @Security BearerAuth
// @Router /api/auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	response.Success(c, service.NewUserPublic(user))
}

func (h *Handler) setSessionCookie(c *gin.Context, tok string) {
	c.SetSameSite(http.SameSiteLaxMode)
	// secure=false：本地 HTTP；上 HTTPS 后应改为 true
	c.SetCookie(middleware.CookieName, "Bearer "+tok, sessionCookieMaxAge, "/", "", false, true)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.CookieName, "", -1, "/", "", false, true)
}
