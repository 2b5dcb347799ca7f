package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/instalite/internal/api/middleware"
	"github.com/d60-Lab/instalite/pkg/response"
)

// GetProfile 按用户名查公开资料与关注统计
// @Summary 用户资料
// @Tags users
// @Produce json
// @Param username path string true "用户名"
// @Success 200 {object} response.Response{data=service.Profile}
// @Failure 404 {object} response.Response
// @Router /api/users/{username} [get]
func (h *Handler) GetProfile(c *gin.Context) {
	viewer := middleware.CurrentUser(c) // 可能为 nil
	profile, err := h.relSvc.Profile(c.Request.Context(), c.Param("username"), viewer)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}

// Follow 关注用户，幂等；自关注返回 400
// @Summary 关注
// @Tags users
// @Param username path string true "用户名"
// @Success 204
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /api/users/{username}/follow [post]
func (h *Handler) Follow(c *gin.Context) {
	me := middleware.CurrentUser(c)
	if err := h.relSvc.Follow(c.Request.Context(), me, c.Param("username")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Unfollow 取消关注，幂等
// @Summary 取消关注
// @Tags users
// @Param username path string true "用户名"
// @Success 204
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /api/users/{username}/unfollow [post]
func (h *Handler) Unfollow(c *gin.Context) {
	me := middleware.CurrentUser(c)
	if err := h.relSvc.Unfollow(c.Request.Context(), me, c.Param("username")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
