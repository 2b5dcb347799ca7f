package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/instalite/pkg/response"
)

// AdminListUsers 全量用户列表
// @Summary 用户列表（管理员）
// @Tags admin
// @Produce json
// @Success 200 {object} response.Response{data=[]service.UserPublic}
// @Failure 403 {object} response.Response
// @Security BearerAuth
// @Router /api/admin/users [get]
func (h *Handler) AdminListUsers(c *gin.Context) {
	users, err := h.userSvc.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, users)
}

// AdminListPosts 全量帖子列表
// @Summary 帖子列表（管理员）
// @Tags admin
// @Produce json
// @Success 200 {object} response.Response{data=[]service.PostView}
// @Failure 403 {object} response.Response
// @Security BearerAuth
// @Router /api/admin/posts [get]
func (h *Handler) AdminListPosts(c *gin.Context) {
	posts, err := h.postSvc.ListAll(c.Request.Context(), 0)
	if err != nil {
		response.Error(c, err)
		return
	}
	views, err := h.feedSvc.Decorate(c.Request.Context(), 0, posts)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, views)
}

// AdminDeleteUser 删除用户并级联清理其内容
// @Summary 删除用户（管理员）
// @Tags admin
// @Param id path int true "用户ID"
// @Success 204
// @Failure 403 {object} response.Response
// @Security BearerAuth
// @Router /api/admin/users/{id} [delete]
func (h *Handler) AdminDeleteUser(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}
	if err := h.userSvc.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
