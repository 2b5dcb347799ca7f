package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/instalite/internal/api/middleware"
	"github.com/d60-Lab/instalite/pkg/response"
)

// Like 点赞，幂等
// @Summary 点赞
// @Tags likes
// @Param post_id path int true "帖子ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /api/likes/post/{post_id} [post]
func (h *Handler) Like(c *gin.Context) {
	me := middleware.CurrentUser(c)
	postID, err := parseID(c, "post_id")
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}
	if err := h.likeSvc.Like(c.Request.Context(), me.ID, postID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Unlike 取消点赞，未点赞时也是 no-op
// @Summary 取消点赞
// @Tags likes
// @Param post_id path int true "帖子ID"
// @Success 204
// @Security BearerAuth
// @Router /api/likes/post/{post_id}/unlike [post]
func (h *Handler) Unlike(c *gin.Context) {
	me := middleware.CurrentUser(c)
	postID, err := parseID(c, "post_id")
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}
	if err := h.likeSvc.Unlike(c.Request.Context(), me.ID, postID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
