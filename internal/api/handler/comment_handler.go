package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/instalite/internal/api/middleware"
	"github.com/d60-Lab/instalite/internal/service"
	"github.com/d60-Lab/instalite/pkg/response"
)

type commentRequest struct {
	Text string `json:"text" binding:"required,min=1,max=1000"`
}

// ListComments 帖子下的评论，时间倒序
// @Summary 评论列表
// @Tags comments
// @Produce json
// @Param post_id path int true "帖子ID"
// @Success 200 {object} response.Response{data=[]service.CommentView}
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /api/comments/post/{post_id} [get]
func (h *Handler) ListComments(c *gin.Context) {
	postID, err := parseID(c, "post_id")
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}
	views, err := h.commentSvc.ListByPost(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, views)
}

// AddComment 评论帖子
// @Summary 发评论
// @Tags comments
// @Accept json
// @Produce json
// @Param post_id path int true "帖子ID"
// @Param request body commentRequest true "评论内容"
// @Success 201 {object} response.Response{data=service.CommentView}
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /api/comments/post/{post_id} [post]
func (h *Handler) AddComment(c *gin.Context) {
	me := middleware.CurrentUser(c)
	postID, err := parseID(c, "post_id")
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	comment, err := h.commentSvc.Add(c.Request.Context(), me, postID, req.Text)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, service.CommentView{
		ID:        comment.ID,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
		Author:    service.NewUserPublic(me),
	})
}

// DeleteComment 仅作者或管理员可删，幂等
// @Summary 删评论
// @Tags comments
// @Param comment_id path int true "评论ID"
// @Success 204
// @Failure 403 {object} response.Response
// @Security BearerAuth
// @Router /api/comments/{comment_id} [delete]
func (h *Handler) DeleteComment(c *gin.Context) {
	me := middleware.CurrentUser(c)
	id, err := parseID(c, "comment_id")
	if err != nil {
		response.BadRequest(c, "invalid comment id")
		return
	}
	if err := h.commentSvc.Delete(c.Request.Context(), me, id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
