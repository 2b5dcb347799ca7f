package handler

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/d60-Lab/instalite/internal/api/middleware"
	"github.com/d60-Lab/instalite/internal/model"
	"github.com/d60-Lab/instalite/internal/service"
	"github.com/d60-Lab/instalite/pkg/response"
)

// 允许的图片类型及落盘扩展名
var imageExt = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

// CreatePost 发帖，可选图片（PNG/JPEG/WEBP），图片存随机文件名
// @Summary 发帖
// @Tags posts
// @Accept multipart/form-data
// @Produce json
// @Param caption formData string false "文案"
// @Param image formData file false "图片"
// @Success 201 {object} response.Response{data=service.PostView}
// @Failure 400 {object} response.Response
// @Security BearerAuth
// @Router /api/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	me := middleware.CurrentUser(c)
	caption := c.PostForm("caption")

	var imagePath *string
	if file, err := c.FormFile("image"); err == nil && file != nil {
		ext, ok := imageExt[file.Header.Get("Content-Type")]
		if !ok {
			response.BadRequest(c, "only PNG/JPEG/WEBP images allowed")
			return
		}
		if err := os.MkdirAll(h.cfg.UploadDir, 0o755); err != nil {
			response.InternalError(c, err)
			return
		}
		name := uuid.New().String() + ext
		if err := c.SaveUploadedFile(file, filepath.Join(h.cfg.UploadDir, name)); err != nil {
			response.InternalError(c, err)
			return
		}
		imagePath = &name
	}

	post, err := h.postSvc.Create(c.Request.Context(), me, caption, imagePath)
	if err != nil {
		response.Error(c, err)
		return
	}
	views, err := h.feedSvc.Decorate(c.Request.Context(), me.ID, []*model.Post{post})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, views[0])
}

// ListMyPosts 当前用户的全部帖子
// @Summary 我的帖子
// @Tags posts
// @Produce json
// @Success 200 {object} response.Response{data=[]service.PostView}
// @Security BearerAuth
// @Router /api/posts [get]
func (h *Handler) ListMyPosts(c *gin.Context) {
	me := middleware.CurrentUser(c)
	posts, err := h.postSvc.ListByAuthor(c.Request.Context(), me.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	views, err := h.feedSvc.Decorate(c.Request.Context(), me.ID, posts)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, views)
}

// GetPost 帖子详情
// @Summary 帖子详情
// @Tags posts
// @Produce json
// @Param id path int true "帖子ID"
// @Success 200 {object} response.Response{data=service.PostView}
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /api/posts/{id} [get]
func (h *Handler) GetPost(c *gin.Context) {
	me := middleware.CurrentUser(c)
	id, err := parseID(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}
	post, err := h.postSvc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	views, err := h.feedSvc.Decorate(c.Request.Context(), me.ID, []*model.Post{post})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, views[0])
}

// DeletePost 仅作者或管理员可删，幂等
// @Summary 删帖
// @Tags posts
// @Param id path int true "帖子ID"
// @Success 204
// @Failure 403 {object} response.Response
// @Security BearerAuth
// @Router /api/posts/{id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	me := middleware.CurrentUser(c)
	id, err := parseID(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}
	if err := h.postSvc.Delete(c.Request.Context(), me, id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Feed 个人时间线，空结果回退到全站最新
// @Summary 个人时间线
// @Tags posts
// @Produce json
// @Param limit query int false "条数" default(30)
// @Success 200 {object} response.Response{data=[]service.PostView}
// @Security BearerAuth
// @Router /api/posts/feed/me [get]
func (h *Handler) Feed(c *gin.Context) {
	me := middleware.CurrentUser(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(service.DefaultFeedLimit)))
	views, err := h.feedSvc.Assemble(c.Request.Context(), me, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, views)
}

func parseID(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	return uint(v), err
}
